package outlook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Attachment is a hydrated attachment of a message or event.
// It is one of *FileAttachment, *ItemAttachment or *GenericAttachment.
type Attachment interface {
	Kind() AttachmentKind
	Properties() *AttachmentProperties
	Path() Path
	Update(ctx context.Context) (Attachment, error)
	Delete(ctx context.Context) error

	payload() (any, error)
}

// AttachmentProperties are the fields shared by every attachment variant.
type AttachmentProperties struct {
	ODataType            string     `json:"@odata.type,omitempty"`
	ID                   string     `json:"Id,omitempty"`
	Name                 string     `json:"Name,omitempty"`
	ContentType          string     `json:"ContentType,omitempty"`
	Size                 int        `json:"Size,omitempty"`
	IsInline             bool       `json:"IsInline,omitempty"`
	DateTimeLastModified *time.Time `json:"DateTimeLastModified,omitempty"`
}

// AttachmentFetcher is a handle to one attachment.
type AttachmentFetcher struct {
	Fetcher[Attachment]
}

func newAttachmentFetcher(c *Context, p Path, err error, id string) *AttachmentFetcher {
	return &AttachmentFetcher{Fetcher: newFetcher(c, p, err, id, "getAttachment", hydrateAttachment)}
}

// Delete deletes the attachment.
func (f *AttachmentFetcher) Delete(ctx context.Context) error {
	return executeVoid(ctx, &f.Entity, "deleteAttachment")
}

// hydrateAttachment picks the variant from the @odata.type discriminator.
func hydrateAttachment(c *Context, p Path, raw []byte) (Attachment, error) {
	var kind struct {
		ODataType string `json:"@odata.type"`
	}
	if err := json.Unmarshal(raw, &kind); err != nil {
		return nil, err
	}

	switch ResolveAttachmentKind(kind.ODataType) {
	case AttachmentKindFile:
		a, err := hydrateJSON[FileAttachment](c, p, raw)
		if err != nil {
			return nil, err
		}
		return a, nil
	case AttachmentKindItem:
		a, err := hydrateJSON[ItemAttachment](c, p, raw)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		a, err := hydrateJSON[GenericAttachment](c, p, raw)
		if err != nil {
			return nil, err
		}
		return a, nil
	}
}

func updateAttachment(ctx context.Context, a Attachment, e *Entity) (Attachment, error) {
	body, err := encodeAttachment(a)
	if err != nil {
		return nil, err
	}
	return execute(ctx, e, "updateAttachment", hydrateAttachment, atSelf, body)
}

func encodeAttachment(a Attachment) (string, error) {
	v, err := a.payload()
	if err != nil {
		return "", err
	}
	return encodePayload(v)
}

// FileAttachmentPayload is the writable form of a file attachment.
type FileAttachmentPayload struct {
	ODataType       string `json:"@odata.type" validate:"required"`
	Name            string `json:"Name" validate:"required"`
	ContentType     string `json:"ContentType,omitempty"`
	IsInline        bool   `json:"IsInline,omitempty"`
	ContentID       string `json:"ContentId,omitempty"`
	ContentLocation string `json:"ContentLocation,omitempty"`
	ContentBytes    []byte `json:"ContentBytes,omitempty"`
}

// FileAttachment is a file attached to a message or event.
// ContentBytes travels base64 encoded.
type FileAttachment struct {
	AttachmentFetcher
	AttachmentProperties
	ContentID       string `json:"ContentId,omitempty"`
	ContentLocation string `json:"ContentLocation,omitempty"`
	IsContactPhoto  bool   `json:"IsContactPhoto,omitempty"`
	ContentBytes    []byte `json:"ContentBytes,omitempty"`
}

// NewFileAttachment returns an unsaved file attachment for AddAttachment.
func NewFileAttachment(name, contentType string, content []byte) *FileAttachment {
	return &FileAttachment{
		AttachmentProperties: AttachmentProperties{
			ODataType:   ODataFileAttachment,
			Name:        name,
			ContentType: contentType,
		},
		ContentBytes: content,
	}
}

func (a *FileAttachment) bind(c *Context, p Path) {
	a.AttachmentFetcher = *newAttachmentFetcher(c, p, nil, a.ID)
}

// Kind returns AttachmentKindFile.
func (a *FileAttachment) Kind() AttachmentKind { return AttachmentKindFile }

// Properties returns the common attachment fields.
func (a *FileAttachment) Properties() *AttachmentProperties { return &a.AttachmentProperties }

// Payload returns the writable fields.
func (a *FileAttachment) Payload() FileAttachmentPayload {
	return FileAttachmentPayload{
		ODataType:       ODataFileAttachment,
		Name:            a.Name,
		ContentType:     a.ContentType,
		IsInline:        a.IsInline,
		ContentID:       a.ContentID,
		ContentLocation: a.ContentLocation,
		ContentBytes:    a.ContentBytes,
	}
}

func (a *FileAttachment) payload() (any, error) {
	return a.Payload(), nil
}

// Update saves the writable fields and returns the updated attachment.
func (a *FileAttachment) Update(ctx context.Context) (Attachment, error) {
	return updateAttachment(ctx, a, &a.Entity)
}

// AttachedItem is the item carried in an item attachment payload.
type AttachedItem struct {
	ODataType string `json:"@odata.type"`
	ItemPayload
}

// ItemAttachmentPayload is the writable form of an item attachment.
type ItemAttachmentPayload struct {
	ODataType string        `json:"@odata.type" validate:"required"`
	Name      string        `json:"Name" validate:"required"`
	IsInline  bool          `json:"IsInline,omitempty"`
	Item      *AttachedItem `json:"Item,omitempty"`
}

// ItemAttachment is a message or event attached to another item.
type ItemAttachment struct {
	AttachmentFetcher
	AttachmentProperties
	Item *ItemProperties `json:"Item,omitempty"`
}

// NewItemAttachment returns an unsaved attachment that carries a message.
func NewItemAttachment(name string, item ItemPayload) *ItemAttachment {
	return &ItemAttachment{
		AttachmentProperties: AttachmentProperties{
			ODataType: ODataItemAttachment,
			Name:      name,
		},
		Item: &ItemProperties{
			Body:       item.Body,
			Categories: item.Categories,
			Importance: item.Importance,
			Subject:    item.Subject,
		},
	}
}

func (a *ItemAttachment) bind(c *Context, p Path) {
	a.AttachmentFetcher = *newAttachmentFetcher(c, p, nil, a.ID)
}

// Kind returns AttachmentKindItem.
func (a *ItemAttachment) Kind() AttachmentKind { return AttachmentKindItem }

// Properties returns the common attachment fields.
func (a *ItemAttachment) Properties() *AttachmentProperties { return &a.AttachmentProperties }

// ItemFetcher returns a handle to the attached item.
func (a *ItemAttachment) ItemFetcher() *ItemFetcher {
	return navigate(&a.Entity, "Item", newItemFetcher)
}

// Payload returns the writable fields.
func (a *ItemAttachment) Payload() ItemAttachmentPayload {
	p := ItemAttachmentPayload{
		ODataType: ODataItemAttachment,
		Name:      a.Name,
		IsInline:  a.IsInline,
	}
	if a.Item != nil {
		p.Item = &AttachedItem{ODataType: ODataMessage, ItemPayload: a.Item.ItemPayload()}
	}
	return p
}

func (a *ItemAttachment) payload() (any, error) {
	return a.Payload(), nil
}

// Update saves the writable fields and returns the updated attachment.
func (a *ItemAttachment) Update(ctx context.Context) (Attachment, error) {
	return updateAttachment(ctx, a, &a.Entity)
}

// GenericAttachment is an attachment whose type the service did not name
// or that this package does not know. It can be read and deleted only.
type GenericAttachment struct {
	AttachmentFetcher
	AttachmentProperties
}

func (a *GenericAttachment) bind(c *Context, p Path) {
	a.AttachmentFetcher = *newAttachmentFetcher(c, p, nil, a.ID)
}

// Kind returns AttachmentKindGeneric.
func (a *GenericAttachment) Kind() AttachmentKind { return AttachmentKindGeneric }

// Properties returns the common attachment fields.
func (a *GenericAttachment) Properties() *AttachmentProperties { return &a.AttachmentProperties }

func (a *GenericAttachment) payload() (any, error) {
	return nil, &LocalValidationError{
		Field:  "@odata.type",
		Reason: fmt.Sprintf("cannot write attachment of unknown type %q", a.ODataType),
		Err:    ErrMissingDiscriminator,
	}
}

// Update always fails: a generic attachment has no type to write.
func (a *GenericAttachment) Update(ctx context.Context) (Attachment, error) {
	return updateAttachment(ctx, a, &a.Entity)
}

var (
	_ Attachment = (*FileAttachment)(nil)
	_ Attachment = (*ItemAttachment)(nil)
	_ Attachment = (*GenericAttachment)(nil)
)

// Attachments is the attachment collection of a message or event.
type Attachments struct {
	Entity
}

func newAttachments(c *Context, p Path, err error) *Attachments {
	return &Attachments{Entity: newEntity(c, p, err)}
}

// GetAttachment returns a handle to one attachment by id.
func (as *Attachments) GetAttachment(id string) *AttachmentFetcher {
	return &AttachmentFetcher{Fetcher: itemFetcher(&as.Entity, id, "getAttachment", hydrateAttachment)}
}

// GetAttachments returns a fresh query over the collection.
func (as *Attachments) GetAttachments() *CollectionFetcher[Attachment] {
	return newCollectionFetcher(&as.Entity, "getAttachments", hydrateAttachment)
}

// AddAttachment uploads a file or item attachment.
// A *GenericAttachment is rejected before any remote call.
func (as *Attachments) AddAttachment(ctx context.Context, a Attachment) (Attachment, error) {
	if a == nil {
		return nil, &LocalValidationError{Field: "attachment", Reason: "attachment is nil", Err: ErrInvalidPayload}
	}
	body, err := encodeAttachment(a)
	if err != nil {
		return nil, err
	}
	return execute(ctx, &as.Entity, "addAttachment", hydrateAttachment, atChild, body)
}
