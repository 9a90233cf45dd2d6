package outlook

import (
	"time"
)

// Importance is the importance of an item.
type Importance string

const (
	ImportanceLow    Importance = "Low"
	ImportanceNormal Importance = "Normal"
	ImportanceHigh   Importance = "High"
)

// BodyType is the content type of an item body.
type BodyType string

const (
	BodyText BodyType = "Text"
	BodyHTML BodyType = "HTML"
)

// ItemBody is the body of a message, event or contact.
type ItemBody struct {
	ContentType BodyType `json:"ContentType,omitempty" validate:"omitempty,oneof=Text HTML"`
	Content     string   `json:"Content,omitempty"`
}

// EmailAddress is a named mailbox address.
type EmailAddress struct {
	Name    string `json:"Name,omitempty"`
	Address string `json:"Address,omitempty" validate:"required,email"`
}

// Recipient is a message recipient.
type Recipient struct {
	EmailAddress *EmailAddress `json:"EmailAddress,omitempty" validate:"required"`
}

// NewRecipient returns a recipient for address.
func NewRecipient(name, address string) Recipient {
	return Recipient{EmailAddress: &EmailAddress{Name: name, Address: address}}
}

// PhysicalAddress is a postal address.
type PhysicalAddress struct {
	Street          string `json:"Street,omitempty"`
	City            string `json:"City,omitempty"`
	State           string `json:"State,omitempty"`
	CountryOrRegion string `json:"CountryOrRegion,omitempty"`
	PostalCode      string `json:"PostalCode,omitempty"`
}

// ItemProperties are the fields shared by messages, events and contacts.
type ItemProperties struct {
	ID                   string     `json:"Id,omitempty"`
	ChangeKey            string     `json:"ChangeKey,omitempty"`
	Body                 *ItemBody  `json:"Body,omitempty"`
	BodyPreview          string     `json:"BodyPreview,omitempty"`
	Categories           []string   `json:"Categories,omitempty"`
	ClassName            string     `json:"ClassName,omitempty"`
	DateTimeCreated      *time.Time `json:"DateTimeCreated,omitempty"`
	DateTimeLastModified *time.Time `json:"DateTimeLastModified,omitempty"`
	HasAttachments       bool       `json:"HasAttachments,omitempty"`
	Importance           Importance `json:"Importance,omitempty"`
	Subject              string     `json:"Subject,omitempty"`
}

// ItemPayload is the writable subset of ItemProperties.
type ItemPayload struct {
	Body       *ItemBody  `json:"Body,omitempty"`
	Categories []string   `json:"Categories,omitempty"`
	Importance Importance `json:"Importance,omitempty" validate:"omitempty,oneof=Low Normal High"`
	Subject    string     `json:"Subject,omitempty"`
}

// ItemPayload projects the writable item fields.
func (p *ItemProperties) ItemPayload() ItemPayload {
	return ItemPayload{
		Body:       p.Body,
		Categories: p.Categories,
		Importance: p.Importance,
		Subject:    p.Subject,
	}
}

// Item is the item carried by an item attachment. The service returns
// either a message or an event; only the common fields are decoded.
type Item struct {
	Entity
	ItemProperties
}

func hydrateItem(c *Context, p Path, raw []byte) (*Item, error) {
	return hydrateJSON[Item](c, p, raw)
}

// ItemFetcher reads the item of an item attachment.
type ItemFetcher struct {
	Fetcher[*Item]
}

func newItemFetcher(c *Context, p Path, err error) *ItemFetcher {
	return &ItemFetcher{Fetcher: newFetcher(c, p, err, "", "getAttachmentItem", hydrateItem)}
}
