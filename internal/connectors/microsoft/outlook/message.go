package outlook

import (
	"context"
	"encoding/json"
	"time"
)

// MeetingMessageType marks meeting-related messages.
type MeetingMessageType string

const (
	MeetingNone                MeetingMessageType = "None"
	MeetingRequest             MeetingMessageType = "MeetingRequest"
	MeetingCancelled           MeetingMessageType = "MeetingCancelled"
	MeetingAccepted            MeetingMessageType = "MeetingAccepted"
	MeetingTentativelyAccepted MeetingMessageType = "MeetingTentativelyAccepted"
	MeetingDeclined            MeetingMessageType = "MeetingDeclined"
)

// MessageProperties are the message-specific fields.
type MessageProperties struct {
	ParentFolderID             string             `json:"ParentFolderId,omitempty"`
	From                       *Recipient         `json:"From,omitempty"`
	Sender                     *Recipient         `json:"Sender,omitempty"`
	ToRecipients               []Recipient        `json:"ToRecipients,omitempty"`
	CcRecipients               []Recipient        `json:"CcRecipients,omitempty"`
	BccRecipients              []Recipient        `json:"BccRecipients,omitempty"`
	ReplyTo                    []Recipient        `json:"ReplyTo,omitempty"`
	ConversationID             string             `json:"ConversationId,omitempty"`
	UniqueBody                 *ItemBody          `json:"UniqueBody,omitempty"`
	DateTimeReceived           *time.Time         `json:"DateTimeReceived,omitempty"`
	DateTimeSent               *time.Time         `json:"DateTimeSent,omitempty"`
	IsDeliveryReceiptRequested bool               `json:"IsDeliveryReceiptRequested,omitempty"`
	IsReadReceiptRequested     bool               `json:"IsReadReceiptRequested,omitempty"`
	IsDraft                    bool               `json:"IsDraft,omitempty"`
	IsRead                     bool               `json:"IsRead,omitempty"`
	EventID                    string             `json:"EventId,omitempty"`
	MeetingMessageType         MeetingMessageType `json:"MeetingMessageType,omitempty"`
}

// MessagePayload is the writable subset of a message.
type MessagePayload struct {
	ItemPayload
	From          *Recipient  `json:"From,omitempty" validate:"omitempty"`
	Sender        *Recipient  `json:"Sender,omitempty" validate:"omitempty"`
	ToRecipients  []Recipient `json:"ToRecipients,omitempty" validate:"omitempty,dive"`
	CcRecipients  []Recipient `json:"CcRecipients,omitempty" validate:"omitempty,dive"`
	BccRecipients []Recipient `json:"BccRecipients,omitempty" validate:"omitempty,dive"`
	ReplyTo       []Recipient `json:"ReplyTo,omitempty" validate:"omitempty,dive"`
}

// MessageFetcher is a handle to one message.
type MessageFetcher struct {
	Fetcher[*Message]
}

func newMessageFetcher(c *Context, p Path, err error, id string) *MessageFetcher {
	return &MessageFetcher{Fetcher: newFetcher(c, p, err, id, "getMessage", hydrateMessage)}
}

// Attachments returns the message attachments.
func (f *MessageFetcher) Attachments() *Attachments {
	return navigate(&f.Entity, "Attachments", newAttachments)
}

// Delete deletes the message.
func (f *MessageFetcher) Delete(ctx context.Context) error {
	return executeVoid(ctx, &f.Entity, "deleteMessage")
}

// Copy copies the message to a folder and returns the copy.
func (f *MessageFetcher) Copy(ctx context.Context, destinationID string) (*Message, error) {
	return execute(ctx, &f.Entity, "copyMessage", hydrateMessage, atMailbox, destinationID)
}

// Move moves the message to a folder and returns it under its new id.
func (f *MessageFetcher) Move(ctx context.Context, destinationID string) (*Message, error) {
	return execute(ctx, &f.Entity, "moveMessage", hydrateMessage, atMailbox, destinationID)
}

// Send sends a draft message.
func (f *MessageFetcher) Send(ctx context.Context) error {
	return executeVoid(ctx, &f.Entity, "send")
}

// Reply replies to the sender with a comment.
func (f *MessageFetcher) Reply(ctx context.Context, comment string) error {
	return executeVoid(ctx, &f.Entity, "reply", comment)
}

// ReplyAll replies to every recipient with a comment.
func (f *MessageFetcher) ReplyAll(ctx context.Context, comment string) error {
	return executeVoid(ctx, &f.Entity, "replyAll", comment)
}

// Forward forwards the message with a comment.
// The comment and recipients are sent as one combined payload.
func (f *MessageFetcher) Forward(ctx context.Context, comment string, to []Recipient) error {
	if to == nil {
		to = []Recipient{}
	}
	for i := range to {
		if err := validate.Struct(to[i]); err != nil {
			return validationError(err)
		}
	}
	recipients, err := json.Marshal(to)
	if err != nil {
		return &LocalValidationError{Field: "ToRecipients", Reason: err.Error(), Err: ErrInvalidPayload}
	}
	return executeVoid(ctx, &f.Entity, "forward", comment, string(recipients))
}

// CreateReply creates a reply draft.
func (f *MessageFetcher) CreateReply(ctx context.Context) (*Message, error) {
	return execute(ctx, &f.Entity, "createReply", hydrateMessage, atSibling)
}

// CreateReplyAll creates a reply-all draft.
func (f *MessageFetcher) CreateReplyAll(ctx context.Context) (*Message, error) {
	return execute(ctx, &f.Entity, "createReplyAll", hydrateMessage, atSibling)
}

// CreateForward creates a forward draft.
func (f *MessageFetcher) CreateForward(ctx context.Context) (*Message, error) {
	return execute(ctx, &f.Entity, "createForward", hydrateMessage, atSibling)
}

// Message is a hydrated message.
type Message struct {
	MessageFetcher
	ItemProperties
	MessageProperties
}

func hydrateMessage(c *Context, p Path, raw []byte) (*Message, error) {
	return hydrateJSON[Message](c, p, raw)
}

func (m *Message) bind(c *Context, p Path) {
	m.MessageFetcher = *newMessageFetcher(c, p, nil, m.ID)
}

// Payload returns the writable fields.
func (m *Message) Payload() MessagePayload {
	return MessagePayload{
		ItemPayload:   m.ItemPayload(),
		From:          m.From,
		Sender:        m.Sender,
		ToRecipients:  m.ToRecipients,
		CcRecipients:  m.CcRecipients,
		BccRecipients: m.BccRecipients,
		ReplyTo:       m.ReplyTo,
	}
}

// Update saves the writable fields and returns the updated message.
func (m *Message) Update(ctx context.Context) (*Message, error) {
	body, err := encodePayload(m.Payload())
	if err != nil {
		return nil, err
	}
	return execute(ctx, &m.Entity, "updateMessage", hydrateMessage, atSelf, body)
}

// Messages is a collection of messages.
type Messages struct {
	Entity
}

func newMessages(c *Context, p Path, err error) *Messages {
	return &Messages{Entity: newEntity(c, p, err)}
}

// GetMessage returns a handle to one message by id.
func (m *Messages) GetMessage(id string) *MessageFetcher {
	return &MessageFetcher{Fetcher: itemFetcher(&m.Entity, id, "getMessage", hydrateMessage)}
}

// GetMessages returns a fresh query over the collection.
func (m *Messages) GetMessages() *CollectionFetcher[*Message] {
	return newCollectionFetcher(&m.Entity, "getMessages", hydrateMessage)
}

// AddMessage creates a draft message in the collection.
func (m *Messages) AddMessage(ctx context.Context, item MessagePayload) (*Message, error) {
	body, err := encodePayload(item)
	if err != nil {
		return nil, err
	}
	return execute(ctx, &m.Entity, "addMessage", hydrateMessage, atChild, body)
}
