package outlook

import "context"

// Readable is a handle that can read its resource.
type Readable[T any] interface {
	Fetch(ctx context.Context) (T, error)
}

// Listable is a handle that can list a collection.
type Listable[T any] interface {
	FetchAll(ctx context.Context) ([]T, error)
}

// Writable is a resource whose writable fields can be saved.
type Writable[T any] interface {
	Update(ctx context.Context) (T, error)
}

// Deletable is a resource that can be deleted.
type Deletable interface {
	Delete(ctx context.Context) error
}

// Copyable is a resource that can be copied to a folder.
// The destination is a folder id or a well-known folder name.
type Copyable[T any] interface {
	Copy(ctx context.Context, destinationID string) (T, error)
}

// Movable is a resource that can be moved to a folder.
type Movable[T any] interface {
	Move(ctx context.Context, destinationID string) (T, error)
}

// Sendable is a message that can be sent.
type Sendable interface {
	Send(ctx context.Context) error
}

// Replyable is a message that can be answered.
type Replyable interface {
	Reply(ctx context.Context, comment string) error
	ReplyAll(ctx context.Context, comment string) error
	Forward(ctx context.Context, comment string, to []Recipient) error
}

// Respondable is a meeting that can be responded to.
type Respondable interface {
	Accept(ctx context.Context, comment string) error
	Decline(ctx context.Context, comment string) error
	TentativelyAccept(ctx context.Context, comment string) error
}

var (
	_ Readable[*Message] = (*MessageFetcher)(nil)
	_ Readable[*Message] = (*Message)(nil)
	_ Writable[*Message] = (*Message)(nil)
	_ Deletable          = (*MessageFetcher)(nil)
	_ Copyable[*Message] = (*MessageFetcher)(nil)
	_ Movable[*Message]  = (*MessageFetcher)(nil)
	_ Sendable           = (*MessageFetcher)(nil)
	_ Replyable          = (*MessageFetcher)(nil)

	_ Readable[*Folder] = (*FolderFetcher)(nil)
	_ Writable[*Folder] = (*Folder)(nil)
	_ Deletable         = (*FolderFetcher)(nil)
	_ Copyable[*Folder] = (*FolderFetcher)(nil)
	_ Movable[*Folder]  = (*FolderFetcher)(nil)

	_ Readable[*Event] = (*EventFetcher)(nil)
	_ Writable[*Event] = (*Event)(nil)
	_ Deletable        = (*EventFetcher)(nil)
	_ Respondable      = (*EventFetcher)(nil)

	_ Readable[*Calendar]      = (*CalendarFetcher)(nil)
	_ Writable[*Calendar]      = (*Calendar)(nil)
	_ Deletable                = (*Calendar)(nil)
	_ Readable[*CalendarGroup] = (*CalendarGroupFetcher)(nil)
	_ Writable[*CalendarGroup] = (*CalendarGroup)(nil)
	_ Deletable                = (*CalendarGroup)(nil)

	_ Readable[*Contact]       = (*ContactFetcher)(nil)
	_ Writable[*Contact]       = (*Contact)(nil)
	_ Deletable                = (*Contact)(nil)
	_ Readable[*ContactFolder] = (*ContactFolderFetcher)(nil)
	_ Writable[*ContactFolder] = (*ContactFolder)(nil)
	_ Deletable                = (*ContactFolder)(nil)

	_ Readable[*User] = (*UserFetcher)(nil)
	_ Writable[*User] = (*User)(nil)
	_ Deletable       = (*User)(nil)

	_ Readable[Attachment] = (*AttachmentFetcher)(nil)
	_ Deletable            = Attachment(nil)

	_ Listable[*Message]   = (*CollectionFetcher[*Message])(nil)
	_ Listable[Attachment] = (*CollectionFetcher[Attachment])(nil)
)
