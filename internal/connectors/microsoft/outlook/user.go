package outlook

import "context"

// Well-known folder names the service resolves server-side.
const (
	FolderRootFolder   = "RootFolder"
	FolderInbox        = "Inbox"
	FolderDrafts       = "Drafts"
	FolderSentItems    = "SentItems"
	FolderDeletedItems = "DeletedItems"
)

// UserProperties are the fields of a mailbox user.
type UserProperties struct {
	ID          string `json:"Id,omitempty"`
	DisplayName string `json:"DisplayName,omitempty"`
	Alias       string `json:"Alias,omitempty"`
	MailboxGUID string `json:"MailboxGuid,omitempty"`
}

// UserPayload is the writable subset of a user.
type UserPayload struct {
	DisplayName string `json:"DisplayName,omitempty"`
	Alias       string `json:"Alias,omitempty"`
}

// UserFetcher is a handle to one mailbox user.
type UserFetcher struct {
	Fetcher[*User]
}

func newUserFetcher(c *Context, p Path, err error, id string) *UserFetcher {
	return &UserFetcher{Fetcher: newFetcher(c, p, err, id, "getUser", hydrateUser)}
}

// Delete deletes the user.
func (f *UserFetcher) Delete(ctx context.Context) error {
	return executeVoid(ctx, &f.Entity, "deleteUser")
}

// Contacts returns the user's default contacts collection.
func (f *UserFetcher) Contacts() *Contacts {
	return navigate(&f.Entity, "Contacts", newContacts)
}

// Calendar returns the user's primary calendar.
func (f *UserFetcher) Calendar() *CalendarFetcher {
	return navigate(&f.Entity, "Calendar", func(c *Context, p Path, err error) *CalendarFetcher {
		return newCalendarFetcher(c, p, err, "Calendar")
	})
}

// Calendars returns the user's calendars.
func (f *UserFetcher) Calendars() *Calendars {
	return navigate(&f.Entity, "Calendars", newCalendars)
}

// CalendarGroups returns the user's calendar groups.
func (f *UserFetcher) CalendarGroups() *CalendarGroups {
	return navigate(&f.Entity, "CalendarGroups", newCalendarGroups)
}

// Events returns the events of the user's primary calendar.
func (f *UserFetcher) Events() *Events {
	return navigate(&f.Entity, "Events", newEvents)
}

// Messages returns every message in the mailbox.
func (f *UserFetcher) Messages() *Messages {
	return navigate(&f.Entity, "Messages", newMessages)
}

// Folders returns the user's mail folders.
func (f *UserFetcher) Folders() *Folders {
	return navigate(&f.Entity, "Folders", newFolders)
}

// ContactFolders returns the user's contact folders.
func (f *UserFetcher) ContactFolders() *ContactFolders {
	return navigate(&f.Entity, "ContactFolders", newContactFolders)
}

// RootFolder returns the root of the folder hierarchy.
func (f *UserFetcher) RootFolder() *FolderFetcher {
	return f.wellKnownFolder(FolderRootFolder)
}

// Inbox returns the inbox folder.
func (f *UserFetcher) Inbox() *FolderFetcher {
	return f.wellKnownFolder(FolderInbox)
}

// Drafts returns the drafts folder.
func (f *UserFetcher) Drafts() *FolderFetcher {
	return f.wellKnownFolder(FolderDrafts)
}

// SentItems returns the sent items folder.
func (f *UserFetcher) SentItems() *FolderFetcher {
	return f.wellKnownFolder(FolderSentItems)
}

// DeletedItems returns the deleted items folder.
func (f *UserFetcher) DeletedItems() *FolderFetcher {
	return f.wellKnownFolder(FolderDeletedItems)
}

// WellKnownFolder returns the folder with a well-known name.
func (f *UserFetcher) WellKnownFolder(name string) *FolderFetcher {
	return f.wellKnownFolder(name)
}

func (f *UserFetcher) wellKnownFolder(name string) *FolderFetcher {
	return navigate(&f.Entity, "Folders/"+name, func(c *Context, p Path, err error) *FolderFetcher {
		if name == "" {
			err = &LocalValidationError{Field: "folder", Reason: "folder name must not be empty", Err: ErrInvalidPathSegment}
		}
		return newFolderFetcher(c, p, err, name)
	})
}

// User is a hydrated mailbox user.
type User struct {
	UserFetcher
	UserProperties
}

func hydrateUser(c *Context, p Path, raw []byte) (*User, error) {
	return hydrateJSON[User](c, p, raw)
}

func (u *User) bind(c *Context, p Path) {
	u.UserFetcher = *newUserFetcher(c, p, nil, u.ID)
}

// Payload returns the writable fields.
func (u *User) Payload() UserPayload {
	return UserPayload{DisplayName: u.DisplayName, Alias: u.Alias}
}

// Update saves the writable fields and returns the updated user.
func (u *User) Update(ctx context.Context) (*User, error) {
	body, err := encodePayload(u.Payload())
	if err != nil {
		return nil, err
	}
	return execute(ctx, &u.Entity, "updateUser", hydrateUser, atSelf, body)
}

// Users is the collection of mailbox users.
type Users struct {
	Entity
}

func newUsers(c *Context, p Path, err error) *Users {
	return &Users{Entity: newEntity(c, p, err)}
}

// GetUser returns a handle to one user.
func (u *Users) GetUser(id string) *UserFetcher {
	f := itemFetcher(&u.Entity, id, "getUser", hydrateUser)
	return &UserFetcher{Fetcher: f}
}

// GetUsers returns a fresh query over the collection.
func (u *Users) GetUsers() *CollectionFetcher[*User] {
	return newCollectionFetcher(&u.Entity, "getUsers", hydrateUser)
}

// AddUser creates a user.
func (u *Users) AddUser(ctx context.Context, item UserPayload) (*User, error) {
	body, err := encodePayload(item)
	if err != nil {
		return nil, err
	}
	return execute(ctx, &u.Entity, "addUser", hydrateUser, atChild, body)
}
