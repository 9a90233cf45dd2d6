package outlook

import "context"

// FolderProperties are the fields of a mail folder.
type FolderProperties struct {
	ID               string `json:"Id,omitempty"`
	ParentFolderID   string `json:"ParentFolderId,omitempty"`
	DisplayName      string `json:"DisplayName,omitempty"`
	ChildFolderCount int    `json:"ChildFolderCount,omitempty"`
}

// FolderPayload is the writable subset of a folder.
type FolderPayload struct {
	DisplayName string `json:"DisplayName" validate:"required"`
}

// FolderFetcher is a handle to one mail folder.
type FolderFetcher struct {
	Fetcher[*Folder]
}

func newFolderFetcher(c *Context, p Path, err error, id string) *FolderFetcher {
	return &FolderFetcher{Fetcher: newFetcher(c, p, err, id, "getFolder", hydrateFolder)}
}

// ChildFolders returns the folders directly below this one.
func (f *FolderFetcher) ChildFolders() *Folders {
	return navigate(&f.Entity, "ChildFolders", newFolders)
}

// Messages returns the messages in this folder.
func (f *FolderFetcher) Messages() *Messages {
	return navigate(&f.Entity, "Messages", newMessages)
}

// Delete deletes the folder and its contents.
func (f *FolderFetcher) Delete(ctx context.Context) error {
	return executeVoid(ctx, &f.Entity, "deleteFolder")
}

// Copy copies the folder below the destination folder.
func (f *FolderFetcher) Copy(ctx context.Context, destinationID string) (*Folder, error) {
	return execute(ctx, &f.Entity, "copyFolder", hydrateFolder, atMailbox, destinationID)
}

// Move moves the folder below the destination folder.
func (f *FolderFetcher) Move(ctx context.Context, destinationID string) (*Folder, error) {
	return execute(ctx, &f.Entity, "moveFolder", hydrateFolder, atMailbox, destinationID)
}

// Folder is a hydrated mail folder.
type Folder struct {
	FolderFetcher
	FolderProperties
}

func hydrateFolder(c *Context, p Path, raw []byte) (*Folder, error) {
	return hydrateJSON[Folder](c, p, raw)
}

func (f *Folder) bind(c *Context, p Path) {
	f.FolderFetcher = *newFolderFetcher(c, p, nil, f.ID)
}

// Payload returns the writable fields.
func (f *Folder) Payload() FolderPayload {
	return FolderPayload{DisplayName: f.DisplayName}
}

// Update saves the writable fields and returns the updated folder.
func (f *Folder) Update(ctx context.Context) (*Folder, error) {
	body, err := encodePayload(f.Payload())
	if err != nil {
		return nil, err
	}
	return execute(ctx, &f.Entity, "updateFolder", hydrateFolder, atSelf, body)
}

// Folders is a collection of mail folders.
type Folders struct {
	Entity
}

func newFolders(c *Context, p Path, err error) *Folders {
	return &Folders{Entity: newEntity(c, p, err)}
}

// GetFolder returns a handle to one folder by id.
func (f *Folders) GetFolder(id string) *FolderFetcher {
	return &FolderFetcher{Fetcher: itemFetcher(&f.Entity, id, "getFolder", hydrateFolder)}
}

// GetFolders returns a fresh query over the collection.
func (f *Folders) GetFolders() *CollectionFetcher[*Folder] {
	return newCollectionFetcher(&f.Entity, "getFolders", hydrateFolder)
}

// AddFolder creates a folder in the collection.
func (f *Folders) AddFolder(ctx context.Context, item FolderPayload) (*Folder, error) {
	body, err := encodePayload(item)
	if err != nil {
		return nil, err
	}
	return execute(ctx, &f.Entity, "addFolder", hydrateFolder, atChild, body)
}
