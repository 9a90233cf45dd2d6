package outlook

import "context"

// ContactFolderProperties are the fields of a contact folder.
type ContactFolderProperties struct {
	ID             string `json:"Id,omitempty"`
	ParentFolderID string `json:"ParentFolderId,omitempty"`
	DisplayName    string `json:"DisplayName,omitempty"`
}

// ContactFolderPayload is the writable subset of a contact folder.
type ContactFolderPayload struct {
	DisplayName string `json:"DisplayName" validate:"required"`
}

// ContactFolderFetcher is a handle to one contact folder.
type ContactFolderFetcher struct {
	Fetcher[*ContactFolder]
}

func newContactFolderFetcher(c *Context, p Path, err error, id string) *ContactFolderFetcher {
	return &ContactFolderFetcher{Fetcher: newFetcher(c, p, err, id, "getContactFolder", hydrateContactFolder)}
}

// ChildFolders returns the contact folders directly below this one.
func (f *ContactFolderFetcher) ChildFolders() *ContactFolders {
	return navigate(&f.Entity, "ChildFolders", newContactFolders)
}

// Contacts returns the contacts in this folder.
func (f *ContactFolderFetcher) Contacts() *Contacts {
	return navigate(&f.Entity, "Contacts", newContacts)
}

// Delete deletes the contact folder.
func (f *ContactFolderFetcher) Delete(ctx context.Context) error {
	return executeVoid(ctx, &f.Entity, "deleteContactFolder")
}

// ContactFolder is a hydrated contact folder.
type ContactFolder struct {
	ContactFolderFetcher
	ContactFolderProperties
}

func hydrateContactFolder(c *Context, p Path, raw []byte) (*ContactFolder, error) {
	return hydrateJSON[ContactFolder](c, p, raw)
}

func (cf *ContactFolder) bind(c *Context, p Path) {
	cf.ContactFolderFetcher = *newContactFolderFetcher(c, p, nil, cf.ID)
}

// Payload returns the writable fields.
func (cf *ContactFolder) Payload() ContactFolderPayload {
	return ContactFolderPayload{DisplayName: cf.DisplayName}
}

// Update saves the writable fields and returns the updated folder.
func (cf *ContactFolder) Update(ctx context.Context) (*ContactFolder, error) {
	body, err := encodePayload(cf.Payload())
	if err != nil {
		return nil, err
	}
	return execute(ctx, &cf.Entity, "updateContactFolder", hydrateContactFolder, atSelf, body)
}

// ContactFolders is a collection of contact folders.
type ContactFolders struct {
	Entity
}

func newContactFolders(c *Context, p Path, err error) *ContactFolders {
	return &ContactFolders{Entity: newEntity(c, p, err)}
}

// GetContactFolder returns a handle to one contact folder by id.
func (cs *ContactFolders) GetContactFolder(id string) *ContactFolderFetcher {
	f := itemFetcher(&cs.Entity, id, "getContactFolder", hydrateContactFolder)
	return &ContactFolderFetcher{Fetcher: f}
}

// GetContactFolders returns a fresh query over the collection.
func (cs *ContactFolders) GetContactFolders() *CollectionFetcher[*ContactFolder] {
	return newCollectionFetcher(&cs.Entity, "getContactFolders", hydrateContactFolder)
}

// AddContactFolder creates a contact folder.
func (cs *ContactFolders) AddContactFolder(ctx context.Context, item ContactFolderPayload) (*ContactFolder, error) {
	body, err := encodePayload(item)
	if err != nil {
		return nil, err
	}
	return execute(ctx, &cs.Entity, "addContactFolder", hydrateContactFolder, atChild, body)
}
