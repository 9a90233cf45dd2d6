package outlook

import (
	"context"
	"time"
)

// ContactProperties are the contact card fields.
type ContactProperties struct {
	ParentFolderID   string           `json:"ParentFolderId,omitempty"`
	Birthday         *time.Time       `json:"Birthday,omitempty"`
	FileAs           string           `json:"FileAs,omitempty"`
	DisplayName      string           `json:"DisplayName,omitempty"`
	GivenName        string           `json:"GivenName,omitempty"`
	Initials         string           `json:"Initials,omitempty"`
	MiddleName       string           `json:"MiddleName,omitempty"`
	NickName         string           `json:"NickName,omitempty"`
	Surname          string           `json:"Surname,omitempty"`
	Title            string           `json:"Title,omitempty"`
	Generation       string           `json:"Generation,omitempty"`
	EmailAddresses   []EmailAddress   `json:"EmailAddresses,omitempty"`
	ImAddresses      []string         `json:"ImAddresses,omitempty"`
	JobTitle         string           `json:"JobTitle,omitempty"`
	CompanyName      string           `json:"CompanyName,omitempty"`
	Department       string           `json:"Department,omitempty"`
	OfficeLocation   string           `json:"OfficeLocation,omitempty"`
	Profession       string           `json:"Profession,omitempty"`
	BusinessHomePage string           `json:"BusinessHomePage,omitempty"`
	AssistantName    string           `json:"AssistantName,omitempty"`
	Manager          string           `json:"Manager,omitempty"`
	HomePhones       []string         `json:"HomePhones,omitempty"`
	BusinessPhones   []string         `json:"BusinessPhones,omitempty"`
	MobilePhone1     string           `json:"MobilePhone1,omitempty"`
	HomeAddress      *PhysicalAddress `json:"HomeAddress,omitempty"`
	BusinessAddress  *PhysicalAddress `json:"BusinessAddress,omitempty"`
	OtherAddress     *PhysicalAddress `json:"OtherAddress,omitempty"`
	SpouseName       string           `json:"SpouseName,omitempty"`
	PersonalNotes    string           `json:"PersonalNotes,omitempty"`
	Children         []string         `json:"Children,omitempty"`
	YomiGivenName    string           `json:"YomiGivenName,omitempty"`
	YomiSurname      string           `json:"YomiSurname,omitempty"`
	YomiCompanyName  string           `json:"YomiCompanyName,omitempty"`
}

// ContactPayload is the writable subset of a contact. Contacts carry no
// body or subject, so the shared item fields are limited to categories.
type ContactPayload struct {
	Categories       []string         `json:"Categories,omitempty"`
	Birthday         *time.Time       `json:"Birthday,omitempty"`
	FileAs           string           `json:"FileAs,omitempty"`
	DisplayName      string           `json:"DisplayName,omitempty"`
	GivenName        string           `json:"GivenName,omitempty"`
	Initials         string           `json:"Initials,omitempty"`
	MiddleName       string           `json:"MiddleName,omitempty"`
	NickName         string           `json:"NickName,omitempty"`
	Surname          string           `json:"Surname,omitempty"`
	Title            string           `json:"Title,omitempty"`
	Generation       string           `json:"Generation,omitempty"`
	EmailAddresses   []EmailAddress   `json:"EmailAddresses,omitempty" validate:"omitempty,dive"`
	ImAddresses      []string         `json:"ImAddresses,omitempty"`
	JobTitle         string           `json:"JobTitle,omitempty"`
	CompanyName      string           `json:"CompanyName,omitempty"`
	Department       string           `json:"Department,omitempty"`
	OfficeLocation   string           `json:"OfficeLocation,omitempty"`
	Profession       string           `json:"Profession,omitempty"`
	BusinessHomePage string           `json:"BusinessHomePage,omitempty" validate:"omitempty,url"`
	AssistantName    string           `json:"AssistantName,omitempty"`
	Manager          string           `json:"Manager,omitempty"`
	HomePhones       []string         `json:"HomePhones,omitempty"`
	BusinessPhones   []string         `json:"BusinessPhones,omitempty"`
	MobilePhone1     string           `json:"MobilePhone1,omitempty"`
	HomeAddress      *PhysicalAddress `json:"HomeAddress,omitempty"`
	BusinessAddress  *PhysicalAddress `json:"BusinessAddress,omitempty"`
	OtherAddress     *PhysicalAddress `json:"OtherAddress,omitempty"`
	SpouseName       string           `json:"SpouseName,omitempty"`
	PersonalNotes    string           `json:"PersonalNotes,omitempty"`
	Children         []string         `json:"Children,omitempty"`
	YomiGivenName    string           `json:"YomiGivenName,omitempty"`
	YomiSurname      string           `json:"YomiSurname,omitempty"`
	YomiCompanyName  string           `json:"YomiCompanyName,omitempty"`
}

// ContactFetcher is a handle to one contact.
type ContactFetcher struct {
	Fetcher[*Contact]
}

func newContactFetcher(c *Context, p Path, err error, id string) *ContactFetcher {
	return &ContactFetcher{Fetcher: newFetcher(c, p, err, id, "getContact", hydrateContact)}
}

// Delete deletes the contact.
func (f *ContactFetcher) Delete(ctx context.Context) error {
	return executeVoid(ctx, &f.Entity, "deleteContact")
}

// Contact is a hydrated contact.
type Contact struct {
	ContactFetcher
	ItemProperties
	ContactProperties
}

func hydrateContact(c *Context, p Path, raw []byte) (*Contact, error) {
	return hydrateJSON[Contact](c, p, raw)
}

func (ct *Contact) bind(c *Context, p Path) {
	ct.ContactFetcher = *newContactFetcher(c, p, nil, ct.ID)
}

// Payload returns the writable fields.
func (ct *Contact) Payload() ContactPayload {
	return ContactPayload{
		Categories:       ct.Categories,
		Birthday:         ct.Birthday,
		FileAs:           ct.FileAs,
		DisplayName:      ct.DisplayName,
		GivenName:        ct.GivenName,
		Initials:         ct.Initials,
		MiddleName:       ct.MiddleName,
		NickName:         ct.NickName,
		Surname:          ct.Surname,
		Title:            ct.Title,
		Generation:       ct.Generation,
		EmailAddresses:   ct.EmailAddresses,
		ImAddresses:      ct.ImAddresses,
		JobTitle:         ct.JobTitle,
		CompanyName:      ct.CompanyName,
		Department:       ct.Department,
		OfficeLocation:   ct.OfficeLocation,
		Profession:       ct.Profession,
		BusinessHomePage: ct.BusinessHomePage,
		AssistantName:    ct.AssistantName,
		Manager:          ct.Manager,
		HomePhones:       ct.HomePhones,
		BusinessPhones:   ct.BusinessPhones,
		MobilePhone1:     ct.MobilePhone1,
		HomeAddress:      ct.HomeAddress,
		BusinessAddress:  ct.BusinessAddress,
		OtherAddress:     ct.OtherAddress,
		SpouseName:       ct.SpouseName,
		PersonalNotes:    ct.PersonalNotes,
		Children:         ct.Children,
		YomiGivenName:    ct.YomiGivenName,
		YomiSurname:      ct.YomiSurname,
		YomiCompanyName:  ct.YomiCompanyName,
	}
}

// Update saves the writable fields and returns the updated contact.
func (ct *Contact) Update(ctx context.Context) (*Contact, error) {
	body, err := encodePayload(ct.Payload())
	if err != nil {
		return nil, err
	}
	return execute(ctx, &ct.Entity, "updateContact", hydrateContact, atSelf, body)
}

// Contacts is a collection of contacts.
type Contacts struct {
	Entity
}

func newContacts(c *Context, p Path, err error) *Contacts {
	return &Contacts{Entity: newEntity(c, p, err)}
}

// GetContact returns a handle to one contact by id.
func (cs *Contacts) GetContact(id string) *ContactFetcher {
	return &ContactFetcher{Fetcher: itemFetcher(&cs.Entity, id, "getContact", hydrateContact)}
}

// GetContacts returns a fresh query over the collection.
func (cs *Contacts) GetContacts() *CollectionFetcher[*Contact] {
	return newCollectionFetcher(&cs.Entity, "getContacts", hydrateContact)
}

// AddContact creates a contact in the collection.
func (cs *Contacts) AddContact(ctx context.Context, item ContactPayload) (*Contact, error) {
	body, err := encodePayload(item)
	if err != nil {
		return nil, err
	}
	return execute(ctx, &cs.Entity, "addContact", hydrateContact, atChild, body)
}
