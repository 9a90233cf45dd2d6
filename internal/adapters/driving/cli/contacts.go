package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft/outlook"
)

var contactsCmd = &cobra.Command{
	Use:     "contacts",
	Aliases: []string{"contact"},
	Short:   "Manage contacts",
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	Args:  cobra.NoArgs,
	RunE:  runContactsList,
}

var contactsGetCmd = &cobra.Command{
	Use:   "get [contact-id]",
	Short: "Show one contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsGet,
}

var contactsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a contact",
	Long: `Create a contact from flags or from a YAML or JSON file.

Examples:
  outlook contacts add --name "Ada Lovelace" --email ada@example.com
  outlook contacts add -f contact.yaml`,
	Args: cobra.NoArgs,
	RunE: runContactsAdd,
}

var contactsDeleteCmd = &cobra.Command{
	Use:   "delete [contact-id]",
	Short: "Delete a contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsDelete,
}

var contactFoldersCmd = &cobra.Command{
	Use:   "contact-folders",
	Short: "List contact folders",
	Args:  cobra.NoArgs,
	RunE:  runContactFoldersList,
}

// Flags for contacts.
var (
	contactFolder       string
	contactFile         string
	contactName         string
	contactEmail        string
	contactQuery        queryFlags
	contactFolderParent string
	contactFolderQuery  queryFlags
)

func init() {
	contactsCmd.PersistentFlags().StringVar(&contactFolder, "folder", "", "contact folder id (default: the default contacts)")
	contactQuery.register(contactsListCmd)
	contactsAddCmd.Flags().StringVarP(&contactFile, "file", "f", "", "read the contact from a YAML or JSON file (- for stdin)")
	contactsAddCmd.Flags().StringVar(&contactName, "name", "", "display name")
	contactsAddCmd.Flags().StringVar(&contactEmail, "email", "", "comma-separated email addresses")
	contactFoldersCmd.Flags().StringVar(&contactFolderParent, "parent", "", "list the child folders of this contact folder")
	contactFolderQuery.register(contactFoldersCmd)

	contactsCmd.AddCommand(contactsListCmd)
	contactsCmd.AddCommand(contactsGetCmd)
	contactsCmd.AddCommand(contactsAddCmd)
	contactsCmd.AddCommand(contactsDeleteCmd)
	rootCmd.AddCommand(contactsCmd)
	rootCmd.AddCommand(contactFoldersCmd)
}

var contactHeaders = []string{"ID", "NAME", "EMAIL", "COMPANY"}

func contactRow(c *outlook.Contact) []string {
	emails := make([]string, 0, len(c.EmailAddresses))
	for _, e := range c.EmailAddresses {
		emails = append(emails, e.Address)
	}
	return []string{c.ID, c.DisplayName, strings.Join(emails, ", "), c.CompanyName}
}

func contactTable(c *outlook.Contact) table {
	return table{headers: contactHeaders, rows: [][]string{contactRow(c)}}
}

func contacts(s *Session) *outlook.Contacts {
	if contactFolder == "" {
		return s.Mailbox().Contacts()
	}
	return s.Mailbox().ContactFolders().GetContactFolder(contactFolder).Contacts()
}

func runContactsList(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(_ context.Context, s *Session) error {
		return listCollection(cmd, contacts(s).GetContacts(), &contactQuery, contactHeaders, contactRow)
	})
}

func runContactsGet(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		c, err := contacts(s).GetContact(args[0]).Fetch(ctx)
		if err != nil {
			return err
		}
		return render(cmd, c, contactTable(c))
	})
}

func runContactsAdd(cmd *cobra.Command, _ []string) error {
	var payload outlook.ContactPayload
	switch {
	case contactFile != "":
		if err := readPayload(cmd, contactFile, &payload); err != nil {
			return err
		}
	case contactName != "" || contactEmail != "":
		payload.DisplayName = contactName
		for _, r := range parseRecipients(contactEmail) {
			payload.EmailAddresses = append(payload.EmailAddresses, *r.EmailAddress)
		}
	default:
		return errors.New("either --name/--email or --file is required")
	}

	return withSession(cmd, func(ctx context.Context, s *Session) error {
		c, err := contacts(s).AddContact(ctx, payload)
		if err != nil {
			return err
		}
		return render(cmd, c, contactTable(c))
	})
}

func runContactsDelete(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		if err := contacts(s).GetContact(args[0]).Delete(ctx); err != nil {
			return err
		}
		cmd.Printf("Deleted contact %s\n", args[0])
		return nil
	})
}

func runContactFoldersList(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(_ context.Context, s *Session) error {
		parents := s.Mailbox().ContactFolders()
		if contactFolderParent != "" {
			parents = parents.GetContactFolder(contactFolderParent).ChildFolders()
		}
		return listCollection(cmd, parents.GetContactFolders(), &contactFolderQuery,
			[]string{"ID", "NAME", "PARENT"},
			func(f *outlook.ContactFolder) []string {
				return []string{f.ID, f.DisplayName, f.ParentFolderID}
			})
	})
}
