package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft/outlook"
)

var foldersCmd = &cobra.Command{
	Use:     "folders",
	Aliases: []string{"folder"},
	Short:   "Manage mail folders",
	Long: `List, create, copy, move and delete mail folders.

Well-known folders can be addressed by name: Inbox, Drafts, SentItems,
DeletedItems.`,
}

var foldersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List mail folders",
	Args:  cobra.NoArgs,
	RunE:  runFoldersList,
}

var foldersGetCmd = &cobra.Command{
	Use:   "get [folder-id]",
	Short: "Show one mail folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runFoldersGet,
}

var foldersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a mail folder",
	Long: `Create a mail folder under the top of the mailbox or under --parent.

Examples:
  outlook folders add --name Receipts
  outlook folders add --name 2024 --parent <folder-id>
  outlook folders add -f folder.yaml`,
	Args: cobra.NoArgs,
	RunE: runFoldersAdd,
}

var foldersRenameCmd = &cobra.Command{
	Use:   "rename [folder-id] [name]",
	Short: "Rename a mail folder",
	Args:  cobra.ExactArgs(2),
	RunE:  runFoldersRename,
}

var foldersDeleteCmd = &cobra.Command{
	Use:   "delete [folder-id]",
	Short: "Delete a mail folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runFoldersDelete,
}

var foldersCopyCmd = &cobra.Command{
	Use:   "copy [folder-id] [destination-id]",
	Short: "Copy a mail folder into another folder",
	Args:  cobra.ExactArgs(2),
	RunE:  runFoldersCopy,
}

var foldersMoveCmd = &cobra.Command{
	Use:   "move [folder-id] [destination-id]",
	Short: "Move a mail folder into another folder",
	Args:  cobra.ExactArgs(2),
	RunE:  runFoldersMove,
}

// Flags for folders.
var (
	folderParent string
	folderName   string
	folderFile   string
	folderQuery  queryFlags
)

func init() {
	foldersListCmd.Flags().StringVar(&folderParent, "parent", "", "list the child folders of this folder")
	folderQuery.register(foldersListCmd)
	foldersAddCmd.Flags().StringVar(&folderParent, "parent", "", "create the folder under this folder")
	foldersAddCmd.Flags().StringVar(&folderName, "name", "", "display name of the new folder")
	foldersAddCmd.Flags().StringVarP(&folderFile, "file", "f", "", "read the folder from a YAML or JSON file (- for stdin)")

	foldersCmd.AddCommand(foldersListCmd)
	foldersCmd.AddCommand(foldersGetCmd)
	foldersCmd.AddCommand(foldersAddCmd)
	foldersCmd.AddCommand(foldersRenameCmd)
	foldersCmd.AddCommand(foldersDeleteCmd)
	foldersCmd.AddCommand(foldersCopyCmd)
	foldersCmd.AddCommand(foldersMoveCmd)
	rootCmd.AddCommand(foldersCmd)
}

var folderHeaders = []string{"ID", "NAME", "PARENT", "CHILDREN"}

func folderRow(f *outlook.Folder) []string {
	return []string{f.ID, f.DisplayName, f.ParentFolderID, strconv.Itoa(f.ChildFolderCount)}
}

func folderTable(f *outlook.Folder) table {
	return table{headers: folderHeaders, rows: [][]string{folderRow(f)}}
}

// folders returns the collection folders are listed in or added to.
func folders(s *Session, parent string) *outlook.Folders {
	if parent == "" {
		return s.Mailbox().Folders()
	}
	return s.Mailbox().Folders().GetFolder(parent).ChildFolders()
}

func runFoldersList(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(_ context.Context, s *Session) error {
		return listCollection(cmd, folders(s, folderParent).GetFolders(), &folderQuery, folderHeaders, folderRow)
	})
}

func runFoldersGet(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		folder, err := s.Mailbox().Folders().GetFolder(args[0]).Fetch(ctx)
		if err != nil {
			return err
		}
		return render(cmd, folder, folderTable(folder))
	})
}

func runFoldersAdd(cmd *cobra.Command, _ []string) error {
	var payload outlook.FolderPayload
	switch {
	case folderFile != "":
		if err := readPayload(cmd, folderFile, &payload); err != nil {
			return err
		}
	case folderName != "":
		payload.DisplayName = folderName
	default:
		return errors.New("either --name or --file is required")
	}

	return withSession(cmd, func(ctx context.Context, s *Session) error {
		folder, err := folders(s, folderParent).AddFolder(ctx, payload)
		if err != nil {
			return err
		}
		return render(cmd, folder, folderTable(folder))
	})
}

func runFoldersRename(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		folder, err := s.Mailbox().Folders().GetFolder(args[0]).Fetch(ctx)
		if err != nil {
			return err
		}
		folder.DisplayName = args[1]
		updated, err := folder.Update(ctx)
		if err != nil {
			return err
		}
		return render(cmd, updated, folderTable(updated))
	})
}

func runFoldersDelete(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		if err := s.Mailbox().Folders().GetFolder(args[0]).Delete(ctx); err != nil {
			return err
		}
		cmd.Printf("Deleted folder %s\n", args[0])
		return nil
	})
}

func runFoldersCopy(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		folder, err := s.Mailbox().Folders().GetFolder(args[0]).Copy(ctx, args[1])
		if err != nil {
			return err
		}
		return render(cmd, folder, folderTable(folder))
	})
}

func runFoldersMove(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		folder, err := s.Mailbox().Folders().GetFolder(args[0]).Move(ctx, args[1])
		if err != nil {
			return err
		}
		return render(cmd, folder, folderTable(folder))
	})
}
