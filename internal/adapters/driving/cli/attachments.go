package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft/outlook"
)

var attachmentsCmd = &cobra.Command{
	Use:     "attachments",
	Aliases: []string{"attachment"},
	Short:   "Manage message and event attachments",
	Long: `List, add, save and delete the attachments of a message, or of an
event with --event.`,
}

var attachmentsListCmd = &cobra.Command{
	Use:   "list [message-id]",
	Short: "List attachments",
	Args:  cobra.ExactArgs(1),
	RunE:  runAttachmentsList,
}

var attachmentsAddCmd = &cobra.Command{
	Use:   "add [message-id] [file]",
	Short: "Attach a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runAttachmentsAdd,
}

var attachmentsSaveCmd = &cobra.Command{
	Use:   "save [message-id] [attachment-id]",
	Short: "Save a file attachment to disk",
	Long: `Save the content of a file attachment. Item attachments (attached
messages or events) are printed instead.`,
	Args: cobra.ExactArgs(2),
	RunE: runAttachmentsSave,
}

var attachmentsDeleteCmd = &cobra.Command{
	Use:   "delete [message-id] [attachment-id]",
	Short: "Delete an attachment",
	Args:  cobra.ExactArgs(2),
	RunE:  runAttachmentsDelete,
}

// Flags for attachments.
var (
	attachmentOnEvent bool
	attachmentOut     string
	attachmentQuery   queryFlags
)

func init() {
	attachmentsCmd.PersistentFlags().BoolVar(&attachmentOnEvent, "event", false, "the parent id is an event, not a message")
	attachmentQuery.register(attachmentsListCmd)
	attachmentsSaveCmd.Flags().StringVar(&attachmentOut, "out", "", "output file (default: the attachment name)")

	attachmentsCmd.AddCommand(attachmentsListCmd)
	attachmentsCmd.AddCommand(attachmentsAddCmd)
	attachmentsCmd.AddCommand(attachmentsSaveCmd)
	attachmentsCmd.AddCommand(attachmentsDeleteCmd)
	rootCmd.AddCommand(attachmentsCmd)
}

var attachmentHeaders = []string{"ID", "KIND", "NAME", "TYPE", "SIZE"}

func attachmentRow(a outlook.Attachment) []string {
	p := a.Properties()
	return []string{p.ID, a.Kind().String(), p.Name, p.ContentType, strconv.Itoa(p.Size)}
}

func attachments(s *Session, parent string) *outlook.Attachments {
	if attachmentOnEvent {
		return s.Mailbox().Events().GetEvent(parent).Attachments()
	}
	return s.Mailbox().Messages().GetMessage(parent).Attachments()
}

func runAttachmentsList(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(_ context.Context, s *Session) error {
		return listCollection(cmd, attachments(s, args[0]).GetAttachments(), &attachmentQuery, attachmentHeaders, attachmentRow)
	})
}

func runAttachmentsAdd(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	name := filepath.Base(args[1])
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return withSession(cmd, func(ctx context.Context, s *Session) error {
		a, err := attachments(s, args[0]).AddAttachment(ctx, outlook.NewFileAttachment(name, contentType, content))
		if err != nil {
			return err
		}
		return render(cmd, a, table{headers: attachmentHeaders, rows: [][]string{attachmentRow(a)}})
	})
}

func runAttachmentsSave(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		a, err := attachments(s, args[0]).GetAttachment(args[1]).Fetch(ctx)
		if err != nil {
			return err
		}

		switch v := a.(type) {
		case *outlook.FileAttachment:
			out := attachmentOut
			if out == "" {
				out = filepath.Base(v.Name)
			}
			if err := os.WriteFile(out, v.ContentBytes, 0o600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			cmd.Printf("Saved %s (%d bytes)\n", out, len(v.ContentBytes))
			return nil
		case *outlook.ItemAttachment:
			item, err := v.ItemFetcher().Fetch(ctx)
			if err != nil {
				return err
			}
			return render(cmd, item, table{
				headers: []string{"ID", "CLASS", "SUBJECT"},
				rows:    [][]string{{item.ID, item.ClassName, item.Subject}},
			})
		default:
			return fmt.Errorf("attachment %s has no content to save (kind %s)", args[1], a.Kind())
		}
	})
}

func runAttachmentsDelete(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		if err := attachments(s, args[0]).GetAttachment(args[1]).Delete(ctx); err != nil {
			return err
		}
		cmd.Printf("Deleted attachment %s\n", args[1])
		return nil
	})
}
