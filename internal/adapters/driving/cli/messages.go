package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft/outlook"
)

var messagesCmd = &cobra.Command{
	Use:     "messages",
	Aliases: []string{"message", "mail"},
	Short:   "Read, write and send mail",
}

var messagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List messages",
	Long: `List messages in the mailbox, or in one folder with --folder.

Examples:
  outlook messages list --folder Inbox --top 20
  outlook messages list --filter "IsRead eq false" --select Subject,From
  outlook messages list --folder Inbox --top 20 --cursor <cursor>`,
	Args: cobra.NoArgs,
	RunE: runMessagesList,
}

var messagesGetCmd = &cobra.Command{
	Use:   "get [message-id]",
	Short: "Show one message",
	Args:  cobra.ExactArgs(1),
	RunE:  runMessagesGet,
}

var messagesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a draft message",
	Long: `Create a draft from a YAML or JSON file.

Example file:
  Subject: Quarterly numbers
  Body:
    ContentType: Text
    Content: See attached.
  ToRecipients:
    - EmailAddress:
        Address: finance@example.com`,
	Args: cobra.NoArgs,
	RunE: runMessagesAdd,
}

var messagesDeleteCmd = &cobra.Command{
	Use:   "delete [message-id]",
	Short: "Delete a message",
	Args:  cobra.ExactArgs(1),
	RunE:  runMessagesDelete,
}

var messagesSendCmd = &cobra.Command{
	Use:   "send [message-id]",
	Short: "Send a draft message",
	Args:  cobra.ExactArgs(1),
	RunE:  runMessagesSend,
}

var messagesReplyCmd = &cobra.Command{
	Use:   "reply [message-id]",
	Short: "Reply to a message",
	Args:  cobra.ExactArgs(1),
	RunE:  runMessagesReply,
}

var messagesForwardCmd = &cobra.Command{
	Use:   "forward [message-id]",
	Short: "Forward a message",
	Args:  cobra.ExactArgs(1),
	RunE:  runMessagesForward,
}

var messagesDraftCmd = &cobra.Command{
	Use:   "draft [message-id]",
	Short: "Create a reply, reply-all or forward draft of a message",
	Args:  cobra.ExactArgs(1),
	RunE:  runMessagesDraft,
}

var messagesCopyCmd = &cobra.Command{
	Use:   "copy [message-id] [destination-id]",
	Short: "Copy a message into a folder",
	Args:  cobra.ExactArgs(2),
	RunE:  runMessagesCopy,
}

var messagesMoveCmd = &cobra.Command{
	Use:   "move [message-id] [destination-id]",
	Short: "Move a message into a folder",
	Args:  cobra.ExactArgs(2),
	RunE:  runMessagesMove,
}

// Flags for messages.
var (
	messageFolder   string
	messageFile     string
	messageComment  string
	messageTo       string
	messageReplyAll bool
	messageDraftAs  string
	messageQuery    queryFlags
)

func init() {
	messagesCmd.PersistentFlags().StringVar(&messageFolder, "folder", "", "folder id or well-known name, e.g. Inbox")
	messageQuery.register(messagesListCmd)
	messagesAddCmd.Flags().StringVarP(&messageFile, "file", "f", "", "read the message from a YAML or JSON file (- for stdin)")
	_ = messagesAddCmd.MarkFlagRequired("file")
	messagesReplyCmd.Flags().StringVar(&messageComment, "comment", "", "reply text")
	messagesReplyCmd.Flags().BoolVar(&messageReplyAll, "all", false, "reply to all recipients")
	messagesForwardCmd.Flags().StringVar(&messageComment, "comment", "", "text added above the forwarded message")
	messagesForwardCmd.Flags().StringVar(&messageTo, "to", "", "comma-separated recipients, e.g. \"a@example.com,Bob <b@example.com>\"")
	_ = messagesForwardCmd.MarkFlagRequired("to")
	messagesDraftCmd.Flags().StringVar(&messageDraftAs, "as", "reply", "draft kind: reply, reply-all or forward")

	messagesCmd.AddCommand(messagesListCmd)
	messagesCmd.AddCommand(messagesGetCmd)
	messagesCmd.AddCommand(messagesAddCmd)
	messagesCmd.AddCommand(messagesDeleteCmd)
	messagesCmd.AddCommand(messagesSendCmd)
	messagesCmd.AddCommand(messagesReplyCmd)
	messagesCmd.AddCommand(messagesForwardCmd)
	messagesCmd.AddCommand(messagesDraftCmd)
	messagesCmd.AddCommand(messagesCopyCmd)
	messagesCmd.AddCommand(messagesMoveCmd)
	rootCmd.AddCommand(messagesCmd)
}

var messageHeaders = []string{"ID", "RECEIVED", "FROM", "SUBJECT", "READ"}

func messageRow(m *outlook.Message) []string {
	received := ""
	if m.DateTimeReceived != nil {
		received = m.DateTimeReceived.Local().Format(time.DateTime)
	}
	read := "no"
	if m.IsRead {
		read = "yes"
	}
	return []string{m.ID, received, formatRecipient(m.From), m.Subject, read}
}

func messageTable(m *outlook.Message) table {
	return table{headers: messageHeaders, rows: [][]string{messageRow(m)}}
}

// messages returns the mailbox messages or those of one folder.
func messages(s *Session, folder string) *outlook.Messages {
	if folder == "" {
		return s.Mailbox().Messages()
	}
	return s.Mailbox().Folders().GetFolder(folder).Messages()
}

func message(s *Session, id string) *outlook.MessageFetcher {
	return messages(s, messageFolder).GetMessage(id)
}

func runMessagesList(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(_ context.Context, s *Session) error {
		return listCollection(cmd, messages(s, messageFolder).GetMessages(), &messageQuery, messageHeaders, messageRow)
	})
}

func runMessagesGet(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		m, err := message(s, args[0]).Fetch(ctx)
		if err != nil {
			return err
		}
		return render(cmd, m, messageTable(m))
	})
}

func runMessagesAdd(cmd *cobra.Command, _ []string) error {
	var payload outlook.MessagePayload
	if err := readPayload(cmd, messageFile, &payload); err != nil {
		return err
	}
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		m, err := messages(s, messageFolder).AddMessage(ctx, payload)
		if err != nil {
			return err
		}
		return render(cmd, m, messageTable(m))
	})
}

func runMessagesDelete(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		if err := message(s, args[0]).Delete(ctx); err != nil {
			return err
		}
		cmd.Printf("Deleted message %s\n", args[0])
		return nil
	})
}

func runMessagesSend(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		if err := message(s, args[0]).Send(ctx); err != nil {
			return err
		}
		cmd.Printf("Sent message %s\n", args[0])
		return nil
	})
}

func runMessagesReply(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		m := message(s, args[0])
		reply := m.Reply
		if messageReplyAll {
			reply = m.ReplyAll
		}
		if err := reply(ctx, messageComment); err != nil {
			return err
		}
		cmd.Printf("Replied to message %s\n", args[0])
		return nil
	})
}

func runMessagesForward(cmd *cobra.Command, args []string) error {
	to := parseRecipients(messageTo)
	if len(to) == 0 {
		return errors.New("at least one --to recipient is required")
	}
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		if err := message(s, args[0]).Forward(ctx, messageComment, to); err != nil {
			return err
		}
		cmd.Printf("Forwarded message %s\n", args[0])
		return nil
	})
}

func runMessagesDraft(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		m := message(s, args[0])
		var create func(context.Context) (*outlook.Message, error)
		switch messageDraftAs {
		case "reply":
			create = m.CreateReply
		case "reply-all":
			create = m.CreateReplyAll
		case "forward":
			create = m.CreateForward
		default:
			return errors.New("--as must be reply, reply-all or forward")
		}
		draft, err := create(ctx)
		if err != nil {
			return err
		}
		return render(cmd, draft, messageTable(draft))
	})
}

func runMessagesCopy(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		m, err := message(s, args[0]).Copy(ctx, args[1])
		if err != nil {
			return err
		}
		return render(cmd, m, messageTable(m))
	})
}

func runMessagesMove(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		m, err := message(s, args[0]).Move(ctx, args[1])
		if err != nil {
			return err
		}
		return render(cmd, m, messageTable(m))
	})
}
