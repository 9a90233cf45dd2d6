package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft/outlook"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show unread mail, upcoming events and contacts at a glance",
	Long: `Fetch the mailbox owner, unread inbox messages, events starting from now
and the number of contacts concurrently and print a short overview.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

var summaryTop int

// now is the clock used to select upcoming events.
var now = time.Now

func init() {
	summaryCmd.Flags().IntVar(&summaryTop, "top", 5, "number of messages and events to include")
	rootCmd.AddCommand(summaryCmd)
}

// mailboxSummary is the result of the summary command.
type mailboxSummary struct {
	User     *outlook.User      `json:"User"`
	Unread   []*outlook.Message `json:"Unread"`
	Events   []*outlook.Event   `json:"Events"`
	Contacts int                `json:"Contacts"`
}

func runSummary(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		box := s.Mailbox()

		user := outlook.Start(ctx, box.Fetch)
		unread := outlook.Start(ctx, box.Inbox().Messages().GetMessages().
			Filter("IsRead eq false").
			Top(summaryTop).
			FetchAll)
		upcoming := outlook.Start(ctx, box.Events().GetEvents().
			Filter(fmt.Sprintf("Start ge %s", now().UTC().Format(time.RFC3339))).
			Top(summaryTop).
			FetchAll)
		contacts := outlook.Start(ctx, func(ctx context.Context) (int, error) {
			return count(ctx, box.Contacts().GetContacts().Select("DisplayName"))
		})

		sum := mailboxSummary{}
		var err error
		if sum.User, err = user.Await(); err != nil {
			return err
		}
		if sum.Unread, err = unread.Await(); err != nil {
			return err
		}
		if sum.Events, err = upcoming.Await(); err != nil {
			return err
		}
		if sum.Contacts, err = contacts.Await(); err != nil {
			return err
		}

		t := table{headers: []string{"", ""}}
		t.rows = append(t.rows,
			[]string{"Mailbox", sum.User.DisplayName},
			[]string{"Unread in Inbox", strconv.Itoa(len(sum.Unread))},
			[]string{"Upcoming events", strconv.Itoa(len(sum.Events))},
			[]string{"Contacts", strconv.Itoa(sum.Contacts)},
		)
		for _, m := range sum.Unread {
			t.rows = append(t.rows, []string{"  mail", formatRecipient(m.From) + ": " + m.Subject})
		}
		for _, e := range sum.Events {
			t.rows = append(t.rows, []string{"  event", formatTime(e.Start) + " " + e.Subject})
		}
		return render(cmd, sum, t)
	})
}

// count walks every page of c.
func count[T any](ctx context.Context, c *outlook.CollectionFetcher[T]) (int, error) {
	n := 0
	for _, err := range c.All(ctx, outlook.MaxPageSize) {
		if err != nil {
			return 0, err
		}
		n++
	}
	return n, nil
}
