package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft/outlook"
)

var eventsCmd = &cobra.Command{
	Use:     "events",
	Aliases: []string{"event"},
	Short:   "Manage calendar events and respond to invitations",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events",
	Args:  cobra.NoArgs,
	RunE:  runEventsList,
}

var eventsGetCmd = &cobra.Command{
	Use:   "get [event-id]",
	Short: "Show one event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsGet,
}

var eventsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an event",
	Long: `Create an event from a YAML or JSON file.

Example file:
  Subject: Planning
  Start: 2024-05-01T09:00:00Z
  End: 2024-05-01T10:00:00Z
  Attendees:
    - EmailAddress:
        Address: team@example.com
      Type: Required`,
	Args: cobra.NoArgs,
	RunE: runEventsAdd,
}

var eventsDeleteCmd = &cobra.Command{
	Use:   "delete [event-id]",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsDelete,
}

// respondCmd builds accept, decline and tentative.
func respondCmd(use, short string, respond func(f *outlook.EventFetcher) func(context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [event-id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *Session) error {
				if err := respond(event(s, args[0]))(ctx, eventComment); err != nil {
					return err
				}
				cmd.Printf("Responded %s to event %s\n", use, args[0])
				return nil
			})
		},
	}
}

// Flags for events.
var (
	eventCalendar string
	eventFile     string
	eventComment  string
	eventQuery    queryFlags
)

func init() {
	eventsCmd.PersistentFlags().StringVar(&eventCalendar, "calendar", "", "calendar id (default: all events of the mailbox)")
	eventQuery.register(eventsListCmd)
	eventsAddCmd.Flags().StringVarP(&eventFile, "file", "f", "", "read the event from a YAML or JSON file (- for stdin)")
	_ = eventsAddCmd.MarkFlagRequired("file")

	responses := []*cobra.Command{
		respondCmd("accept", "Accept an invitation", func(f *outlook.EventFetcher) func(context.Context, string) error {
			return f.Accept
		}),
		respondCmd("decline", "Decline an invitation", func(f *outlook.EventFetcher) func(context.Context, string) error {
			return f.Decline
		}),
		respondCmd("tentative", "Tentatively accept an invitation", func(f *outlook.EventFetcher) func(context.Context, string) error {
			return f.TentativelyAccept
		}),
	}
	for _, c := range responses {
		c.Flags().StringVar(&eventComment, "comment", "", "message sent to the organizer")
		eventsCmd.AddCommand(c)
	}

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsGetCmd)
	eventsCmd.AddCommand(eventsAddCmd)
	eventsCmd.AddCommand(eventsDeleteCmd)
	rootCmd.AddCommand(eventsCmd)
}

var eventHeaders = []string{"ID", "START", "END", "SUBJECT", "LOCATION", "RESPONSE"}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format(time.DateTime)
}

func eventRow(e *outlook.Event) []string {
	location, response := "", ""
	if e.Location != nil {
		location = e.Location.DisplayName
	}
	if e.ResponseStatus != nil {
		response = string(e.ResponseStatus.Response)
	}
	return []string{e.ID, formatTime(e.Start), formatTime(e.End), e.Subject, location, response}
}

func eventTable(e *outlook.Event) table {
	return table{headers: eventHeaders, rows: [][]string{eventRow(e)}}
}

func events(s *Session) *outlook.Events {
	if eventCalendar == "" {
		return s.Mailbox().Events()
	}
	return s.Mailbox().Calendars().GetCalendar(eventCalendar).Events()
}

func event(s *Session, id string) *outlook.EventFetcher {
	return events(s).GetEvent(id)
}

func runEventsList(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(_ context.Context, s *Session) error {
		return listCollection(cmd, events(s).GetEvents(), &eventQuery, eventHeaders, eventRow)
	})
}

func runEventsGet(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		e, err := event(s, args[0]).Fetch(ctx)
		if err != nil {
			return err
		}
		return render(cmd, e, eventTable(e))
	})
}

func runEventsAdd(cmd *cobra.Command, _ []string) error {
	var payload outlook.EventPayload
	if err := readPayload(cmd, eventFile, &payload); err != nil {
		return err
	}
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		e, err := events(s).AddEvent(ctx, payload)
		if err != nil {
			return err
		}
		return render(cmd, e, eventTable(e))
	})
}

func runEventsDelete(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		if err := event(s, args[0]).Delete(ctx); err != nil {
			return err
		}
		cmd.Printf("Deleted event %s\n", args[0])
		return nil
	})
}
