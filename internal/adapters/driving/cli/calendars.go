package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft/outlook"
)

var calendarsCmd = &cobra.Command{
	Use:     "calendars",
	Aliases: []string{"calendar"},
	Short:   "List and create calendars",
}

var calendarsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List calendars",
	Args:  cobra.NoArgs,
	RunE:  runCalendarsList,
}

var calendarsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a calendar",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalendarsAdd,
}

var calendarsDeleteCmd = &cobra.Command{
	Use:   "delete [calendar-id]",
	Short: "Delete a calendar",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalendarsDelete,
}

var calendarGroupsCmd = &cobra.Command{
	Use:   "calendar-groups",
	Short: "List calendar groups",
	Args:  cobra.NoArgs,
	RunE:  runCalendarGroupsList,
}

// Flags for calendars.
var (
	calendarGroup      string
	calendarQuery      queryFlags
	calendarGroupQuery queryFlags
)

func init() {
	calendarsCmd.PersistentFlags().StringVar(&calendarGroup, "group", "", "calendar group id (default: all calendars)")
	calendarQuery.register(calendarsListCmd)
	calendarGroupQuery.register(calendarGroupsCmd)

	calendarsCmd.AddCommand(calendarsListCmd)
	calendarsCmd.AddCommand(calendarsAddCmd)
	calendarsCmd.AddCommand(calendarsDeleteCmd)
	rootCmd.AddCommand(calendarsCmd)
	rootCmd.AddCommand(calendarGroupsCmd)
}

var calendarHeaders = []string{"ID", "NAME", "COLOR"}

func calendarRow(c *outlook.Calendar) []string {
	return []string{c.ID, c.Name, c.Color}
}

func calendars(s *Session) *outlook.Calendars {
	if calendarGroup == "" {
		return s.Mailbox().Calendars()
	}
	return s.Mailbox().CalendarGroups().GetCalendarGroup(calendarGroup).Calendars()
}

func runCalendarsList(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(_ context.Context, s *Session) error {
		return listCollection(cmd, calendars(s).GetCalendars(), &calendarQuery, calendarHeaders, calendarRow)
	})
}

func runCalendarsAdd(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		c, err := calendars(s).AddCalendar(ctx, outlook.CalendarPayload{Name: args[0]})
		if err != nil {
			return err
		}
		return render(cmd, c, table{headers: calendarHeaders, rows: [][]string{calendarRow(c)}})
	})
}

func runCalendarsDelete(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		if err := calendars(s).GetCalendar(args[0]).Delete(ctx); err != nil {
			return err
		}
		cmd.Printf("Deleted calendar %s\n", args[0])
		return nil
	})
}

func runCalendarGroupsList(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(_ context.Context, s *Session) error {
		return listCollection(cmd, s.Mailbox().CalendarGroups().GetCalendarGroups(), &calendarGroupQuery,
			[]string{"ID", "NAME", "CLASS"},
			func(g *outlook.CalendarGroup) []string {
				return []string{g.ID, g.Name, g.ClassID}
			})
	})
}
