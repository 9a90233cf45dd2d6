package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft/outlook"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in mailbox",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and cache an access token",
	Long: `Sign in with the device code flow. The verification URL and code are
printed; the token is cached and refreshed until 'outlook logout'.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the cached access token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func userTable(users ...*outlook.User) table {
	t := table{headers: []string{"ID", "NAME", "ALIAS"}}
	for _, u := range users {
		t.rows = append(t.rows, []string{u.ID, u.DisplayName, u.Alias})
	}
	return t
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		me, err := s.Mailbox().Fetch(ctx)
		if err != nil {
			return err
		}
		return render(cmd, me, userTable(me))
	})
}

func runLogin(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		if _, err := s.Tokens.GetToken(ctx); err != nil {
			return fmt.Errorf("sign in: %w", err)
		}
		me, err := s.Mailbox().Fetch(ctx)
		if err != nil {
			return err
		}
		cmd.Printf("Signed in as %s (%s)\n", me.DisplayName, me.Alias)
		return nil
	})
}

func runLogout(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(ctx context.Context, s *Session) error {
		inv, ok := s.Tokens.(tokenInvalidator)
		if !ok {
			cmd.Println("No cached token to forget.")
			return nil
		}
		if err := inv.Invalidate(ctx); err != nil {
			return fmt.Errorf("forget token: %w", err)
		}
		cmd.Println("Signed out.")
		return nil
	})
}
