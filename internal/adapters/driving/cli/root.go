package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/outlook-services/internal/logger"
)

var (
	// Version is set by goreleaser ldflags.
	version = "dev"

	// Verbose enables debug logging.
	verbose bool

	// configPath overrides the settings file location.
	configPath string

	// Output selection shared by every command.
	outputFormat string
	jsonPath     string

	// Services holds injected service implementations for CLI commands.
	openConfig ConfigOpener
	connect    Connector
)

// Services holds configuration for CLI commands.
type Services struct {
	// OpenConfig opens the settings store at a path ("" for the default).
	OpenConfig ConfigOpener
	// Connect builds a session from loaded settings.
	Connect Connector
}

// SetServices injects service implementations for CLI commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	openConfig = s.OpenConfig
	connect = s.Connect
}

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Work with Outlook mail, calendars and contacts",
	Long: `Outlook is a command line client for the Outlook REST API.

It reads and changes messages, mail folders, events, calendars and contacts
of the signed-in mailbox. Sign in once with 'outlook login'; tokens are
cached locally and refreshed automatically.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default ~/.outlook/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatTable, "output format: table, json or yaml")
	rootCmd.PersistentFlags().StringVar(&jsonPath, "jsonpath", "", "print only the values selected by a JSONPath expression")

	// Use PersistentPreRunE to set verbose mode before any command executes
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return validateOutput()
	}
}
