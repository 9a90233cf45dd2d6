package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings",
	Long: `Change settings and write them to the settings file.

Examples:
  # Register the application used for sign-in
  outlook config set --client-id 00000000-0000-0000-0000-000000000000

  # Point at a different service root
  outlook config set --service-root https://outlook.office365.com/api/v1.0`,
	Args: cobra.NoArgs,
	RunE: runConfigSet,
}

// Flags for config set.
var (
	setClientID    string
	setTenant      string
	setServiceRoot string
	setUserID      string
	setScopes      string
)

func init() {
	configSetCmd.Flags().StringVar(&setClientID, "client-id", "", "application (client) id")
	configSetCmd.Flags().StringVar(&setTenant, "tenant", "", "directory tenant (common, organizations, or a tenant id)")
	configSetCmd.Flags().StringVar(&setServiceRoot, "service-root", "", "base URL of the REST API")
	configSetCmd.Flags().StringVar(&setUserID, "user", "", "mailbox to use (me, or a user id or address)")
	configSetCmd.Flags().StringVar(&setScopes, "scopes", "", "comma-separated OAuth scopes")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	store, settings, err := loadConfig()
	if err != nil {
		return err
	}

	token := "(not set)"
	if settings.AccessToken != "" {
		token = "(from environment)"
	}
	values := map[string]string{
		"path":                           store.Path(),
		"service_root":                   settings.ServiceRoot,
		"resource_url":                   settings.ResourceURL,
		"client_id":                      settings.ClientID,
		"tenant":                         settings.Tenant,
		"scopes":                         strings.Join(settings.Scopes, ","),
		"user_id":                        settings.UserID,
		"token_db":                       settings.TokenDB,
		"access_token":                   token,
		"rate_limit.requests_per_second": strconv.FormatFloat(settings.RateLimit.RequestsPerSecond, 'f', -1, 64),
		"rate_limit.burst":               strconv.Itoa(settings.RateLimit.Burst),
	}
	keys := []string{
		"path", "service_root", "resource_url", "client_id", "tenant", "scopes",
		"user_id", "token_db", "access_token", "rate_limit.requests_per_second", "rate_limit.burst",
	}

	t := table{headers: []string{"KEY", "VALUE"}}
	for _, k := range keys {
		t.rows = append(t.rows, []string{k, values[k]})
	}
	return render(cmd, values, t)
}

func runConfigSet(cmd *cobra.Command, _ []string) error {
	store, settings, err := loadConfig()
	if err != nil {
		return err
	}

	changed := false
	set := func(flag string, dst *string, v string) {
		if cmd.Flags().Changed(flag) {
			*dst = strings.TrimSpace(v)
			changed = true
		}
	}
	set("client-id", &settings.ClientID, setClientID)
	set("tenant", &settings.Tenant, setTenant)
	set("service-root", &settings.ServiceRoot, setServiceRoot)
	set("user", &settings.UserID, setUserID)
	if cmd.Flags().Changed("scopes") {
		settings.Scopes = nil
		for _, s := range strings.Split(setScopes, ",") {
			if s = strings.TrimSpace(s); s != "" {
				settings.Scopes = append(settings.Scopes, s)
			}
		}
		changed = true
	}
	if !changed {
		return errors.New("nothing to change (see 'outlook config set --help')")
	}

	settings.ApplyDefaults()
	if err := store.Save(settings); err != nil {
		return err
	}
	cmd.Printf("Saved %s\n", store.Path())
	return nil
}
