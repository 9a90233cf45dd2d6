package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft/outlook"
	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft/outlook/outlooktest"
	"github.com/custodia-labs/outlook-services/internal/core/domain"
	"github.com/custodia-labs/outlook-services/internal/core/ports/driven"
)

// mockConfigStore implements driven.ConfigStore in memory.
type mockConfigStore struct {
	settings *domain.Settings
	saved    *domain.Settings
	loadErr  error
}

func (m *mockConfigStore) Load() (*domain.Settings, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	s := *m.settings
	return &s, nil
}

func (m *mockConfigStore) Save(settings *domain.Settings) error {
	s := *settings
	m.saved = &s
	m.settings = &s
	return nil
}

func (m *mockConfigStore) Path() string {
	return "/home/test/.outlook/config.toml"
}

// mockInvalidatingTokens is a token provider that can forget its token.
type mockInvalidatingTokens struct {
	*outlooktest.Tokens
	invalidated bool
}

func (m *mockInvalidatingTokens) Invalidate(_ context.Context) error {
	m.invalidated = true
	return nil
}

// testEnv is the fake mailbox behind the CLI in tests.
type testEnv struct {
	bridge   *outlooktest.Bridge
	tokens   driven.TokenProvider
	config   *mockConfigStore
	connects int
	closed   int
}

// setupTestServices injects a fake mailbox and an in-memory config store.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()
	settings := domain.DefaultSettings()
	settings.AccessToken = "test-token"

	env := &testEnv{
		bridge: outlooktest.NewBridge(),
		tokens: outlooktest.NewTokens("test-token"),
		config: &mockConfigStore{settings: settings},
	}

	oldOpen, oldConnect := openConfig, connect
	openConfig = func(string) (driven.ConfigStore, error) {
		return env.config, nil
	}
	connect = func(_ context.Context, s *domain.Settings) (*Session, error) {
		env.connects++
		cfg := &outlook.Config{ServiceRoot: outlooktest.ServiceRoot}
		return &Session{
			Client: outlook.NewClient(cfg, env.tokens, env.bridge),
			Tokens: env.tokens,
			UserID: s.UserID,
			Close:  func() { env.closed++ },
		}, nil
	}
	t.Cleanup(func() {
		openConfig, connect = oldOpen, oldConnect
	})
	return env
}

// resetFlags restores every flag to its default so commands do not leak
// state into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCommand executes the root command with args and returns what was
// written to stdout and stderr.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
