package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft/outlook"
	"github.com/custodia-labs/outlook-services/internal/core/domain"
	"github.com/custodia-labs/outlook-services/internal/core/ports/driven"
)

// ConfigOpener opens the settings store at path. An empty path selects the
// default location.
type ConfigOpener func(path string) (driven.ConfigStore, error)

// Connector builds a session for settings.
type Connector func(ctx context.Context, settings *domain.Settings) (*Session, error)

// Session is a connected client together with the token source behind it.
type Session struct {
	Client *outlook.Client
	Tokens driven.TokenProvider
	// UserID selects the mailbox; empty or "me" is the signed-in user.
	UserID string
	// Close releases resources held by the session. May be nil.
	Close func()
}

// Mailbox returns the handle of the configured mailbox.
func (s *Session) Mailbox() *outlook.UserFetcher {
	if s.UserID == "" || s.UserID == domain.DefaultUserID {
		return s.Client.Me()
	}
	return s.Client.User(s.UserID)
}

func (s *Session) close() {
	if s.Close != nil {
		s.Close()
	}
}

// tokenInvalidator is implemented by providers that cache tokens.
type tokenInvalidator interface {
	Invalidate(ctx context.Context) error
}

func loadConfig() (driven.ConfigStore, *domain.Settings, error) {
	if openConfig == nil {
		return nil, nil, errors.New("config store not configured")
	}
	store, err := openConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open config: %w", err)
	}
	settings, err := store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return store, settings, nil
}

// openSession loads settings and connects. Callers must close the session.
func openSession(cmd *cobra.Command) (*Session, error) {
	if connect == nil {
		return nil, errors.New("connector not configured")
	}
	_, settings, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w (run 'outlook config set --client-id <id>' or set OUTLOOK_ACCESS_TOKEN)", err)
	}
	s, err := connect(cmd.Context(), settings)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if s.UserID == "" {
		s.UserID = settings.UserID
	}
	return s, nil
}

// withSession opens a session, runs fn and closes the session.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *Session) error) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	return fn(cmd.Context(), s)
}
