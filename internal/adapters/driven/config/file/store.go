// Package file stores user settings in a TOML file.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/outlook-services/internal/core/domain"
	"github.com/custodia-labs/outlook-services/internal/core/ports/driven"
)

// Environment variables that override file settings.
const (
	EnvAccessToken = "OUTLOOK_ACCESS_TOKEN"
	EnvServiceRoot = "OUTLOOK_SERVICE_ROOT"
)

const (
	dirName  = ".outlook"
	fileName = "config.toml"
	tokenDB  = "tokens.db"
)

// Store implements driven.ConfigStore on a TOML file.
type Store struct {
	path   string
	getenv func(string) string
}

var _ driven.ConfigStore = (*Store)(nil)

// NewStore creates a store for path. An empty path selects
// ~/.outlook/config.toml.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, dirName, fileName)
	}
	return &Store{path: path, getenv: os.Getenv}, nil
}

// Path returns the location of the settings file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file. A missing file yields defaults.
// Environment overrides are applied after the file is read.
func (s *Store) Load() (*domain.Settings, error) {
	settings := &domain.Settings{}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", s.path, err)
	default:
		if err := toml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", s.path, err)
		}
	}

	if v := strings.TrimSpace(s.getenv(EnvServiceRoot)); v != "" {
		settings.ServiceRoot = v
	}
	if v := strings.TrimSpace(s.getenv(EnvAccessToken)); v != "" {
		settings.AccessToken = v
	}

	settings.ApplyDefaults()
	if settings.TokenDB == "" {
		settings.TokenDB = filepath.Join(filepath.Dir(s.path), tokenDB)
	}
	return settings, nil
}

// Save writes settings to the file, creating its directory.
// The access token is never persisted.
func (s *Store) Save(settings *domain.Settings) error {
	if settings == nil {
		return fmt.Errorf("save config: %w", domain.ErrInvalidInput)
	}
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", s.path, err)
	}
	return nil
}
