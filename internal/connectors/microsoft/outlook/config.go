package outlook

import (
	"strings"

	"github.com/custodia-labs/outlook-services/internal/core/domain"
)

// Paging limits for list operations.
const (
	// DefaultPageSize is the page size used when walking a collection.
	DefaultPageSize = 50
	// MaxPageSize is the largest $top the service accepts.
	MaxPageSize = 1000
)

// Config holds client configuration.
type Config struct {
	// ServiceRoot is the base URL every resource path starts from.
	ServiceRoot string
	// PageSize is the default page size for All (default: 50, max: 1000).
	PageSize int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ServiceRoot: domain.DefaultServiceRoot,
		PageSize:    DefaultPageSize,
	}
}

// ConfigFromSettings derives client configuration from user settings.
func ConfigFromSettings(s *domain.Settings) *Config {
	cfg := DefaultConfig()
	if s != nil && s.ServiceRoot != "" {
		cfg.ServiceRoot = s.ServiceRoot
	}
	return cfg
}

func (c *Config) normalise() {
	c.ServiceRoot = strings.TrimRight(strings.TrimSpace(c.ServiceRoot), "/")
	if c.ServiceRoot == "" {
		c.ServiceRoot = domain.DefaultServiceRoot
	}
	c.PageSize = clampPageSize(c.PageSize, DefaultPageSize)
}

func clampPageSize(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}
