package driven

import "github.com/custodia-labs/outlook-services/internal/core/domain"

// ConfigStore loads and saves user settings.
type ConfigStore interface {
	Load() (*domain.Settings, error)
	Save(settings *domain.Settings) error
	Path() string
}
