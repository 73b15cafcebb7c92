package driving

import "github.com/rdkhare/CourtFinder/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings with defaults applied.
	Get() (*domain.AppSettings, error)

	// Set stores a single configuration key.
	Set(key, value string) error

	// Values lists every explicitly configured key and its value.
	Values() map[string]any

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
