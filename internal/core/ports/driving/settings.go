package driving

import "github.com/custodia-labs/gshell/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, stored values over defaults.
	Get() (*domain.Settings, error)

	// GetDefaults returns the built-in default settings.
	GetDefaults() (domain.Settings, error)

	// Set validates and stores a single setting by key.
	Set(key, value string) error

	// Unset removes a stored setting so its default applies again.
	Unset(key string) error

	// Value returns the effective value of a setting as a string.
	Value(key string) (string, error)
}
