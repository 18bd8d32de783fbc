package driven

import "github.com/custodia-labs/modsettings/internal/core/domain"

// PreferencesStore provides access to the tool's own configuration.
// Implementations handle persistence (e.g., TOML files).
type PreferencesStore interface {
	// Load reads preferences from storage.
	// A missing file yields domain.DefaultPreferences().
	Load() (domain.Preferences, error)

	// Save persists preferences to storage.
	Save(prefs domain.Preferences) error

	// Path returns the preferences file path.
	Path() string
}
