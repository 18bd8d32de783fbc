package driving

import (
	"context"

	"github.com/custodia-labs/modsettings/internal/core/domain"
)

// SettingsStore manages per-module settings files.
//
// Loading is generic over the settings type and is therefore provided by
// services.Load and services.LoadOrDefault rather than by this interface.
type SettingsStore interface {
	// Path returns the resolved settings file location.
	Path(moduleScope, fileName string) string

	// Exists reports whether the settings file is present.
	Exists(moduleScope, fileName string) bool

	// Save writes serialised settings. Failures are logged and returned.
	Save(serializedJSON, moduleScope, fileName string) error

	// DeleteSettings removes the whole folder of a module scope.
	DeleteSettings(moduleScope string) error

	// Watch streams changes to the settings file.
	Watch(ctx context.Context, moduleScope, fileName string) (<-chan domain.SettingsChange, error)
}
