package driven

import (
	"context"

	"github.com/custodia-labs/modsettings/internal/core/domain"
)

// SettingsWatcher observes a single settings file for changes.
type SettingsWatcher interface {
	// Watch emits a change whenever the file at path is created, rewritten
	// or removed. The parent directory must exist. The channel is closed
	// when ctx is cancelled or the watcher is closed.
	Watch(ctx context.Context, path string) (<-chan domain.SettingsChange, error)

	// Close stops every active watch.
	Close() error
}
