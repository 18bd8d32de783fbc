package memory

import (
	"sync"

	"github.com/custodia-labs/modsettings/internal/core/domain"
	"github.com/custodia-labs/modsettings/internal/core/ports/driven"
)

// Ensure PreferencesStore implements the interface.
var _ driven.PreferencesStore = (*PreferencesStore)(nil)

// PreferencesStore is an in-memory implementation of driven.PreferencesStore for testing.
type PreferencesStore struct {
	mu    sync.RWMutex
	prefs domain.Preferences
}

// NewPreferencesStore creates a new in-memory preferences store holding defaults.
func NewPreferencesStore() *PreferencesStore {
	return &PreferencesStore{
		prefs: domain.DefaultPreferences(),
	}
}

// Load returns the stored preferences.
func (s *PreferencesStore) Load() (domain.Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs, nil
}

// Save stores preferences (no persistence for memory store).
func (s *PreferencesStore) Save(prefs domain.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = prefs
	return nil
}

// Path returns the preferences file path.
func (s *PreferencesStore) Path() string {
	return ":memory:"
}
