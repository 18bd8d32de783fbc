package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/modsettings/internal/core/domain"
	"github.com/custodia-labs/modsettings/internal/core/ports/driven"
)

// Ensure PreferencesStore implements the interface.
var _ driven.PreferencesStore = (*PreferencesStore)(nil)

// PreferencesStore is a file-based implementation of driven.PreferencesStore using TOML.
// Preferences are stored in config.toml within the modsettings config directory.
type PreferencesStore struct {
	mu       sync.RWMutex
	filePath string
}

// NewPreferencesStore creates a new TOML-based preferences store.
// If configDir is empty, defaults to ~/.modsettings/config.toml.
func NewPreferencesStore(configDir string) (*PreferencesStore, error) {
	if configDir == "" {
		dir, err := DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &PreferencesStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// DefaultConfigDir returns ~/.modsettings.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".modsettings"), nil
}

// Load reads preferences from the TOML file. Keys missing from the file
// keep their default values; a missing file yields defaults.
func (s *PreferencesStore) Load() (domain.Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefs := domain.DefaultPreferences()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet - that's fine, use defaults
			return prefs, nil
		}
		return prefs, err
	}

	if err := toml.Unmarshal(data, &prefs); err != nil {
		return domain.DefaultPreferences(), fmt.Errorf("parse %s: %w", s.filePath, err)
	}

	return prefs, nil
}

// Save writes preferences to the TOML file.
func (s *PreferencesStore) Save(prefs domain.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(prefs)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the preferences file path.
func (s *PreferencesStore) Path() string {
	return s.filePath
}
