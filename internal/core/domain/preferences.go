package domain

import (
	"fmt"
	"path/filepath"
)

const unknownDescription = "Unknown"

// DefaultNamespace is the vendor/product folder placed under the
// local application data root.
var DefaultNamespace = filepath.Join("Custodia", "ModSettings")

// Backend selects the file system capability settings are stored on.
type Backend string

// Available backends.
const (
	// BackendDisk stores settings as plain files on the local disk.
	BackendDisk Backend = "disk"

	// BackendSQLite stores settings files as rows of a single SQLite database.
	BackendSQLite Backend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b Backend) IsValid() bool {
	switch b {
	case BackendDisk, BackendSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b Backend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b Backend) Description() string {
	switch b {
	case BackendDisk:
		return "Plain files on disk"
	case BackendSQLite:
		return "SQLite database"
	default:
		return unknownDescription
	}
}

// Preferences configure the tool itself, not any module.
type Preferences struct {
	// RootDir overrides the local application data root. Empty uses the
	// platform default.
	RootDir string `toml:"root_dir"`

	// Namespace is the vendor/product folder under the root.
	Namespace string `toml:"namespace"`

	// Backend selects where settings files live.
	Backend Backend `toml:"backend"`

	// Verbose enables debug logging.
	Verbose bool `toml:"verbose"`

	// Strict surfaces programmer-error-class save failures from loads
	// instead of logging and suppressing them.
	Strict bool `toml:"strict"`
}

// DefaultPreferences returns preferences with default values.
func DefaultPreferences() Preferences {
	return Preferences{
		Namespace: DefaultNamespace,
		Backend:   BackendDisk,
	}
}

// Validate checks that the preferences can be used to build a store.
func (p Preferences) Validate() error {
	if !p.Backend.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedBackend, p.Backend)
	}
	if p.Namespace == "" {
		return fmt.Errorf("%w: namespace must not be empty", ErrInvalidInput)
	}
	if p.RootDir != "" && !filepath.IsAbs(p.RootDir) {
		return fmt.Errorf("%w: root_dir must be absolute", ErrInvalidInput)
	}
	return nil
}
