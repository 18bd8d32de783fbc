package services

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/custodia-labs/modsettings/internal/core/domain"
)

// PathResolver computes where settings files live:
//
//	<root>/<namespace>/[moduleScope/]fileName
//
// The root is looked up on every call so that environment changes between
// calls are honoured.
type PathResolver struct {
	namespace string
	root      func() string
}

// NewPathResolver creates a resolver. An empty namespace uses
// domain.DefaultNamespace and a nil root uses LocalAppDataDir.
func NewPathResolver(namespace string, root func() string) *PathResolver {
	if namespace == "" {
		namespace = domain.DefaultNamespace
	}
	if root == nil {
		root = LocalAppDataDir
	}
	return &PathResolver{
		namespace: namespace,
		root:      root,
	}
}

// Resolve returns the settings file path for a module scope. It performs no
// I/O. An empty or whitespace-only scope resolves to the root scope and an
// empty fileName to domain.DefaultFileName.
func (r *PathResolver) Resolve(moduleScope, fileName string) string {
	return filepath.Join(r.Dir(moduleScope), domain.FileNameOrDefault(fileName))
}

// Dir returns the folder holding a module scope's settings files.
func (r *PathResolver) Dir(moduleScope string) string {
	base := filepath.Join(r.root(), r.namespace)
	if domain.IsRootScope(moduleScope) {
		return base
	}
	return filepath.Join(base, moduleScope)
}

// LocalAppDataDir returns the per-user local application data directory.
// It never fails: when no home directory can be determined the temp
// directory is used instead.
func LocalAppDataDir() string {
	if runtime.GOOS == "windows" {
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return dir
		}
	} else if dir := os.Getenv("XDG_DATA_HOME"); dir != "" && filepath.IsAbs(dir) {
		return dir
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return os.TempDir()
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Local")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support")
	default:
		return filepath.Join(home, ".local", "share")
	}
}
