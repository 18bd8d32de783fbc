package memory

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/modsettings/internal/core/domain"
	"github.com/custodia-labs/modsettings/internal/core/ports/driven"
)

// Ensure FileSystem implements the interface.
var _ driven.FileSystem = (*FileSystem)(nil)

// FileSystem is an in-memory implementation of driven.FileSystem for testing.
// It behaves like a disk: writes fail when the parent directory is missing.
type FileSystem struct {
	mu       sync.RWMutex
	files    map[string]string
	dirs     map[string]bool
	writes   map[string]int
	writeErr error
	mkdirErr error
	maxPath  int
}

// NewFileSystem creates a new in-memory file system.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files:  make(map[string]string),
		dirs:   make(map[string]bool),
		writes: make(map[string]int),
	}
}

// FailWrites makes every following WriteAllText return err. Nil clears it.
func (f *FileSystem) FailWrites(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeErr = err
}

// FailCreateDirectory makes every following CreateDirectory return err.
// Nil clears it.
func (f *FileSystem) FailCreateDirectory(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mkdirErr = err
}

// SetMaxPathLength rejects longer paths with domain.ErrPathTooLong.
// Zero disables the limit.
func (f *FileSystem) SetMaxPathLength(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.maxPath = n
}

// WriteCount returns how many times path has been written.
func (f *FileSystem) WriteCount(path string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.writes[filepath.Clean(path)]
}

// Files returns the paths of all stored files.
func (f *FileSystem) Files() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	paths := make([]string, 0, len(f.files))
	for p := range f.files {
		paths = append(paths, p)
	}
	return paths
}

// FileExists reports whether a file exists at path.
func (f *FileSystem) FileExists(path string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.files[filepath.Clean(path)]
	return ok
}

// DirectoryExists reports whether a directory exists at path.
func (f *FileSystem) DirectoryExists(path string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dirs[filepath.Clean(path)]
}

// CreateDirectory creates path and its parents.
func (f *FileSystem) CreateDirectory(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.check(path); err != nil {
		return err
	}
	if f.mkdirErr != nil {
		return f.mkdirErr
	}

	for p := filepath.Clean(path); ; p = filepath.Dir(p) {
		f.dirs[p] = true
		if filepath.Dir(p) == p {
			break
		}
	}
	return nil
}

// DeleteDirectory removes path and everything below it.
func (f *FileSystem) DeleteDirectory(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.check(path); err != nil {
		return err
	}

	root := filepath.Clean(path)
	prefix := root + string(filepath.Separator)
	for p := range f.files {
		if strings.HasPrefix(p, prefix) {
			delete(f.files, p)
		}
	}
	for p := range f.dirs {
		if p == root || strings.HasPrefix(p, prefix) {
			delete(f.dirs, p)
		}
	}
	return nil
}

// ReadAllText returns the content of the file at path.
func (f *FileSystem) ReadAllText(path string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if err := f.check(path); err != nil {
		return "", err
	}
	content, ok := f.files[filepath.Clean(path)]
	if !ok {
		return "", fmt.Errorf("%w: %w", domain.ErrNotFound, &fs.PathError{Op: "read", Path: path, Err: fs.ErrNotExist})
	}
	return content, nil
}

// WriteAllText replaces the content of the file at path.
func (f *FileSystem) WriteAllText(path, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.check(path); err != nil {
		return err
	}
	if f.writeErr != nil {
		return f.writeErr
	}

	p := filepath.Clean(path)
	if !f.dirs[filepath.Dir(p)] {
		return &fs.PathError{Op: "write", Path: path, Err: fs.ErrNotExist}
	}
	f.files[p] = content
	f.writes[p]++
	return nil
}

// check validates path (caller must hold lock).
func (f *FileSystem) check(path string) error {
	if path == "" || strings.ContainsRune(path, 0) {
		return fmt.Errorf("%w: path %q", domain.ErrInvalidInput, path)
	}
	if f.maxPath > 0 && len(path) > f.maxPath {
		return fmt.Errorf("%w: %d characters", domain.ErrPathTooLong, len(path))
	}
	return nil
}
