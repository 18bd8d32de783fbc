package disk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"

	"github.com/custodia-labs/modsettings/internal/core/domain"
	"github.com/custodia-labs/modsettings/internal/core/ports/driven"
)

// Ensure FileSystem implements the interface.
var _ driven.FileSystem = (*FileSystem)(nil)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FileSystem is the local-disk implementation of driven.FileSystem.
type FileSystem struct{}

// NewFileSystem creates a disk-backed file system.
func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// FileExists reports whether a regular file exists at path.
func (f *FileSystem) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DirectoryExists reports whether a directory exists at path.
func (f *FileSystem) DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// CreateDirectory creates path and any missing parents.
func (f *FileSystem) CreateDirectory(path string) error {
	return classify(os.MkdirAll(path, dirPerm))
}

// DeleteDirectory removes path and everything below it.
func (f *FileSystem) DeleteDirectory(path string) error {
	return classify(os.RemoveAll(path))
}

// ReadAllText returns the whole content of the file at path.
func (f *FileSystem) ReadAllText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	if err != nil {
		return "", classify(err)
	}
	return string(data), nil
}

// WriteAllText replaces the content of the file at path by writing a
// temporary sibling and renaming it over the target.
func (f *FileSystem) WriteAllText(path, content string) error {
	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	if err := os.WriteFile(tmp, []byte(content), filePerm); err != nil {
		_ = os.Remove(tmp)
		return classify(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return classify(err)
	}
	return nil
}

// classify tags programmer-error-class OS failures with domain sentinels.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, syscall.ENAMETOOLONG):
		return fmt.Errorf("%w: %w", domain.ErrPathTooLong, err)
	case errors.Is(err, syscall.EINVAL):
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	default:
		return err
	}
}
