package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/modsettings/internal/core/domain"
	"github.com/custodia-labs/modsettings/internal/core/ports/driven"
)

var errIsDirectory = errors.New("is a directory")

const (
	kindDir  = "dir"
	kindFile = "file"
)

// fileSystem implements driven.FileSystem.
type fileSystem struct {
	store *Store
}

var _ driven.FileSystem = (*fileSystem)(nil)

// FileExists reports whether a file row exists for path.
func (f *fileSystem) FileExists(path string) bool {
	return f.exists(path, kindFile)
}

// DirectoryExists reports whether a directory row exists for path.
func (f *fileSystem) DirectoryExists(path string) bool {
	return f.exists(path, kindDir)
}

func (f *fileSystem) exists(path, kind string) bool {
	var one int
	err := f.store.db.QueryRow(
		"SELECT 1 FROM settings_entries WHERE path = ? AND kind = ?",
		filepath.Clean(path), kind,
	).Scan(&one)
	return err == nil
}

// CreateDirectory inserts directory rows for path and its parents.
func (f *fileSystem) CreateDirectory(path string) error {
	if err := validatePath(path); err != nil {
		return err
	}

	tx, err := f.store.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	for p := filepath.Clean(path); ; p = filepath.Dir(p) {
		var kind string
		err := tx.QueryRow("SELECT kind FROM settings_entries WHERE path = ?", p).Scan(&kind)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if _, err := tx.Exec(
				"INSERT INTO settings_entries (path, kind, updated_at) VALUES (?, ?, ?)",
				p, kindDir, now,
			); err != nil {
				return fmt.Errorf("creating directory %s: %w", p, err)
			}
		case err != nil:
			return fmt.Errorf("checking %s: %w", p, err)
		case kind == kindFile:
			return &fs.PathError{Op: "mkdir", Path: p, Err: fs.ErrExist}
		}

		if filepath.Dir(p) == p {
			break
		}
	}

	return tx.Commit()
}

// DeleteDirectory removes the directory row for path and every row below it.
func (f *fileSystem) DeleteDirectory(path string) error {
	if err := validatePath(path); err != nil {
		return err
	}

	root := filepath.Clean(path)
	prefix := strings.TrimSuffix(root, string(filepath.Separator)) + string(filepath.Separator)
	_, err := f.store.db.Exec(
		"DELETE FROM settings_entries WHERE path = ? OR substr(path, 1, length(?)) = ?",
		root, prefix, prefix,
	)
	if err != nil {
		return fmt.Errorf("deleting directory %s: %w", root, err)
	}
	return nil
}

// ReadAllText returns the content of the file row for path.
func (f *fileSystem) ReadAllText(path string) (string, error) {
	if err := validatePath(path); err != nil {
		return "", err
	}

	var content string
	err := f.store.db.QueryRow(
		"SELECT content FROM settings_entries WHERE path = ? AND kind = ?",
		filepath.Clean(path), kindFile,
	).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %w", domain.ErrNotFound, &fs.PathError{Op: "read", Path: path, Err: fs.ErrNotExist})
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return content, nil
}

// WriteAllText replaces the content of the file row for path. The parent
// directory row must exist.
func (f *fileSystem) WriteAllText(path, content string) error {
	if err := validatePath(path); err != nil {
		return err
	}

	p := filepath.Clean(path)
	if !f.DirectoryExists(filepath.Dir(p)) {
		return &fs.PathError{Op: "write", Path: path, Err: fs.ErrNotExist}
	}
	if f.DirectoryExists(p) {
		return &fs.PathError{Op: "write", Path: path, Err: errIsDirectory}
	}

	_, err := f.store.db.Exec(`
		INSERT INTO settings_entries (path, kind, content, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			content = excluded.content,
			updated_at = excluded.updated_at
		WHERE settings_entries.kind = 'file'
	`, p, kindFile, content, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func validatePath(path string) error {
	if path == "" || strings.ContainsRune(path, 0) {
		return fmt.Errorf("%w: path %q", domain.ErrInvalidInput, path)
	}
	return nil
}
