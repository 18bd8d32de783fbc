package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/modsettings/internal/core/domain"
	"github.com/custodia-labs/modsettings/internal/core/ports/driven"
	"github.com/custodia-labs/modsettings/internal/core/ports/driving"
	"github.com/custodia-labs/modsettings/internal/logger"
)

// Ensure SettingsStore implements the interface.
var _ driving.SettingsStore = (*SettingsStore)(nil)

// SettingsPointer constrains the type parameters of Load: PT is *T and
// carries the settings capability.
type SettingsPointer[T any] interface {
	*T
	domain.SettingsConfig
}

// SettingsStore owns the load/create/upgrade/save lifecycle of per-module
// settings files.
//
// The store holds no per-file state and does no locking; callers serialise
// access per module scope.
type SettingsStore struct {
	resolver *PathResolver
	fs       driven.FileSystem
	log      driven.ErrorLogger
	watcher  driven.SettingsWatcher
	strict   bool
}

// NewSettingsStore creates a new settings store. The watcher may be nil.
func NewSettingsStore(
	resolver *PathResolver,
	fs driven.FileSystem,
	log driven.ErrorLogger,
	watcher driven.SettingsWatcher,
) *SettingsStore {
	return &SettingsStore{
		resolver: resolver,
		fs:       fs,
		log:      log,
		watcher:  watcher,
	}
}

// SetStrict toggles strict mode. In strict mode Load returns
// programmer-error-class save failures instead of suppressing them.
func (s *SettingsStore) SetStrict(strict bool) {
	s.strict = strict
}

// Path returns the resolved settings file location.
func (s *SettingsStore) Path(moduleScope, fileName string) string {
	return s.resolver.Resolve(moduleScope, fileName)
}

// Exists reports whether the settings file is present.
func (s *SettingsStore) Exists(moduleScope, fileName string) bool {
	return s.fs.FileExists(s.Path(moduleScope, fileName))
}

// Save writes serialised settings over the file for a module scope,
// creating its directory first when needed. An empty serializedJSON is the
// absent value and is ignored.
//
// Failures are logged with the module name and returned as a
// *domain.PersistenceError. Callers that treat saving as best-effort may
// discard the result.
func (s *SettingsStore) Save(serializedJSON, moduleScope, fileName string) error {
	if serializedJSON == "" {
		return nil
	}

	path := s.Path(moduleScope, fileName)
	if err := s.write(path, serializedJSON); err != nil {
		s.log.LogError(fmt.Sprintf("failed to save settings for module %s", domain.ModuleName(moduleScope)), err)
		return &domain.PersistenceError{Module: moduleScope, Path: path, Err: err}
	}
	return nil
}

func (s *SettingsStore) write(path, content string) error {
	dir := filepath.Dir(path)
	if !s.fs.DirectoryExists(dir) {
		if err := s.fs.CreateDirectory(dir); err != nil {
			return fmt.Errorf("create settings directory: %w", err)
		}
	}
	if err := s.fs.WriteAllText(path, content); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

// DeleteSettings removes the whole folder of a module scope. For the root
// scope this is the namespace folder and therefore every module's settings.
func (s *SettingsStore) DeleteSettings(moduleScope string) error {
	dir := s.resolver.Dir(moduleScope)
	logger.Debug("deleting settings folder %s", dir)
	if err := s.fs.DeleteDirectory(dir); err != nil {
		return fmt.Errorf("delete settings for module %s: %w", domain.ModuleName(moduleScope), err)
	}
	return nil
}

// Watch streams changes to the settings file of a module scope until ctx
// is cancelled.
func (s *SettingsStore) Watch(ctx context.Context, moduleScope, fileName string) (<-chan domain.SettingsChange, error) {
	if s.watcher == nil {
		return nil, domain.ErrWatcherUnavailable
	}
	return s.watcher.Watch(ctx, s.Path(moduleScope, fileName))
}

// persist serialises settings and saves them. Save failures are already
// logged; they only reach the caller in strict mode and only when they are
// programmer errors.
func (s *SettingsStore) persist(settings domain.SettingsConfig, moduleScope, fileName string) error {
	content, err := settings.ToJSONString()
	if err != nil {
		s.log.LogError(fmt.Sprintf("failed to serialise settings for module %s", domain.ModuleName(moduleScope)), err)
		return s.suppress(err)
	}
	return s.suppress(s.Save(content, moduleScope, fileName))
}

func (s *SettingsStore) suppress(err error) error {
	if err != nil && s.strict && domain.IsProgrammerError(err) {
		return err
	}
	return nil
}

// Load returns the settings of type T for a module scope.
//
// When no file exists a default T is created, saved and returned, so every
// module that reads its settings ends up with a file. Otherwise the file is
// read, stripped of trailing NUL padding and decoded; decode failures are
// returned as *domain.DeserializationError and the file is left alone. A
// decoded value that reports an upgrade is saved again before it is
// returned.
func Load[T any, PT SettingsPointer[T]](s *SettingsStore, moduleScope, fileName string) (PT, error) {
	path := s.Path(moduleScope, fileName)

	settings := PT(new(T))
	settings.SetDefaults()

	if !s.fs.FileExists(path) {
		logger.Debug("creating default settings for module %s at %s", domain.ModuleName(moduleScope), path)
		if err := s.persist(settings, moduleScope, fileName); err != nil {
			return nil, err
		}
		return settings, nil
	}

	raw, err := s.fs.ReadAllText(path)
	if err != nil {
		return nil, fmt.Errorf("read settings for module %s: %w", domain.ModuleName(moduleScope), err)
	}

	if err := json.Unmarshal([]byte(domain.TrimNulPadding(raw)), settings); err != nil {
		return nil, &domain.DeserializationError{Module: moduleScope, Path: path, Err: err}
	}

	if settings.UpgradeIfNeeded() {
		logger.Debug("upgraded settings for module %s", domain.ModuleName(moduleScope))
		if err := s.persist(settings, moduleScope, fileName); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

// LoadOrDefault behaves like Load but recovers from undecodable files: the
// failure is logged and a default T is returned. The corrupt file is kept
// so that it can be inspected.
func LoadOrDefault[T any, PT SettingsPointer[T]](s *SettingsStore, moduleScope, fileName string) (PT, error) {
	settings, err := Load[T, PT](s, moduleScope, fileName)
	if err == nil {
		return settings, nil
	}

	var decodeErr *domain.DeserializationError
	if !errors.As(err, &decodeErr) {
		return nil, err
	}

	s.log.LogError(fmt.Sprintf("using default settings for module %s", domain.ModuleName(moduleScope)), err)
	settings = PT(new(T))
	settings.SetDefaults()
	return settings, nil
}
