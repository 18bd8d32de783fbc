package main

import (
	"os"
	"path/filepath"

	"github.com/custodia-labs/modsettings/internal/adapters/driven/config/file"
	"github.com/custodia-labs/modsettings/internal/adapters/driven/storage/disk"
	"github.com/custodia-labs/modsettings/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/modsettings/internal/adapters/driven/watcher"
	"github.com/custodia-labs/modsettings/internal/adapters/driving/cli"
	"github.com/custodia-labs/modsettings/internal/core/domain"
	"github.com/custodia-labs/modsettings/internal/core/ports/driven"
	"github.com/custodia-labs/modsettings/internal/core/services"
	"github.com/custodia-labs/modsettings/internal/logger"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// 1. Load preferences. Invalid preferences fall back to defaults so the
	// config command can still repair them.
	prefsStore, err := file.NewPreferencesStore("")
	if err != nil {
		logger.Error("open preferences: %v", err)
		return err
	}
	prefs, err := prefsStore.Load()
	if err != nil {
		logger.Error("load preferences: %v", err)
		return err
	}
	if err := prefs.Validate(); err != nil {
		logger.Error("invalid preferences in %s, using defaults: %v", prefsStore.Path(), err)
		prefs = domain.DefaultPreferences()
	}
	logger.SetVerbose(prefs.Verbose)

	// 2. Open the storage backend.
	backend, err := openBackend(prefs.Backend, filepath.Dir(prefsStore.Path()))
	if err != nil {
		logger.Error("open %s backend: %v", prefs.Backend, err)
		return err
	}
	defer backend.close()

	// 3. Wire the store.
	var root func() string
	if prefs.RootDir != "" {
		rootDir := prefs.RootDir
		root = func() string { return rootDir }
	}
	resolver := services.NewPathResolver(prefs.Namespace, root)

	store := services.NewSettingsStore(resolver, backend.fs, logger.ErrorLogger{}, backend.watcher)
	store.SetStrict(prefs.Strict)

	// 4. Run the CLI. Cobra reports command errors itself.
	cli.SetServices(store, prefsStore)
	cli.SetVersion(version)
	return cli.Execute()
}

// storageBackend bundles the file system of a backend with the watcher
// able to observe it.
type storageBackend struct {
	fs      driven.FileSystem
	watcher driven.SettingsWatcher // nil when the backend has no real files
	close   func()
}

func openBackend(backend domain.Backend, configDir string) (*storageBackend, error) {
	switch backend {
	case domain.BackendSQLite:
		db, err := sqlite.NewStore(filepath.Join(configDir, "data"))
		if err != nil {
			return nil, err
		}
		logger.Debug("using sqlite backend at %s", db.Path())
		return &storageBackend{
			fs: db.FileSystem(),
			close: func() {
				if err := db.Close(); err != nil {
					logger.Warn("close database: %v", err)
				}
			},
		}, nil
	default:
		w := watcher.New()
		return &storageBackend{
			fs:      disk.NewFileSystem(),
			watcher: w,
			close: func() {
				if err := w.Close(); err != nil {
					logger.Warn("close watcher: %v", err)
				}
			},
		}, nil
	}
}
