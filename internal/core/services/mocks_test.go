package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/modsettings/internal/core/domain"
)

// logEntry is a single recorded LogError call.
type logEntry struct {
	message string
	err     error
}

// recordingLogger is a mock implementation of driven.ErrorLogger.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) LogError(message string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{message: message, err: err})
}

func (l *recordingLogger) all() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logEntry(nil), l.entries...)
}

// mockWatcher is a mock implementation of driven.SettingsWatcher.
type mockWatcher struct {
	path    string
	changes chan domain.SettingsChange
	err     error
}

func (m *mockWatcher) Watch(_ context.Context, path string) (<-chan domain.SettingsChange, error) {
	m.path = path
	if m.err != nil {
		return nil, m.err
	}
	return m.changes, nil
}

func (m *mockWatcher) Close() error {
	return nil
}

// awakeSettings is a settings type with no upgrade logic.
type awakeSettings struct {
	Version       int    `json:"version"`
	Mode          string `json:"mode"`
	KeepDisplayOn bool   `json:"keep_display_on"`
}

func (a *awakeSettings) SetDefaults() {
	*a = awakeSettings{Version: 1, Mode: "passive", KeepDisplayOn: true}
}

func (a *awakeSettings) ToJSONString() (string, error) {
	return domain.ToJSONString(a)
}

func (a *awakeSettings) UpgradeIfNeeded() bool {
	return false
}

// fancyZonesSettings upgrades version 1 files to version 2 by renaming
// the legacy spacing field.
type fancyZonesSettings struct {
	Version       int  `json:"version"`
	LegacySpacing *int `json:"spacing,omitempty"`
	ZoneSpacing   int  `json:"zone_spacing"`
	ShowOnAll     bool `json:"show_on_all_monitors"`
}

const fancyZonesCurrentVersion = 2

func (f *fancyZonesSettings) SetDefaults() {
	*f = fancyZonesSettings{Version: fancyZonesCurrentVersion, ZoneSpacing: 16}
}

func (f *fancyZonesSettings) ToJSONString() (string, error) {
	return domain.ToJSONString(f)
}

func (f *fancyZonesSettings) UpgradeIfNeeded() bool {
	if f.Version >= fancyZonesCurrentVersion {
		return false
	}
	if f.LegacySpacing != nil {
		f.ZoneSpacing = *f.LegacySpacing
		f.LegacySpacing = nil
	}
	f.Version = fancyZonesCurrentVersion
	return true
}

// brokenSettings cannot be serialised.
type brokenSettings struct {
	Value int `json:"value"`
}

func (b *brokenSettings) SetDefaults() {
	b.Value = 7
}

func (b *brokenSettings) ToJSONString() (string, error) {
	return "", errUnserialisable
}

func (b *brokenSettings) UpgradeIfNeeded() bool {
	return false
}
