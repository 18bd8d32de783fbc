package domain

import (
	"encoding/json"
	"strings"
)

// DefaultFileName is the settings file used when none is given.
const DefaultFileName = "settings.json"

// RootModuleName labels the root settings scope in messages.
const RootModuleName = "general"

// SettingsConfig is the capability every persisted settings type satisfies.
//
// Implementations are used through a pointer receiver so that the store can
// construct, decode into and upgrade them in place.
type SettingsConfig interface {
	// SetDefaults resets the receiver to its default values.
	SetDefaults()

	// ToJSONString serialises the current state.
	ToJSONString() (string, error)

	// UpgradeIfNeeded migrates a freshly decoded value to the current
	// schema and reports whether anything changed.
	UpgradeIfNeeded() bool
}

// IsRootScope returns true if moduleScope denotes the root settings scope.
func IsRootScope(moduleScope string) bool {
	return strings.TrimSpace(moduleScope) == ""
}

// FileNameOrDefault returns fileName, or DefaultFileName when it is empty.
func FileNameOrDefault(fileName string) string {
	if fileName == "" {
		return DefaultFileName
	}
	return fileName
}

// ModuleName returns a printable name for a module scope.
func ModuleName(moduleScope string) string {
	if IsRootScope(moduleScope) {
		return RootModuleName
	}
	return moduleScope
}

// TrimNulPadding removes trailing NUL characters left behind by some file
// systems after a shorter file replaced a longer one. Leading and embedded
// NULs are kept.
func TrimNulPadding(content string) string {
	return strings.TrimRight(content, "\x00")
}

// ToJSONString serialises v the way every settings file is written.
func ToJSONString(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
