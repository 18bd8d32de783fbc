package domain

import "time"

// ChangeType indicates what happened to a settings file.
type ChangeType int

const (
	// ChangeCreated indicates the settings file appeared.
	ChangeCreated ChangeType = iota
	// ChangeUpdated indicates the settings file was rewritten.
	ChangeUpdated
	// ChangeDeleted indicates the settings file was removed or renamed away.
	ChangeDeleted
)

// String returns the string representation of the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// SettingsChange is a change observed on a watched settings file.
type SettingsChange struct {
	Path string
	Type ChangeType
	At   time.Time
}
