// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - PreferencesStore: TOML-based storage of the tool's own preferences
package file
