// Package domain defines the core types of the settings persistence layer.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SettingsConfig: The capability every persisted settings type satisfies
//   - Document: A schema-less settings object
//   - Preferences: The tool's own configuration
//   - SettingsChange: A change observed on a settings file
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
