// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - FileSystem: Existence checks, directory creation, whole-file read/write
//   - ErrorLogger: Reporting of suppressed persistence failures
//   - PreferencesStore: The tool's own configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SettingsWatcher: Change notification. Without it, Watch returns
//     domain.ErrWatcherUnavailable.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
