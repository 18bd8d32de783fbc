package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/modsettings/internal/core/domain"
	"github.com/custodia-labs/modsettings/internal/core/ports/driven"
	"github.com/custodia-labs/modsettings/internal/core/services"
	"github.com/custodia-labs/modsettings/internal/logger"
)

var (
	version = "dev"

	verbose     bool
	moduleScope string
	fileName    string

	settingsStore    *services.SettingsStore
	preferencesStore driven.PreferencesStore
)

var (
	errStoreNotConfigured       = errors.New("settings store not configured")
	errPreferencesNotConfigured = errors.New("preferences store not configured")
)

var rootCmd = &cobra.Command{
	Use:   "modsettings",
	Short: "Inspect and manage per-module settings files",
	Long: `modsettings reads and writes the JSON settings files that modules keep
under the local application data folder.

Each module owns a folder named after its scope. The root scope (no --module)
holds settings shared by every module.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVarP(&moduleScope, "module", "m", "", "Module scope (empty for the root scope)")
	rootCmd.PersistentFlags().StringVarP(&fileName, "file", "f", domain.DefaultFileName, "Settings file name")
}

// SetServices wires the services used by the commands.
func SetServices(store *services.SettingsStore, prefs driven.PreferencesStore) {
	settingsStore = store
	preferencesStore = prefs
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
