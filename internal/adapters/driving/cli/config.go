package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/modsettings/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage modsettings preferences",
	Long: `View and change the preferences of the modsettings tool itself.

Keys:
  root_dir   Local application data root (empty for the platform default)
  namespace  Vendor/product folder under the root
  backend    Storage backend (disk, sqlite)
  verbose    Enable debug output (true, false)
  strict     Return programmer errors from loads (true, false)`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current preferences",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a preference",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if preferencesStore == nil {
		return errPreferencesNotConfigured
	}

	prefs, err := preferencesStore.Load()
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}

	rootDir := prefs.RootDir
	if rootDir == "" {
		rootDir = "(platform default)"
	}

	cmd.Printf("Preferences (%s)\n\n", preferencesStore.Path())
	cmd.Printf("  root_dir:  %s\n", rootDir)
	cmd.Printf("  namespace: %s\n", prefs.Namespace)
	cmd.Printf("  backend:   %s (%s)\n", prefs.Backend, prefs.Backend.Description())
	cmd.Printf("  verbose:   %t\n", prefs.Verbose)
	cmd.Printf("  strict:    %t\n", prefs.Strict)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if preferencesStore == nil {
		return errPreferencesNotConfigured
	}

	prefs, err := preferencesStore.Load()
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}

	key, value := args[0], args[1]
	if err := applyPreference(&prefs, key, value); err != nil {
		return err
	}
	if err := prefs.Validate(); err != nil {
		return err
	}
	if err := preferencesStore.Save(prefs); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func applyPreference(prefs *domain.Preferences, key, value string) error {
	switch key {
	case "root_dir":
		prefs.RootDir = value
	case "namespace":
		prefs.Namespace = value
	case "backend":
		prefs.Backend = domain.Backend(value)
	case "verbose", "strict":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		if key == "verbose" {
			prefs.Verbose = b
		} else {
			prefs.Strict = b
		}
	default:
		return fmt.Errorf("%w: unknown preference %q", domain.ErrInvalidInput, key)
	}
	return nil
}
