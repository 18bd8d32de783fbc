package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/modsettings/internal/core/domain"
	"github.com/custodia-labs/modsettings/internal/core/services"
	"github.com/custodia-labs/modsettings/internal/logger"
)

var (
	showFormat  string
	deleteForce bool
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsStore == nil {
			return errStoreNotConfigured
		}
		cmd.Println(settingsStore.Path(moduleScope, fileName))
		return nil
	},
}

var existsCmd = &cobra.Command{
	Use:   "exists",
	Short: "Report whether the settings file exists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsStore == nil {
			return errStoreNotConfigured
		}
		cmd.Println(settingsStore.Exists(moduleScope, fileName))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the settings of a module",
	Long: `Load the settings of a module and print them.

A missing file is created with an empty object first, exactly as a module
loading its settings would.`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

var setCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a top-level settings value",
	Long: `Set a top-level value in the settings of a module.

The value is parsed as JSON when possible (numbers, booleans, objects,
arrays, quoted strings) and stored as a plain string otherwise.`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the settings folder of a module",
	Long: `Delete the whole settings folder of a module.

Deleting the root scope removes the settings of every module and requires
--force.`,
	Args: cobra.NoArgs,
	RunE: runDelete,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes to a settings file until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	showCmd.Flags().StringVar(&showFormat, "format", "json", "Output format (json, toml)")
	deleteCmd.Flags().BoolVar(&deleteForce, "force", false, "Allow deleting the root scope")

	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(existsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(watchCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errStoreNotConfigured
	}

	doc, err := services.Load[domain.Document](settingsStore, moduleScope, fileName)
	if err != nil {
		return err
	}
	logger.Info("loaded %d keys for module %s", len(*doc), domain.ModuleName(moduleScope))

	switch showFormat {
	case "json":
		return printJSON(cmd, map[string]any(*doc))
	case "toml":
		out, err := toml.Marshal(map[string]any(*doc))
		if err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		cmd.Print(string(out))
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, showFormat)
	}
}

// printJSON indents output for terminals and keeps it on one line when piped.
func printJSON(cmd *cobra.Command, v any) error {
	var (
		out []byte
		err error
	)
	if isTerminal(cmd.OutOrStdout()) {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	cmd.Println(string(out))
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runSet(cmd *cobra.Command, args []string) error {
	if settingsStore == nil {
		return errStoreNotConfigured
	}

	doc, err := services.Load[domain.Document](settingsStore, moduleScope, fileName)
	if err != nil {
		return err
	}

	key := args[0]
	doc.Set(key, parseValue(args[1]))

	content, err := doc.ToJSONString()
	if err != nil {
		return err
	}
	if err := settingsStore.Save(content, moduleScope, fileName); err != nil {
		return err
	}
	logger.Info("saved %s for module %s", key, domain.ModuleName(moduleScope))

	cmd.Printf("Set %s in %s\n", key, settingsStore.Path(moduleScope, fileName))
	return nil
}

func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

func runDelete(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errStoreNotConfigured
	}
	if domain.IsRootScope(moduleScope) && !deleteForce {
		return fmt.Errorf("%w: deleting the root scope removes every module's settings; use --force", domain.ErrInvalidInput)
	}

	if err := settingsStore.DeleteSettings(moduleScope); err != nil {
		return err
	}

	cmd.Printf("Deleted settings for module %s\n", domain.ModuleName(moduleScope))
	return nil
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errStoreNotConfigured
	}

	// The watched folder must exist, so materialise the file first.
	if !settingsStore.Exists(moduleScope, fileName) {
		if _, err := services.Load[domain.Document](settingsStore, moduleScope, fileName); err != nil {
			return err
		}
	}

	logger.Section("watch " + domain.ModuleName(moduleScope))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	changes, err := settingsStore.Watch(ctx, moduleScope, fileName)
	if errors.Is(err, domain.ErrWatcherUnavailable) {
		return fmt.Errorf("%w: the configured storage backend does not support watching", err)
	}
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s\n", settingsStore.Path(moduleScope, fileName))
	for change := range changes {
		cmd.Printf("%s  %-8s %s\n", change.At.Format(time.RFC3339), change.Type, change.Path)
	}
	return nil
}
