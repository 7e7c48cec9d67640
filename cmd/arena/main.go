// arena manages the settings of the tile arena game and exposes its
// tile coordinate helpers on the command line.
//
// Usage:
//
//	arena settings show          - Print every setting
//	arena settings get <key>     - Print one setting
//	arena settings set <k> <v>   - Change and persist one setting
//	arena settings reset         - Restore defaults
//	arena settings history       - Show recent changes (--clear to delete)
//	arena grid tile <col> <row>  - Convert a tile to its pixel center
//	arena grid pixel <x> <y>     - Find the tile containing a pixel
//	arena keys                   - Interactive key binding tester
//
// Global flags:
//
//	--config <path>     - Settings file (default: ~/.arena/settings.yaml)
//	--db <path>         - Change journal database (default: ~/.arena/history.db)
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-arena/internal/settings"
	"github.com/vovakirdan/tui-arena/internal/storage"
)

var (
	// Global flags
	flagConfigPath string
	flagDBPath     string
	flagLogLevel   string
	flagNoJournal  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Arena - settings and tile tools for the arena game",
	Long: `Arena manages the persistent settings of the tile arena game:
display, audio, gameplay and per-player key bindings.

The settings file is created with defaults on first use and repaired
automatically when keys are missing or invalid.

Examples:
  arena settings show
  arena settings set gameplay.nb_players 3
  arena settings set input.1_drop_bomb space
  arena grid pixel 50 50
  arena keys`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", settings.DefaultPath, "Path to settings file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to change journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagNoJournal, "no-journal", false, "Do not record changes in the journal")

	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(gridCmd)
	rootCmd.AddCommand(keysCmd)
}

// newLogger creates the CLI logger at the level given by --log-level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "arena",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openSettings loads the settings store. The returned close function
// releases the journal, if one was opened.
func openSettings(logger *log.Logger) (*settings.Store, func()) {
	opts := []settings.Option{settings.WithLogger(logger)}
	closeFn := func() {}

	if !flagNoJournal {
		journal, err := storage.Open(flagDBPath)
		if err != nil {
			// Continue without the journal
			logger.Warn("could not open change journal", "error", err)
		} else {
			opts = append(opts, settings.WithJournal(journal))
			closeFn = func() { journal.Close() }
		}
	}

	store := settings.NewStore(flagConfigPath, opts...)
	store.Load()
	return store, closeFn
}
