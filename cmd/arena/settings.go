package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-arena/internal/settings"
	"github.com/vovakirdan/tui-arena/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show and change persistent settings",
	Long: `Show and change the persistent settings file.

Keys are written as section.name, for example:
  display.width  display.height  display.fullscreen
  audio.music  audio.music_volume  audio.sfx  audio.sfx_volume
  gameplay.nb_players  gameplay.nb_lives
  input.<player>_<action>  (actions: move_up move_down move_left move_right drop_bomb)`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every setting",
	Args:  cobra.NoArgs,
	Run:   runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	Run:   runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change and persist one setting",
	Long: `Change one setting and rewrite the settings file.

Examples:
  arena settings set gameplay.nb_players 3
  arena settings set audio.sfx_volume 0.25
  arena settings set input.2_drop_bomb enter`,
	Args: cobra.ExactArgs(2),
	Run:  runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	Run:   runSettingsReset,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(settings.ExpandPath(flagConfigPath))
	},
}

var settingsDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default settings file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		os.Stdout.Write(settings.DefaultYAML())
	},
}

var settingsHistoryCmd = &cobra.Command{
	Use:   "history [key]",
	Short: "Show or clear recent setting changes",
	Args:  cobra.MaximumNArgs(1),
	Run:   runSettingsHistory,
}

func init() {
	settingsHistoryCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum number of changes to show")
	settingsHistoryCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete every recorded change")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	settingsCmd.AddCommand(settingsDefaultsCmd)
	settingsCmd.AddCommand(settingsHistoryCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) {
	store, closeFn := openSettings(newLogger())
	defer closeFn()

	rec := store.Snapshot()
	section := ""
	for _, key := range settings.Keys() {
		sec, name, _ := strings.Cut(key, ".")
		if sec != section {
			if section != "" {
				fmt.Println()
			}
			fmt.Println(sectionStyle.Render("[" + sec + "]"))
			section = sec
		}
		value, _ := rec.Get(key)
		fmt.Printf("  %s %s\n", keyStyle.Render(fmt.Sprintf("%-14s", name)), value)
	}
}

func runSettingsGet(cmd *cobra.Command, args []string) {
	store, closeFn := openSettings(newLogger())
	defer closeFn()

	value, err := store.Get(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeFn()
		os.Exit(1)
	}
	fmt.Println(value)
}

func runSettingsSet(cmd *cobra.Command, args []string) {
	store, closeFn := openSettings(newLogger())
	defer closeFn()

	if err := store.Set(args[0], args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeFn()
		os.Exit(1)
	}
	value, _ := store.Get(args[0])
	fmt.Printf("%s = %s\n", args[0], value)
}

func runSettingsReset(cmd *cobra.Command, args []string) {
	store, closeFn := openSettings(newLogger())
	defer closeFn()

	if err := store.Reset(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeFn()
		os.Exit(1)
	}
	fmt.Printf("Settings restored to defaults in %s\n", store.Path())
}

func runSettingsHistory(cmd *cobra.Command, args []string) {
	journal, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening change journal: %v\n", err)
		os.Exit(1)
	}
	defer journal.Close()

	if flagHistoryClear {
		if len(args) == 1 {
			journal.Close()
			fmt.Fprintln(os.Stderr, "Error: --clear removes the whole history and takes no key")
			os.Exit(1)
		}
		if err := journal.ClearChanges(); err != nil {
			journal.Close()
			fmt.Fprintf(os.Stderr, "Error clearing changes: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Change history cleared.")
		return
	}

	var changes []storage.ChangeEntry
	if len(args) == 1 {
		changes, err = journal.KeyHistory(args[0])
		if len(changes) > flagHistoryLimit && flagHistoryLimit > 0 {
			changes = changes[:flagHistoryLimit]
		}
	} else {
		changes, err = journal.RecentChanges(flagHistoryLimit)
	}
	if err != nil {
		journal.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving changes: %v\n", err)
		os.Exit(1)
	}

	if len(changes) == 0 {
		fmt.Println("No changes recorded yet.")
		return
	}

	// Print header
	fmt.Printf("  %-16s  %-24s  %s\n", "Date", "Key", "Change")
	fmt.Printf("  %-16s  %-24s  %s\n", "----", "---", "------")

	for _, c := range changes {
		dateStr := c.ChangedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-16s  %-24s  %s -> %s\n", dateStr, c.Key, c.OldValue, c.NewValue)
	}
}
