package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-arena/internal/platform/tui"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Test key bindings interactively",
	Long: `Show the key bindings of every player and report which player
and action each pressed key resolves to.

Change a binding with:
  arena settings set input.1_drop_bomb space

Press Esc or Ctrl+C to quit.`,
	Args: cobra.NoArgs,
	Run:  runKeys,
}

func runKeys(cmd *cobra.Command, args []string) {
	logger := newLogger()
	store, closeFn := openSettings(logger)
	defer closeFn()

	rec := store.Snapshot()
	km := tui.NewKeyMap(rec, store.Defaults(), logger)

	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	if err := tui.RunKeyTest(km, rec.Gameplay.Players, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeFn()
		os.Exit(1)
	}
}
