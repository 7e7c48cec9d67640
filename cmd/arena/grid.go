package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-arena/internal/core"
)

var flagTileSize int

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Convert between tile and pixel coordinates",
	Long: `Convert between tile grid coordinates and pixel coordinates.

Tiles are squares of --tile-size pixels (default 32). A tile maps to the
pixel at its center; a pixel maps to the tile that contains it.

Examples:
  arena grid tile 1 1      # (48, 48)
  arena grid pixel 50 50   # tile (1, 1), snapped to (48, 48)
  arena grid info          # arena size for the current display settings`,
}

var gridTileCmd = &cobra.Command{
	Use:   "tile <col> <row>",
	Short: "Print the pixel center and bounds of a tile",
	Args:  cobra.ExactArgs(2),
	Run:   runGridTile,
}

var gridPixelCmd = &cobra.Command{
	Use:   "pixel <x> <y>",
	Short: "Print the tile containing a pixel and its snapped center",
	Args:  cobra.ExactArgs(2),
	Run:   runGridPixel,
}

var gridInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the arena layout derived from the display settings",
	Args:  cobra.NoArgs,
	Run:   runGridInfo,
}

func init() {
	gridCmd.PersistentFlags().IntVar(&flagTileSize, "tile-size", core.TileSize, "Tile edge length in pixels")

	gridCmd.AddCommand(gridTileCmd)
	gridCmd.AddCommand(gridPixelCmd)
	gridCmd.AddCommand(gridInfoCmd)
}

func runGridTile(cmd *cobra.Command, args []string) {
	col, errC := strconv.Atoi(args[0])
	row, errR := strconv.Atoi(args[1])
	if errC != nil || errR != nil {
		fmt.Fprintf(os.Stderr, "Error: tile coordinates must be integers, got %q %q\n", args[0], args[1])
		os.Exit(1)
	}

	g := core.NewGrid(flagTileSize)
	tile := core.Tile{Col: col, Row: row}
	if !g.InRange(tile) {
		fmt.Fprintf(os.Stderr, "Error: tile coordinates must be within ±%d for %d px tiles\n", g.MaxTile(), g.TileSize())
		os.Exit(1)
	}
	center := g.TileToPixel(tile)
	bounds := g.TileRect(tile)

	fmt.Printf("tile   (%d, %d)\n", tile.Col, tile.Row)
	fmt.Printf("center (%g, %g)\n", center.X, center.Y)
	fmt.Printf("bounds x=[%d, %d) y=[%d, %d)\n", bounds.X, bounds.Right(), bounds.Y, bounds.Bottom())
}

func runGridPixel(cmd *cobra.Command, args []string) {
	x, errX := strconv.ParseFloat(args[0], 64)
	y, errY := strconv.ParseFloat(args[1], 64)
	if errX != nil || errY != nil {
		fmt.Fprintf(os.Stderr, "Error: pixel coordinates must be numbers, got %q %q\n", args[0], args[1])
		os.Exit(1)
	}

	g := core.NewGrid(flagTileSize)
	pixel := core.Pixel{X: x, Y: y}
	tile := g.PixelToTile(pixel)
	snapped := g.Snap(pixel)

	fmt.Printf("pixel   (%g, %g)\n", pixel.X, pixel.Y)
	fmt.Printf("tile    (%d, %d)\n", tile.Col, tile.Row)
	fmt.Printf("snapped (%g, %g)\n", snapped.X, snapped.Y)
}

func runGridInfo(cmd *cobra.Command, args []string) {
	store, closeFn := openSettings(newLogger())
	defer closeFn()

	cfg := store.Snapshot().RuntimeConfig(core.NewGrid(flagTileSize))

	fmt.Printf("window     %dx%d", cfg.ScreenW, cfg.ScreenH)
	if cfg.Fullscreen {
		fmt.Print(" (fullscreen)")
	}
	fmt.Println()
	fmt.Printf("tile size  %d px\n", cfg.Grid.TileSize())
	fmt.Printf("arena      %d x %d tiles\n", cfg.Cols, cfg.Rows)
	fmt.Printf("players    %d, %d lives each\n", cfg.Players, cfg.Lives)
	fmt.Printf("volume     music %g, sfx %g\n", cfg.MusicVolume, cfg.SFXVolume)
}
