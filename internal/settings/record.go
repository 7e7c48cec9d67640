// Package settings provides the persistent arena configuration: display,
// audio, gameplay and per-player input bindings, stored as a YAML file
// that repairs itself when keys are missing or invalid.
package settings

import (
	"github.com/vovakirdan/tui-arena/internal/core"
)

// Record is the in-memory configuration.
type Record struct {
	Display  Display
	Audio    Audio
	Gameplay Gameplay
	Input    Bindings
}

// Display holds window settings.
type Display struct {
	Width      int
	Height     int
	Fullscreen bool
}

// Audio holds music and sound effect settings. Volumes are in [0, 1].
type Audio struct {
	Music       bool
	MusicVolume float64
	SFX         bool
	SFXVolume   float64
}

// Gameplay holds match settings.
type Gameplay struct {
	Players int
	Lives   int
}

// Binding identifies one bindable slot: an action for a given player.
type Binding struct {
	Player core.PlayerID
	Action core.Action
}

// Bindings maps each slot to a human-readable key name.
type Bindings map[Binding]string

// Key returns the key name bound to the player's action, or "" if unbound.
func (b Bindings) Key(player core.PlayerID, action core.Action) string {
	return b[Binding{Player: player, Action: action}]
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	c := r
	c.Input = make(Bindings, len(r.Input))
	for k, v := range r.Input {
		c.Input[k] = v
	}
	return c
}

// RuntimeConfig derives the data the host game loop reads at startup.
func (r Record) RuntimeConfig(grid core.Grid) core.RuntimeConfig {
	cfg := core.RuntimeConfig{
		ScreenW:    r.Display.Width,
		ScreenH:    r.Display.Height,
		Fullscreen: r.Display.Fullscreen,
		Grid:       grid,
		Players:    r.Gameplay.Players,
		Lives:      r.Gameplay.Lives,
	}
	cfg.Cols, cfg.Rows = grid.Dimensions(r.Display.Width, r.Display.Height)
	if r.Audio.Music {
		cfg.MusicVolume = core.ClampF(r.Audio.MusicVolume, 0, 1)
	}
	if r.Audio.SFX {
		cfg.SFXVolume = core.ClampF(r.Audio.SFXVolume, 0, 1)
	}
	return cfg
}
