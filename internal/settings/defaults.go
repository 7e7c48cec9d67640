package settings

import (
	_ "embed"

	"github.com/vovakirdan/tui-arena/internal/core"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// defaultKeys lists the default key names per player, in core.Actions order.
var defaultKeys = map[core.PlayerID][]string{
	core.Player1: {"w", "s", "a", "d", "space"},
	core.Player2: {"up", "down", "left", "right", "enter"},
	core.Player3: {"i", "k", "j", "l", "o"},
	core.Player4: {"t", "g", "f", "h", "y"},
}

// DefaultRecord returns the compiled-in configuration.
func DefaultRecord() Record {
	r := Record{
		Display: Display{
			Width:      1024,
			Height:     768,
			Fullscreen: false,
		},
		Audio: Audio{
			Music:       true,
			MusicVolume: 0.5,
			SFX:         true,
			SFXVolume:   0.7,
		},
		Gameplay: Gameplay{
			Players: 2,
			Lives:   3,
		},
		Input: make(Bindings, core.MaxPlayers*len(core.Actions)),
	}

	for _, p := range core.Players {
		for i, a := range core.Actions {
			r.Input[Binding{Player: p, Action: a}] = defaultKeys[p][i]
		}
	}
	return r
}

// DefaultYAML returns the embedded default settings file.
func DefaultYAML() []byte {
	return defaultSettingsYAML
}
