// Package tui provides the terminal front end: per-player key bindings
// resolved from the settings record and an interactive key tester.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arena/internal/core"
	"github.com/vovakirdan/tui-arena/internal/keys"
	"github.com/vovakirdan/tui-arena/internal/settings"
)

// KeyMap translates Bubble Tea key messages to player actions.
// Each action holds exactly one key; binding again replaces it.
type KeyMap struct {
	bindings map[settings.Binding]key.Binding
	Quit     key.Binding
}

// NewKeyMap builds a key map from the record's input bindings.
// Names that fail to resolve are logged and replaced by the key in defaults.
func NewKeyMap(rec, defaults settings.Record, logger *log.Logger) *KeyMap {
	km := &KeyMap{
		bindings: make(map[settings.Binding]key.Binding, core.MaxPlayers*len(core.Actions)),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}

	for _, p := range core.Players {
		for _, a := range core.Actions {
			setting := settings.BindingKey(settings.Binding{Player: p, Action: a})
			name := rec.Input.Key(p, a)
			err := km.Bind(p, a, name)
			if err == nil {
				continue
			}
			fallback := defaults.Input.Key(p, a)
			if logger != nil {
				logger.Warn("cannot bind key, using default",
					"setting", setting, "key", name, "default", fallback, "error", err)
			}
			if err := km.Bind(p, a, fallback); err != nil && logger != nil {
				logger.Error("cannot bind default key, action left unbound",
					"setting", setting, "key", fallback, "error", err)
			}
		}
	}
	return km
}

// Bind resolves name and makes it the only key for the player's action.
func (km *KeyMap) Bind(player core.PlayerID, action core.Action, name string) error {
	if !player.Valid() {
		return fmt.Errorf("tui: invalid player %d", int(player))
	}
	code, err := keys.Resolve(name)
	if err != nil {
		return err
	}

	slot := settings.Binding{Player: player, Action: action}
	b, ok := km.bindings[slot]
	if !ok {
		b = key.NewBinding()
	}
	b.SetKeys(string(code))
	b.SetHelp(keys.Name(code), fmt.Sprintf("P%d %s", int(player), action))
	b.SetEnabled(true)
	km.bindings[slot] = b
	return nil
}

// Binding returns the binding for a player's action.
func (km *KeyMap) Binding(player core.PlayerID, action core.Action) key.Binding {
	return km.bindings[settings.Binding{Player: player, Action: action}]
}

// Resolve returns the player and action bound to msg.
// Players are checked in order, so the lowest player wins a shared key.
func (km *KeyMap) Resolve(msg tea.KeyMsg) (core.PlayerID, core.Action, bool) {
	for _, p := range core.Players {
		for _, a := range core.Actions {
			if key.Matches(msg, km.bindings[settings.Binding{Player: p, Action: a}]) {
				return p, a, true
			}
		}
	}
	return 0, core.ActionNone, false
}

// ShortHelp returns key bindings for the short help view.
func (km *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Quit}
}

// FullHelp returns one column of bindings per player.
func (km *KeyMap) FullHelp() [][]key.Binding {
	cols := make([][]key.Binding, 0, core.MaxPlayers)
	for _, p := range core.Players {
		col := make([]key.Binding, 0, len(core.Actions))
		for _, a := range core.Actions {
			col = append(col, km.Binding(p, a))
		}
		cols = append(cols, col)
	}
	return cols
}
