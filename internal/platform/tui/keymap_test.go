package tui

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arena/internal/core"
	"github.com/vovakirdan/tui-arena/internal/settings"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapResolveDefaults(t *testing.T) {
	km := NewKeyMap(settings.DefaultRecord(), settings.DefaultRecord(), log.New(io.Discard))

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		player core.PlayerID
		action core.Action
	}{
		{"p1 up", runeKey('w'), core.Player1, core.ActionMoveUp},
		{"p1 right", runeKey('d'), core.Player1, core.ActionMoveRight},
		{"p2 up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.Player2, core.ActionMoveUp},
		{"p2 bomb", tea.KeyMsg{Type: tea.KeyEnter}, core.Player2, core.ActionDropBomb},
		{"p3 left", runeKey('j'), core.Player3, core.ActionMoveLeft},
		{"p4 bomb", runeKey('y'), core.Player4, core.ActionDropBomb},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, a, ok := km.Resolve(tc.msg)
			if !ok {
				t.Fatalf("Resolve(%q) found no binding", tc.msg.String())
			}
			if p != tc.player || a != tc.action {
				t.Errorf("Resolve(%q) = %v %v, expected %v %v", tc.msg.String(), p, a, tc.player, tc.action)
			}
		})
	}

	if _, _, ok := km.Resolve(runeKey('z')); ok {
		t.Error("'z' should not be bound")
	}
}

func TestKeyMapBindReplaces(t *testing.T) {
	km := NewKeyMap(settings.DefaultRecord(), settings.DefaultRecord(), nil)

	if err := km.Bind(core.Player1, core.ActionMoveUp, "z"); err != nil {
		t.Fatalf("Bind() failed: %v", err)
	}

	b := km.Binding(core.Player1, core.ActionMoveUp)
	if len(b.Keys()) != 1 || b.Keys()[0] != "z" {
		t.Errorf("Keys() = %v, expected [z]", b.Keys())
	}
	if _, _, ok := km.Resolve(runeKey('w')); ok {
		t.Error("old key 'w' should no longer be bound")
	}
	if p, a, ok := km.Resolve(runeKey('z')); !ok || p != core.Player1 || a != core.ActionMoveUp {
		t.Errorf("Resolve('z') = %v %v %v", p, a, ok)
	}
}

func TestKeyMapSingleKeyPerAction(t *testing.T) {
	km := NewKeyMap(settings.DefaultRecord(), settings.DefaultRecord(), nil)
	for _, p := range core.Players {
		for _, a := range core.Actions {
			if n := len(km.Binding(p, a).Keys()); n != 1 {
				t.Errorf("%v %v has %d keys, expected 1", p, a, n)
			}
		}
	}
}

func TestKeyMapInvalidNameFallsBack(t *testing.T) {
	rec := settings.DefaultRecord()
	rec.Input[settings.Binding{Player: core.Player2, Action: core.ActionDropBomb}] = "warp"

	var logs bytes.Buffer
	km := NewKeyMap(rec, settings.DefaultRecord(), log.New(&logs))

	b := km.Binding(core.Player2, core.ActionDropBomb)
	if len(b.Keys()) != 1 || b.Keys()[0] != "enter" {
		t.Errorf("Keys() = %v, expected [enter]", b.Keys())
	}
	if !strings.Contains(logs.String(), "cannot bind key") {
		t.Errorf("expected a warning, got %q", logs.String())
	}
	if !strings.Contains(logs.String(), "input.2_drop_bomb") {
		t.Errorf("warning should name the setting, got %q", logs.String())
	}
}

func TestKeyMapFallsBackToStoreDefaults(t *testing.T) {
	store := settings.NewStore(filepath.Join(t.TempDir(), "settings.yaml"), settings.WithLogger(log.New(io.Discard)))
	store.Load()

	rec := store.Snapshot()
	rec.Input[settings.Binding{Player: core.Player1, Action: core.ActionMoveUp}] = "warp"

	km := NewKeyMap(rec, store.Defaults(), nil)
	if b := km.Binding(core.Player1, core.ActionMoveUp); len(b.Keys()) != 1 || b.Keys()[0] != "w" {
		t.Errorf("Keys() = %v, expected [w]", b.Keys())
	}
}

func TestKeyMapBadDefaultIsLogged(t *testing.T) {
	slot := settings.Binding{Player: core.Player3, Action: core.ActionMoveDown}
	rec := settings.DefaultRecord()
	rec.Input[slot] = "warp"
	defaults := settings.DefaultRecord()
	defaults.Input[slot] = "esc"

	var logs bytes.Buffer
	km := NewKeyMap(rec, defaults, log.New(&logs))

	if b := km.Binding(core.Player3, core.ActionMoveDown); len(b.Keys()) != 0 {
		t.Errorf("Keys() = %v, expected no keys", b.Keys())
	}
	if !strings.Contains(logs.String(), "cannot bind default key") {
		t.Errorf("expected an error log, got %q", logs.String())
	}
}

func TestKeyMapBindRejects(t *testing.T) {
	km := NewKeyMap(settings.DefaultRecord(), settings.DefaultRecord(), nil)

	if err := km.Bind(core.PlayerID(7), core.ActionMoveUp, "q"); err == nil {
		t.Error("Bind() with invalid player should fail")
	}
	if err := km.Bind(core.Player1, core.ActionMoveUp, "ctrl+c"); err == nil {
		t.Error("Bind() with reserved key should fail")
	}
	if b := km.Binding(core.Player1, core.ActionMoveUp); b.Keys()[0] != "w" {
		t.Errorf("failed Bind() changed the binding to %v", b.Keys())
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := NewKeyMap(settings.DefaultRecord(), settings.DefaultRecord(), nil)

	full := km.FullHelp()
	if len(full) != core.MaxPlayers {
		t.Fatalf("FullHelp() has %d columns, expected %d", len(full), core.MaxPlayers)
	}
	if got := full[0][4].Help().Key; got != "space" {
		t.Errorf("P1 drop_bomb help key = %q, expected space", got)
	}
	if got := full[1][0].Help().Desc; got != "P2 move_up" {
		t.Errorf("P2 move_up help desc = %q", got)
	}
	if len(km.ShortHelp()) != 1 {
		t.Errorf("ShortHelp() = %d bindings, expected 1", len(km.ShortHelp()))
	}
}

func TestKeyTestModelUpdate(t *testing.T) {
	km := NewKeyMap(settings.DefaultRecord(), settings.DefaultRecord(), nil)
	m := NewKeyTestModel(km, 2, 80, 24)

	model, cmd := m.Update(runeKey('a'))
	if cmd != nil {
		t.Error("bound key should not return a command")
	}
	m = model.(KeyTestModel)

	model, _ = m.Update(runeKey('z'))
	m = model.(KeyTestModel)

	events := m.Events()
	if len(events) != 2 {
		t.Fatalf("Events() = %d, expected 2", len(events))
	}
	if events[0].Bound || events[0].Key != "z" {
		t.Errorf("newest event = %+v, expected unbound z", events[0])
	}
	if !events[1].Bound || events[1].Player != core.Player1 || events[1].Action != core.ActionMoveLeft {
		t.Errorf("oldest event = %+v, expected P1 move_left", events[1])
	}
	if got := events[1].Setting(); got != "input.1_move_left" {
		t.Errorf("Setting() = %q, expected input.1_move_left", got)
	}
	if got := events[0].Setting(); got != "" {
		t.Errorf("unbound Setting() = %q, expected empty", got)
	}

	view := m.View()
	if !strings.Contains(view, "KEY BINDINGS") {
		t.Error("View() should contain the title")
	}
	if !strings.Contains(view, "move_left") {
		t.Error("View() should show the last resolved action")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Error("esc should quit")
	}
}

func TestKeyTestModelEventLimit(t *testing.T) {
	km := NewKeyMap(settings.DefaultRecord(), settings.DefaultRecord(), nil)
	var model tea.Model = NewKeyTestModel(km, 4, 80, 24)

	for i := 0; i < maxEvents+5; i++ {
		model, _ = model.Update(runeKey('w'))
	}
	if n := len(model.(KeyTestModel).Events()); n != maxEvents {
		t.Errorf("Events() = %d, expected %d", n, maxEvents)
	}
}
