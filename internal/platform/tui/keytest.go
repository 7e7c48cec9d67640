package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-arena/internal/core"
	"github.com/vovakirdan/tui-arena/internal/settings"
)

// Key tester layout constants
const (
	playerColWidth = 10
	actionColWidth = 11
	maxEvents      = 8
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			MarginBottom(1)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	hitStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))
	missStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// KeyEvent is one key press as seen by the tester.
type KeyEvent struct {
	Key    string
	Player core.PlayerID
	Action core.Action
	Bound  bool
}

// String describes the event for display.
func (e KeyEvent) String() string {
	if !e.Bound {
		return fmt.Sprintf("%q is not bound", e.Key)
	}
	return fmt.Sprintf("%q -> %s %s (%s)", e.Key, e.Player, e.Action, e.Setting())
}

// Setting returns the settings key that holds the event's binding,
// or "" when the key is not bound.
func (e KeyEvent) Setting() string {
	if !e.Bound {
		return ""
	}
	return settings.BindingKey(settings.Binding{Player: e.Player, Action: e.Action})
}

// KeyTestModel is the Bubble Tea model for the interactive key tester.
// It shows the binding table and resolves every key press to a player action.
type KeyTestModel struct {
	keys     *KeyMap
	players  int
	table    table.Model
	help     help.Model
	events   []KeyEvent
	width    int
	height   int
	quitting bool
}

// NewKeyTestModel creates a tester for the first players slots of km.
func NewKeyTestModel(km *KeyMap, players, width, height int) KeyTestModel {
	m := KeyTestModel{
		keys:    km,
		players: core.Clamp(players, 1, core.MaxPlayers),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	return m
}

// createTable builds the bindings table: one row per player.
func (m KeyTestModel) createTable() table.Model {
	columns := []table.Column{{Title: "Player", Width: playerColWidth}}
	for _, a := range core.Actions {
		columns = append(columns, table.Column{Title: a.String(), Width: actionColWidth})
	}

	rows := make([]table.Row, 0, core.MaxPlayers)
	for _, p := range core.Players {
		label := p.String()
		if int(p) > m.players {
			label += " -"
		}
		row := table.Row{label}
		for _, a := range core.Actions {
			row = append(row, m.keys.Binding(p, a).Help().Key)
		}
		rows = append(rows, row)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(core.MaxPlayers+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t
}

// Init initializes the tester.
func (m KeyTestModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses and window resizes.
func (m KeyTestModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

		ev := KeyEvent{Key: msg.String()}
		if p, a, ok := m.keys.Resolve(msg); ok {
			ev.Player, ev.Action, ev.Bound = p, a, true
		}
		m.events = append([]KeyEvent{ev}, m.events...)
		if len(m.events) > maxEvents {
			m.events = m.events[:maxEvents]
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// Events returns the recent key events, newest first.
func (m KeyTestModel) Events() []KeyEvent {
	return m.events
}

// View renders the tester.
func (m KeyTestModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := titleStyle.Render("KEY BINDINGS - " + strconv.Itoa(m.players) + " active")
	if m.width > 0 {
		title = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title)
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(m.table.View()))
	b.WriteString("\n\n")

	var recent strings.Builder
	if len(m.events) == 0 {
		recent.WriteString(missStyle.Render("Press a key to see what it is bound to."))
	}
	for i, ev := range m.events {
		if i > 0 {
			recent.WriteString("\n")
		}
		style := missStyle
		if ev.Bound {
			style = hitStyle
		}
		recent.WriteString(style.Render(ev.String()))
	}
	b.WriteString(boxStyle.Render(recent.String()))
	b.WriteString("\n")

	b.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return b.String()
}

// RunKeyTest runs the interactive key tester.
func RunKeyTest(km *KeyMap, players, width, height int) error {
	p := tea.NewProgram(
		NewKeyTestModel(km, players, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
