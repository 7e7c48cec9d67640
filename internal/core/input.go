package core

import "fmt"

// Action represents a logical player input, abstracted from physical keys.
type Action int

const (
	ActionNone Action = iota
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionDropBomb
)

// Actions lists every bindable action in file order.
var Actions = []Action{
	ActionMoveUp,
	ActionMoveDown,
	ActionMoveLeft,
	ActionMoveRight,
	ActionDropBomb,
}

// String returns the action name used in the settings file.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionMoveUp:
		return "move_up"
	case ActionMoveDown:
		return "move_down"
	case ActionMoveLeft:
		return "move_left"
	case ActionMoveRight:
		return "move_right"
	case ActionDropBomb:
		return "drop_bomb"
	default:
		return "unknown"
	}
}

// ParseAction returns the action with the given settings-file name.
func ParseAction(name string) (Action, error) {
	for _, a := range Actions {
		if a.String() == name {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("core: unknown action %q", name)
}

// PlayerID identifies a local player slot, starting at 1.
type PlayerID int

const (
	Player1 PlayerID = iota + 1
	Player2
	Player3
	Player4
)

// MaxPlayers is the number of player slots the arena supports.
const MaxPlayers = 4

// Players lists every player slot in order.
var Players = []PlayerID{Player1, Player2, Player3, Player4}

// Valid reports whether id names an existing player slot.
func (id PlayerID) Valid() bool {
	return id >= Player1 && id <= MaxPlayers
}

// String returns a human-readable name for the player.
func (id PlayerID) String() string {
	return fmt.Sprintf("Player %d", int(id))
}
