// Package keys resolves human-readable key names, as written in the
// settings file, into the key codes reported by the terminal input layer.
//
// A Code is the string Bubble Tea produces for a key press (tea.KeyMsg.String),
// so resolved codes can be matched directly with bubbles/key bindings.
package keys

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Code is the terminal key code for a single physical key.
type Code string

// ErrUnknownKey is returned when a key name cannot be resolved.
var ErrUnknownKey = errors.New("unknown key name")

// named maps multi-character key names to their codes.
// Several aliases resolve to the same code.
var named = map[string]Code{
	"up":        "up",
	"down":      "down",
	"left":      "left",
	"right":     "right",
	"space":     " ",
	"enter":     "enter",
	"return":    "enter",
	"tab":       "tab",
	"backspace": "backspace",
	"delete":    "delete",
	"insert":    "insert",
	"home":      "home",
	"end":       "end",
	"pgup":      "pgup",
	"pageup":    "pgup",
	"pgdown":    "pgdown",
	"pagedown":  "pgdown",
	"esc":       "esc",
	"escape":    "esc",
}

// reserved keys are used by the platform itself and cannot be bound.
var reserved = map[Code]bool{
	"ctrl+c": true,
	"esc":    true,
}

// Resolve converts a key name such as "w", "Up" or "space" into a Code.
// Names are case-insensitive; single printable characters resolve to
// themselves in lower case.
func Resolve(name string) (Code, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return "", fmt.Errorf("keys: empty key name: %w", ErrUnknownKey)
	}

	var code Code
	if c, ok := named[n]; ok {
		code = c
	} else if utf8.RuneCountInString(n) == 1 {
		r, _ := utf8.DecodeRuneInString(n)
		if r < 0x21 || r == 0x7f {
			return "", fmt.Errorf("keys: %q: %w", name, ErrUnknownKey)
		}
		code = Code(n)
	} else if strings.HasPrefix(n, "f") && isFunctionKey(n[1:]) {
		code = Code(n)
	} else {
		return "", fmt.Errorf("keys: %q: %w", name, ErrUnknownKey)
	}

	if reserved[code] {
		return "", fmt.Errorf("keys: %q is reserved: %w", name, ErrUnknownKey)
	}
	return code, nil
}

// Name returns the canonical human-readable name for a code.
func Name(c Code) string {
	if c == " " {
		return "space"
	}
	return string(c)
}

// isFunctionKey reports whether s is a function key number from 1 to 20.
func isFunctionKey(s string) bool {
	switch len(s) {
	case 1:
		return s[0] >= '1' && s[0] <= '9'
	case 2:
		return (s[0] == '1' && s[1] >= '0' && s[1] <= '9') || s == "20"
	default:
		return false
	}
}
