package settings

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/tui-arena/internal/core"
	"github.com/vovakirdan/tui-arena/internal/keys"
)

// Section names in the settings file, in file order.
const (
	SectionDisplay  = "display"
	SectionAudio    = "audio"
	SectionGameplay = "gameplay"
	SectionInput    = "input"
)

// Sections lists the file sections in write order.
var Sections = []string{SectionDisplay, SectionAudio, SectionGameplay, SectionInput}

var (
	// ErrUnknownKey is returned for keys outside the field table.
	ErrUnknownKey = errors.New("unknown settings key")

	// ErrInvalidValue is returned when a value fails to parse or validate.
	ErrInvalidValue = errors.New("invalid settings value")
)

// Value limits.
const (
	MinDimension = 1
	MaxDimension = 16384
	MinLives     = 1
	MaxLives     = 99
)

// field describes one recognized key: where it lives in the file and how
// to read and write it on a Record.
type field struct {
	section string
	name    string
	get     func(r Record) any
	set     func(r *Record, raw string) error
}

// Key returns the dotted identifier, e.g. "audio.sfx_volume".
func (f field) Key() string {
	return f.section + "." + f.name
}

var (
	fields     []field
	fieldIndex map[string]field
)

func init() {
	fields = []field{
		intField(SectionDisplay, "width", MinDimension, MaxDimension,
			func(r *Record) *int { return &r.Display.Width }),
		intField(SectionDisplay, "height", MinDimension, MaxDimension,
			func(r *Record) *int { return &r.Display.Height }),
		boolField(SectionDisplay, "fullscreen",
			func(r *Record) *bool { return &r.Display.Fullscreen }),

		boolField(SectionAudio, "music",
			func(r *Record) *bool { return &r.Audio.Music }),
		volumeField(SectionAudio, "music_volume",
			func(r *Record) *float64 { return &r.Audio.MusicVolume }),
		boolField(SectionAudio, "sfx",
			func(r *Record) *bool { return &r.Audio.SFX }),
		volumeField(SectionAudio, "sfx_volume",
			func(r *Record) *float64 { return &r.Audio.SFXVolume }),

		intField(SectionGameplay, "nb_players", 1, core.MaxPlayers,
			func(r *Record) *int { return &r.Gameplay.Players }),
		intField(SectionGameplay, "nb_lives", MinLives, MaxLives,
			func(r *Record) *int { return &r.Gameplay.Lives }),
	}

	for _, p := range core.Players {
		for _, a := range core.Actions {
			fields = append(fields, bindingField(Binding{Player: p, Action: a}))
		}
	}

	fieldIndex = make(map[string]field, len(fields))
	for _, f := range fields {
		fieldIndex[f.Key()] = f
	}
}

// Keys returns every recognized key in file order.
func Keys() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Key()
	}
	return out
}

// BindingKey returns the file key for a binding slot, e.g. "input.1_move_up".
func BindingKey(b Binding) string {
	return SectionInput + "." + bindingName(b)
}

func lookup(key string) (field, error) {
	f, ok := fieldIndex[key]
	if !ok {
		return field{}, fmt.Errorf("settings: %q: %w", key, ErrUnknownKey)
	}
	return f, nil
}

// Get returns the formatted value of key in r.
func (r Record) Get(key string) (string, error) {
	f, err := lookup(key)
	if err != nil {
		return "", err
	}
	return formatValue(f.get(r)), nil
}

// Set parses value and assigns it to key in r.
// r is left unchanged when the value is rejected.
func (r *Record) Set(key, value string) error {
	f, err := lookup(key)
	if err != nil {
		return err
	}
	if r.Input == nil {
		r.Input = make(Bindings)
	}
	if err := f.set(r, value); err != nil {
		return fmt.Errorf("settings: %s: %w", key, err)
	}
	return nil
}

func formatValue(v any) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func intField(section, name string, lo, hi int, ptr func(*Record) *int) field {
	return field{
		section: section,
		name:    name,
		get:     func(r Record) any { return *ptr(&r) },
		set: func(r *Record, raw string) error {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("%q is not an integer: %w", raw, ErrInvalidValue)
			}
			if v < lo || v > hi {
				return fmt.Errorf("%d outside [%d, %d]: %w", v, lo, hi, ErrInvalidValue)
			}
			*ptr(r) = v
			return nil
		},
	}
}

func boolField(section, name string, ptr func(*Record) *bool) field {
	return field{
		section: section,
		name:    name,
		get:     func(r Record) any { return *ptr(&r) },
		set: func(r *Record, raw string) error {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("%q is not a boolean: %w", raw, ErrInvalidValue)
			}
			*ptr(r) = v
			return nil
		},
	}
}

func volumeField(section, name string, ptr func(*Record) *float64) field {
	return field{
		section: section,
		name:    name,
		get:     func(r Record) any { return *ptr(&r) },
		set: func(r *Record, raw string) error {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("%q is not a number: %w", raw, ErrInvalidValue)
			}
			if math.IsNaN(v) || v < 0 || v > 1 {
				return fmt.Errorf("volume %v outside [0, 1]: %w", v, ErrInvalidValue)
			}
			*ptr(r) = v
			return nil
		},
	}
}

func bindingName(b Binding) string {
	return strconv.Itoa(int(b.Player)) + "_" + b.Action.String()
}

func bindingField(b Binding) field {
	return field{
		section: SectionInput,
		name:    bindingName(b),
		get:     func(r Record) any { return r.Input[b] },
		set: func(r *Record, raw string) error {
			code, err := keys.Resolve(raw)
			if err != nil {
				return fmt.Errorf("%w: %w", err, ErrInvalidValue)
			}
			r.Input[b] = keys.Name(code)
			return nil
		},
	}
}
