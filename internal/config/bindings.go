package config

import (
	"fmt"
	"strings"
)

// Chord is a parsed key binding: zero or more modifiers plus one key, written
// in the config as "mod+mod-key", e.g. "alt-h" or "alt+shift-left".
type Chord struct {
	Modifiers []string
	Key       string
}

var modifierNames = map[string]string{
	"alt":   "Mod1",
	"super": "Mod4",
	"cmd":   "Mod4",
	"shift": "Shift",
	"ctrl":  "Control",
}

// ParseChord splits a binding string into modifiers and key.
func ParseChord(input string) (Chord, error) {
	parts := strings.Split(input, "-")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	key := parts[len(parts)-1]
	parts = parts[:len(parts)-1]

	if len(parts) > 1 {
		return Chord{}, fmt.Errorf("too many dashes in chord %q", input)
	}
	if key == "" {
		return Chord{}, fmt.Errorf("empty key in chord %q", input)
	}

	var modifiers []string
	if len(parts) == 1 {
		for _, modifier := range strings.Split(parts[0], "+") {
			modifier = strings.TrimSpace(modifier)
			if _, ok := modifierNames[modifier]; !ok {
				return Chord{}, fmt.Errorf("invalid modifier %q in chord %q", modifier, input)
			}
			modifiers = append(modifiers, modifier)
		}
	}

	return Chord{Modifiers: modifiers, Key: key}, nil
}

// X11Sequence renders the chord in the "Mod-key" form the keybind module
// grabs, e.g. "Mod1-Shift-h".
func (c Chord) X11Sequence() string {
	var parts []string
	for _, modifier := range c.Modifiers {
		parts = append(parts, modifierNames[modifier])
	}
	parts = append(parts, c.Key)
	return strings.Join(parts, "-")
}

func (c Chord) String() string {
	if len(c.Modifiers) == 0 {
		return c.Key
	}
	return strings.Join(c.Modifiers, "+") + "-" + c.Key
}
