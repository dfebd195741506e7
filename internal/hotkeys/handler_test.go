package hotkeys

import (
	"reflect"
	"testing"

	"github.com/stripwm/stripwm/internal/config"
)

func TestCommandArgv(t *testing.T) {
	cases := map[string][]string{
		"window_focus_west":  {"window", "focus", "west"},
		"window_focus_last":  {"window", "focus", "last"},
		"window_swap_east":   {"window", "swap", "east"},
		"window_stack_west":  {"window", "stack", "west"},
		"window_center":      {"window", "center"},
		"window_resize":      {"window", "resize"},
		"window_manage":      {"window", "manage"},
		"window_unstack":     {"window", "unstack"},
		"quit":               {"quit"},
		"window_explode":     nil,
		"window_focus":       nil,
		"window_center_hard": nil,
		"desktop_show":       nil,
		"":                   nil,
	}
	for command, want := range cases {
		if got := commandArgv(command); !reflect.DeepEqual(got, want) {
			t.Fatalf("commandArgv(%q) = %v, want %v", command, got, want)
		}
	}
}

func TestEveryKnownCommandMapsToArgv(t *testing.T) {
	for _, command := range config.KnownCommands {
		if commandArgv(command) == nil {
			t.Fatalf("known command %q has no argv mapping", command)
		}
	}
}
