package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// DisableAnimationSpeed is the threshold above which animation degenerates to
// a single discrete move. Speeds at or above it (and unset speeds) must take
// the jump path, never the per-tick path.
const DisableAnimationSpeed = 100000.0

// DefaultPresetWidths is the column width cycle used when the config does not
// set one.
var DefaultPresetWidths = []float64{0.25, 0.33, 0.50, 0.66, 0.75}

// Config is the full, validated configuration: options plus bindings. A
// reload swaps the whole value in one dispatcher turn; partial application is
// not possible by construction.
type Config struct {
	FocusFollowsMouse   bool              `yaml:"focus_follows_mouse"`
	PresetColumnWidths  []float64         `yaml:"preset_column_widths"`
	SwipeGestureFingers int               `yaml:"swipe_gesture_fingers"` // 0 disables
	AnimationSpeed      float64           `yaml:"animation_speed"`       // px/s; 0 disables
	Gap                 float64           `yaml:"gap"`
	Bindings            map[string]string `yaml:"bindings"` // command -> chord
}

// Commands a binding may refer to. The daemon maps these onto engine command
// argv; anything else in the bindings table is a validation error.
var KnownCommands = []string{
	"window_focus_west",
	"window_focus_east",
	"window_focus_north",
	"window_focus_south",
	"window_focus_first",
	"window_focus_last",
	"window_swap_west",
	"window_swap_east",
	"window_swap_first",
	"window_swap_last",
	"window_center",
	"window_resize",
	"window_manage",
	"window_stack_west",
	"window_stack_east",
	"window_unstack",
	"quit",
}

// Default returns the built-in configuration used when no file exists.
func Default() *Config {
	return &Config{
		FocusFollowsMouse:  false,
		PresetColumnWidths: append([]float64(nil), DefaultPresetWidths...),
		AnimationSpeed:     DisableAnimationSpeed,
		Gap:                0,
		Bindings:           map[string]string{},
	}
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join("stripwm", "config.yaml"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	return path, nil
}

// Load reads the configuration from the standard location. A missing file is
// not an error: the defaults apply.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates a config file.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a config document. On any error the caller
// keeps its previous config; Parse never returns a partially valid result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks option ranges and binding references.
func (c *Config) Validate() error {
	if len(c.PresetColumnWidths) == 0 {
		return fmt.Errorf("preset_column_widths must not be empty")
	}
	for _, w := range c.PresetColumnWidths {
		if w <= 0 || w > 1 {
			return fmt.Errorf("preset_column_widths: %v is outside (0, 1]", w)
		}
	}
	if c.SwipeGestureFingers != 0 && c.SwipeGestureFingers < 3 {
		return fmt.Errorf("swipe_gesture_fingers must be >= 3 (or unset to disable), got %d", c.SwipeGestureFingers)
	}
	if c.AnimationSpeed < 0 {
		return fmt.Errorf("animation_speed must not be negative, got %v", c.AnimationSpeed)
	}
	if c.Gap < 0 {
		return fmt.Errorf("gap must not be negative, got %v", c.Gap)
	}
	known := make(map[string]struct{}, len(KnownCommands))
	for _, cmd := range KnownCommands {
		known[cmd] = struct{}{}
	}
	for command, chord := range c.Bindings {
		if _, ok := known[command]; !ok {
			return fmt.Errorf("bindings: unknown command %q", command)
		}
		if _, err := ParseChord(chord); err != nil {
			return fmt.Errorf("bindings: %s: %w", command, err)
		}
	}
	return nil
}

// AnimationEnabled reports whether target-frame changes should be animated
// rather than applied as a single discrete jump.
func (c *Config) AnimationEnabled() bool {
	return c.AnimationSpeed > 0 && c.AnimationSpeed < DisableAnimationSpeed
}

// SortedBindings returns the binding commands in stable order, for logging
// and `config print`.
func (c *Config) SortedBindings() []string {
	commands := make([]string, 0, len(c.Bindings))
	for command := range c.Bindings {
		commands = append(commands, command)
	}
	sort.Strings(commands)
	return commands
}
