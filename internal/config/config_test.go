package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.False(t, cfg.AnimationEnabled())
	require.Equal(t, DefaultPresetWidths, cfg.PresetColumnWidths)
}

func TestParseFullDocument(t *testing.T) {
	doc := []byte(`
focus_follows_mouse: true
preset_column_widths: [0.25, 0.5, 0.75]
swipe_gesture_fingers: 3
animation_speed: 2400
gap: 8
bindings:
  window_focus_west: alt-h
  window_focus_east: alt-l
  window_swap_west: alt+shift-h
  window_resize: alt-r
  quit: alt+shift-q
`)
	cfg, err := Parse(doc)
	require.NoError(t, err)
	require.True(t, cfg.FocusFollowsMouse)
	require.Equal(t, []float64{0.25, 0.5, 0.75}, cfg.PresetColumnWidths)
	require.Equal(t, 3, cfg.SwipeGestureFingers)
	require.InDelta(t, 2400, cfg.AnimationSpeed, 1e-9)
	require.InDelta(t, 8, cfg.Gap, 1e-9)
	require.True(t, cfg.AnimationEnabled())
	require.Len(t, cfg.Bindings, 5)
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"bad yaml":          "bindings: [",
		"width over one":    "preset_column_widths: [1.5]",
		"width zero":        "preset_column_widths: [0]",
		"two fingers":       "swipe_gesture_fingers: 2",
		"negative speed":    "animation_speed: -1",
		"negative gap":      "gap: -4",
		"unknown command":   "bindings: {window_explode: alt-x}",
		"bad chord":         "bindings: {window_resize: alt-}",
		"unknown modifier":  "bindings: {window_resize: meta-r}",
		"double dash chord": "bindings: {window_resize: alt-shift-r}",
	}
	for name, doc := range cases {
		_, err := Parse([]byte(doc))
		require.Error(t, err, "case %q should fail", name)
	}
}

func TestLoadFromPathMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gap: 12\n"), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	require.InDelta(t, 12, cfg.Gap, 1e-9)
}

func TestSortedBindings(t *testing.T) {
	cfg := Default()
	cfg.Bindings = map[string]string{
		"window_resize":     "alt-r",
		"quit":              "alt-q",
		"window_focus_west": "alt-h",
	}
	require.Equal(t, []string{"quit", "window_focus_west", "window_resize"}, cfg.SortedBindings())
}

func TestParseChord(t *testing.T) {
	chord, err := ParseChord("alt+shift-h")
	require.NoError(t, err)
	require.Equal(t, []string{"alt", "shift"}, chord.Modifiers)
	require.Equal(t, "h", chord.Key)
	require.Equal(t, "Mod1-Shift-h", chord.X11Sequence())
	require.Equal(t, "alt+shift-h", chord.String())
}

func TestParseChordBareKey(t *testing.T) {
	chord, err := ParseChord("F11")
	require.NoError(t, err)
	require.Empty(t, chord.Modifiers)
	require.Equal(t, "F11", chord.X11Sequence())
}

func TestParseChordErrors(t *testing.T) {
	for _, input := range []string{"", "alt-", "alt-shift-h", "meta-h", "-h"} {
		_, err := ParseChord(input)
		require.Error(t, err, "chord %q should fail", input)
	}
}
