package engine

import (
	"fmt"
	"strconv"

	"github.com/stripwm/stripwm/internal/event"
	"github.com/stripwm/stripwm/internal/platform"
	"github.com/stripwm/stripwm/internal/strip"
)

// handleCommand executes one argv-style command inside the dispatcher turn.
// Commands arrive from hotkeys and IPC through the same channel as platform
// events, so they observe and mutate a consistent model.
func (e *Engine) handleCommand(argv []string) {
	err := e.runCommand(argv)
	if err != nil {
		e.logger.Warn("command failed", "argv", argv, "error", err)
		return
	}
	e.logger.Debug("command applied", "argv", argv)
}

func (e *Engine) runCommand(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	switch argv[0] {
	case "window":
		return e.runWindowCommand(argv[1:])
	case "quit":
		// Re-enqueued so Run sees it on the channel and exits cleanly.
		go e.Enqueue(event.Quit{})
		return nil
	default:
		return fmt.Errorf("unknown command %q", argv[0])
	}
}

func (e *Engine) runWindowCommand(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("window command requires a verb")
	}
	switch argv[0] {
	case "focus":
		dir, err := parseDirection(argv[1:])
		if err != nil {
			return err
		}
		return e.cmdFocus(dir)
	case "swap":
		dir, err := parseDirection(argv[1:])
		if err != nil {
			return err
		}
		return e.cmdSwap(dir)
	case "center":
		return e.cmdCenter()
	case "resize":
		return e.cmdResize(argv[1:])
	case "manage":
		return e.cmdManage()
	case "stack":
		dir, err := parseDirection(argv[1:])
		if err != nil {
			return err
		}
		return e.cmdStack(dir)
	case "unstack":
		return e.cmdUnstack()
	case "scroll":
		return e.cmdScroll(argv[1:])
	default:
		return fmt.Errorf("unknown window verb %q", argv[0])
	}
}

func parseDirection(argv []string) (strip.Direction, error) {
	if len(argv) == 0 {
		return 0, fmt.Errorf("missing direction")
	}
	switch argv[0] {
	case "west":
		return strip.West, nil
	case "east":
		return strip.East, nil
	case "north":
		return strip.North, nil
	case "south":
		return strip.South, nil
	case "first":
		return strip.First, nil
	case "last":
		return strip.Last, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", argv[0])
	}
}

func (e *Engine) focused() (platform.WindowID, error) {
	id := e.model.Focus()
	if id == 0 {
		return 0, errNoFocus
	}
	return id, nil
}

// cmdFocus moves focus to the neighbor in the given direction. At a strip
// edge the command is a silent no-op: focus never wraps and never crosses
// monitors.
func (e *Engine) cmdFocus(dir strip.Direction) error {
	id, err := e.focused()
	if err != nil {
		return err
	}
	target, ok := e.model.Neighbor(id, dir)
	if !ok {
		return nil
	}
	changed, err := e.model.SetFocus(target)
	if err != nil {
		return err
	}
	if err := e.backend.FocusWindow(target); err != nil {
		e.logger.Debug("platform focus failed", "window", target, "error", err)
	}
	if err := e.backend.RaiseWindow(target); err != nil {
		e.logger.Debug("platform raise failed", "window", target, "error", err)
	}
	e.applyChanges(changed)
	return nil
}

func (e *Engine) cmdSwap(dir strip.Direction) error {
	id, err := e.focused()
	if err != nil {
		return err
	}
	changed, err := e.model.MoveColumn(id, dir)
	if err != nil {
		return err
	}
	e.applyChanges(changed)
	return nil
}

// cmdCenter scrolls nothing and reflows nothing: the focused window gets a
// one-off centered frame while every other window stays exactly in place.
func (e *Engine) cmdCenter() error {
	id, err := e.focused()
	if err != nil {
		return err
	}
	target, ok := e.model.CenterTarget(id)
	if !ok {
		return fmt.Errorf("window %d: %w", id, strip.ErrUnknownWindow)
	}
	w, _ := e.model.Window(id)
	w.Target = target
	e.applyChanges([]*strip.Window{w})
	return nil
}

// cmdResize sets the focused column's width. With no argument the width
// cycles to the next configured preset.
func (e *Engine) cmdResize(argv []string) error {
	id, err := e.focused()
	if err != nil {
		return err
	}
	var ratio float64
	if len(argv) > 0 {
		ratio, err = strconv.ParseFloat(argv[0], 64)
		if err != nil {
			return fmt.Errorf("parse width ratio %q: %w", argv[0], err)
		}
		if ratio <= 0 || ratio > 1 {
			return fmt.Errorf("width ratio %v out of range (0, 1]", ratio)
		}
	} else {
		ratio = e.model.NextPresetRatio(id, e.cfg.PresetColumnWidths)
	}
	changed, err := e.model.ResizeColumn(id, ratio)
	if err != nil {
		return err
	}
	e.applyChanges(changed)
	return nil
}

// cmdManage toggles the focused window between tiled and floating.
func (e *Engine) cmdManage() error {
	id, err := e.focused()
	if err != nil {
		return err
	}
	if e.model.Managed(id) {
		e.sched.Cancel(id)
		e.applyChanges(e.model.Unmanage(id))
		return nil
	}
	w, ok := e.model.Window(id)
	if !ok {
		return fmt.Errorf("window %d: %w", id, strip.ErrUnknownWindow)
	}
	ratio := w.Frame.W
	monitor := e.monitorFor(w.Frame)
	if s := e.stripByMonitor(monitor); s != nil && s.Bounds().W > 0 {
		ratio = w.Frame.W / s.Bounds().W
	}
	if ratio <= 0 || ratio > 1 {
		ratio = e.defaultRatio()
	}
	changed, err := e.model.InsertWindow(id, monitor, ratio)
	if err != nil {
		return err
	}
	e.applyChanges(changed)
	return nil
}

func (e *Engine) cmdStack(dir strip.Direction) error {
	id, err := e.focused()
	if err != nil {
		return err
	}
	changed, err := e.model.Stack(id, dir)
	if err != nil {
		return err
	}
	e.applyChanges(changed)
	return nil
}

func (e *Engine) cmdUnstack() error {
	id, err := e.focused()
	if err != nil {
		return err
	}
	changed, err := e.model.Unstack(id)
	if err != nil {
		return err
	}
	e.applyChanges(changed)
	return nil
}

func (e *Engine) cmdScroll(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("scroll requires a pixel delta")
	}
	delta, err := strconv.ParseFloat(argv[0], 64)
	if err != nil {
		return fmt.Errorf("parse scroll delta %q: %w", argv[0], err)
	}
	monitor, ok := e.model.MonitorOf(e.model.Focus())
	if !ok {
		strips := e.model.Strips()
		if len(strips) == 0 {
			return nil
		}
		monitor = strips[0].MonitorID()
	}
	e.applyChanges(e.model.ScrollBy(monitor, delta))
	return nil
}

func (e *Engine) defaultRatio() float64 {
	if len(e.cfg.PresetColumnWidths) > 0 {
		return e.cfg.PresetColumnWidths[0]
	}
	return 0.5
}
