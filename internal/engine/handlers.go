package engine

import (
	"errors"

	"github.com/stripwm/stripwm/internal/config"
	"github.com/stripwm/stripwm/internal/event"
	"github.com/stripwm/stripwm/internal/platform"
	"github.com/stripwm/stripwm/internal/strip"
)

// handle applies one event to the model and registry. Called only from the
// dispatcher goroutine.
func (e *Engine) handle(ev event.Event) {
	switch ev := ev.(type) {
	case event.Tick:
		e.handleTick(ev)
	case event.WindowCreated:
		e.adoptWindow(ev.Window)
	case event.WindowDestroyed:
		e.handleWindowDestroyed(ev.ID)
	case event.WindowFocused:
		e.handleWindowFocused(ev.ID)
	case event.WindowMoved:
		e.refreshFloatingFrame(ev.ID)
	case event.WindowResized:
		e.refreshFloatingFrame(ev.ID)
	case event.AppLaunched:
		e.registry.OnLaunch(ev.PID, ev.Name)
	case event.AppTerminated:
		e.handleAppTerminated(ev.PID)
	case event.AppFrontSwitched:
		e.registry.OnFrontSwitch(ev.PID)
	case event.MouseMoved:
		e.handleMouseMoved(ev.X, ev.Y)
	case event.Swipe:
		e.handleSwipe(ev)
	case event.DisplaysChanged:
		e.handleDisplaysChanged()
	case event.DisplayRemoved:
		e.applyChanges(e.model.RemoveMonitor(ev.ID))
	case event.Command:
		e.handleCommand(ev.Argv)
	case event.ConfigReloaded:
		e.handleConfigReloaded(ev.Config)
	case event.WindowsLoaded:
		e.loaded = true
	default:
		e.logger.Debug("unhandled event", "kind", ev.Kind())
	}
}

func (e *Engine) handleTick(ev event.Tick) {
	for _, u := range e.sched.Tick(ev.At) {
		w, ok := e.model.Window(u.ID)
		if !ok {
			e.sched.Cancel(u.ID)
			continue
		}
		w.Frame = u.Frame
		if err := e.backend.SetWindowFrame(u.ID, frameToRect(u.Frame)); err != nil {
			e.logger.Warn("platform set frame failed", "window", u.ID, "error", err)
		}
	}
}

// adoptWindow tracks a new window and inserts it into the strip of the
// monitor it appeared on. Zero-sized windows stay floating until the
// platform reports real geometry.
func (e *Engine) adoptWindow(w platform.Window) {
	if _, ok := e.model.Window(w.ID); ok {
		return
	}
	frame := rectToFrame(w.Bounds)
	e.model.Track(w.ID, w.PID, w.AppID, frame)
	e.registry.RegisterWindow(w.PID, w.ID, w.AppID)

	if w.Bounds.Width <= 0 || w.Bounds.Height <= 0 {
		return
	}

	monitor := e.monitorFor(frame)
	ratio := config.DefaultPresetWidths[0]
	if len(e.cfg.PresetColumnWidths) > 0 {
		ratio = e.cfg.PresetColumnWidths[0]
	}
	changed, err := e.model.InsertWindow(w.ID, monitor, ratio)
	if err != nil {
		e.logger.Warn("window not managed", "window", w.ID, "error", err)
		return
	}
	e.applyChanges(changed)
	e.logger.Debug("window managed", "window", w.ID, "pid", w.PID, "app", w.AppID)
}

func (e *Engine) handleWindowDestroyed(id platform.WindowID) {
	e.sched.Cancel(id)
	e.applyChanges(e.model.RemoveWindow(id))

	pid, orphaned := e.registry.UnregisterWindow(id)
	if orphaned && !e.registry.Alive(pid) {
		e.registry.OnTerminate(pid)
		e.logger.Debug("process released", "pid", pid)
	}
}

func (e *Engine) handleWindowFocused(id platform.WindowID) {
	changed, err := e.model.SetFocus(id)
	if err != nil {
		if !errors.Is(err, strip.ErrUnknownWindow) {
			e.logger.Warn("focus update failed", "window", id, "error", err)
		}
		return
	}
	if w, ok := e.model.Window(id); ok {
		e.registry.OnFrontSwitch(w.PID)
	}
	e.applyChanges(changed)
}

// refreshFloatingFrame re-reads geometry after an externally driven move or
// resize. Managed windows are authoritative from the model side, so only
// floating frames track the platform.
func (e *Engine) refreshFloatingFrame(id platform.WindowID) {
	w, ok := e.model.Window(id)
	if !ok || e.model.Managed(id) {
		return
	}
	rect, err := e.backend.WindowFrame(id)
	if err != nil {
		e.logger.Debug("platform query failed: window frame", "window", id, "error", err)
		return
	}
	w.Frame = rectToFrame(rect)
	w.Target = w.Frame
}

func (e *Engine) handleAppTerminated(pid int) {
	for _, id := range e.registry.OnTerminate(pid) {
		e.sched.Cancel(id)
		e.applyChanges(e.model.RemoveWindow(id))
	}
}

func (e *Engine) handleMouseMoved(x, y int) {
	if !e.cfg.FocusFollowsMouse || !e.loaded {
		return
	}
	id, ok := e.model.WindowAt(float64(x), float64(y))
	if !ok || id == e.model.Focus() {
		return
	}
	changed, err := e.model.SetFocus(id)
	if err != nil {
		return
	}
	if err := e.backend.FocusWindow(id); err != nil {
		e.logger.Debug("platform focus failed", "window", id, "error", err)
	}
	e.applyChanges(changed)
}

func (e *Engine) handleSwipe(ev event.Swipe) {
	if e.cfg.SwipeGestureFingers == 0 || ev.Fingers != e.cfg.SwipeGestureFingers {
		return
	}
	strips := e.model.Strips()
	if len(strips) == 0 {
		return
	}
	target := strips[0]
	if monitor, ok := e.model.MonitorOf(e.model.Focus()); ok {
		if s := e.stripByMonitor(monitor); s != nil {
			target = s
		}
	}
	delta := ev.DeltaX * target.Bounds().W
	e.applyChanges(e.model.ScrollBy(target.MonitorID(), delta))
}

// handleDisplaysChanged reconciles the strip set against the platform's
// current display list: new displays get empty strips, resized ones trigger
// a relayout, vanished ones hand their columns to a surviving strip.
func (e *Engine) handleDisplaysChanged() {
	displays, err := e.backend.Displays()
	if err != nil {
		e.logger.Error("platform query failed: displays", "error", err)
		return
	}
	seen := make(map[int]bool, len(displays))
	for _, d := range displays {
		seen[d.ID] = true
		e.monitorNames[d.ID] = d.Name
		e.applyChanges(e.model.AddMonitor(d.ID, rectToFrame(d.Usable)))
	}
	var removed []int
	for _, s := range e.model.Strips() {
		if !seen[s.MonitorID()] {
			removed = append(removed, s.MonitorID())
		}
	}
	for _, id := range removed {
		delete(e.monitorNames, id)
		e.applyChanges(e.model.RemoveMonitor(id))
	}
}

func (e *Engine) handleConfigReloaded(cfg *config.Config) {
	e.cfg = cfg
	e.sched.SetSpeed(cfg.AnimationSpeed)
	e.applyChanges(e.model.SetGap(cfg.Gap))
	e.logger.Info("configuration applied",
		"animation_speed", cfg.AnimationSpeed,
		"gap", cfg.Gap,
		"focus_follows_mouse", cfg.FocusFollowsMouse)
	if e.onConfig != nil {
		e.onConfig(cfg)
	}
}

// monitorFor picks the display whose usable area contains the frame's
// center, falling back to the first strip.
func (e *Engine) monitorFor(f strip.Frame) int {
	cx := f.X + f.W/2
	cy := f.Y + f.H/2
	for _, s := range e.model.Strips() {
		if s.Bounds().Contains(cx, cy) {
			return s.MonitorID()
		}
	}
	if strips := e.model.Strips(); len(strips) > 0 {
		return strips[0].MonitorID()
	}
	return 0
}

func (e *Engine) stripByMonitor(id int) *strip.Strip {
	for _, s := range e.model.Strips() {
		if s.MonitorID() == id {
			return s
		}
	}
	return nil
}
