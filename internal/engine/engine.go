// Package engine is the single-consumer core of the window manager. Every
// producer (platform bridge, animation ticker, IPC command source, config
// watcher) enqueues typed events onto one ordered channel; exactly one
// goroutine pops and applies them. That total ordering is the correctness
// mechanism: no two mutations of the strip model or process registry can
// interleave, so neither holds a lock.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/stripwm/stripwm/internal/animate"
	"github.com/stripwm/stripwm/internal/config"
	"github.com/stripwm/stripwm/internal/event"
	"github.com/stripwm/stripwm/internal/platform"
	"github.com/stripwm/stripwm/internal/process"
	"github.com/stripwm/stripwm/internal/strip"
)

// TickInterval is the animation frame cadence.
const TickInterval = 16 * time.Millisecond

const eventQueueSize = 512

// Engine owns the model, the registry and the animation scheduler. All
// fields below the channels are touched only from Run's goroutine.
type Engine struct {
	logger  *slog.Logger
	backend platform.Backend

	events  chan event.Event
	queries chan func()

	cfg      *config.Config
	model    *strip.Model
	registry *process.Registry
	sched    *animate.Scheduler

	monitorNames map[int]string
	started      time.Time
	loaded       bool
	now          func() time.Time

	// onConfig runs inside the dispatcher turn that applied a reload, after
	// the new options are in effect (hotkey re-registration lives here).
	onConfig func(*config.Config)
}

// New creates an engine with the given configuration.
func New(backend platform.Backend, cfg *config.Config, logger *slog.Logger) *Engine {
	return &Engine{
		logger:       logger,
		backend:      backend,
		events:       make(chan event.Event, eventQueueSize),
		queries:      make(chan func(), 16),
		cfg:          cfg,
		model:        strip.New(cfg.Gap),
		registry:     process.NewRegistry(),
		sched:        animate.New(cfg.AnimationSpeed),
		monitorNames: make(map[int]string),
		started:      time.Now(),
		now:          time.Now,
	}
}

// OnConfigChange registers a callback invoked after each applied reload.
func (e *Engine) OnConfigChange(fn func(*config.Config)) {
	e.onConfig = fn
}

// Enqueue adds an event to the pipeline. Safe from any goroutine; blocks
// only when the queue is full.
func (e *Engine) Enqueue(ev event.Event) {
	e.events <- ev
}

// Run executes the dispatcher loop until a Quit event arrives or ctx is
// cancelled. A handler failure is logged and never halts the loop.
func (e *Engine) Run(ctx context.Context) error {
	e.seed()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-e.queries:
			fn()
		case ev := <-e.events:
			if ev.Kind() == event.KindQuit {
				e.logger.Info("quit requested, stopping dispatcher")
				return nil
			}
			e.applyEvent(ev)
		}
	}
}

// applyEvent routes one event with per-event recovery: panics and invariant
// violations are contained to the turn that raised them, with the model
// rolled back to its pre-event snapshot.
func (e *Engine) applyEvent(ev event.Event) {
	// Ticks only drive scheduler frames; everything else may mutate the
	// model, including mouse moves via focus-follows-mouse.
	mutating := ev.Kind() != event.KindTick
	var snap *strip.Snapshot
	if mutating {
		snap = e.model.Snapshot()
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("event handler panicked, state rolled back",
				"kind", ev.Kind(),
				"panic", r)
			if snap != nil {
				e.model.Restore(snap)
			}
		}
	}()

	e.handle(ev)

	if mutating {
		if err := e.model.Validate(); err != nil {
			e.logger.Error("invariant violation, rolling back mutation",
				"kind", ev.Kind(),
				"error", err)
			e.model.Restore(snap)
		}
	}
}

// seed queries the platform for displays and already-open windows so the
// model starts complete. Seeding happens before the first event is consumed;
// there is no persisted layout state to reload.
func (e *Engine) seed() {
	displays, err := e.backend.Displays()
	if err != nil {
		e.logger.Error("platform query failed: displays", "error", err)
	}
	for _, d := range displays {
		e.monitorNames[d.ID] = d.Name
		e.model.AddMonitor(d.ID, rectToFrame(d.Usable))
	}

	windows, err := e.backend.ListWindows()
	if err != nil {
		e.logger.Error("platform query failed: window list", "error", err)
	}
	for _, w := range windows {
		e.adoptWindow(w)
	}
	e.logger.Info("initial scan complete",
		"displays", len(displays),
		"windows", len(windows))

	if id, err := e.backend.ActiveWindow(); err == nil && id != 0 {
		if changed, err := e.model.SetFocus(id); err == nil {
			e.applyChanges(changed)
		}
	}

	// Consumed as the first event of the dispatcher loop; pointer events
	// queued before it are ignored by the focus-follows-mouse gate.
	e.Enqueue(event.WindowsLoaded{})
}

// dispatchTargets hands changed target frames to the scheduler, or applies
// them as a discrete jump when animation is disabled or degenerate. This and
// the tick handler are the only paths that talk to the platform about frames.
func (e *Engine) applyChanges(changed []*strip.Window) {
	now := e.now()
	for _, w := range changed {
		if e.sched.Set(w.ID, w.Frame, w.Target, now) {
			continue
		}
		w.Frame = w.Target
		if err := e.backend.SetWindowFrame(w.ID, frameToRect(w.Target)); err != nil {
			e.logger.Warn("platform set frame failed", "window", w.ID, "error", err)
		}
	}
}

// Status returns a read-only snapshot, serviced inside the dispatcher loop
// so it can never observe a half-applied mutation.
func (e *Engine) Status(ctx context.Context) (StatusSnapshot, error) {
	var out StatusSnapshot
	err := e.query(ctx, func() {
		out = e.statusLocked()
	})
	return out, err
}

// ListWindows returns a snapshot of all tracked windows.
func (e *Engine) ListWindows(ctx context.Context) ([]WindowSnapshot, error) {
	var out []WindowSnapshot
	err := e.query(ctx, func() {
		out = e.windowsLocked()
	})
	return out, err
}

func (e *Engine) query(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	wrapped := func() {
		fn()
		close(done)
	}
	select {
	case e.queries <- wrapped:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StatusSnapshot summarizes engine state for IPC clients.
type StatusSnapshot struct {
	Uptime    time.Duration
	Managed   int
	Floating  int
	Processes int
	Monitors  []MonitorStatus
}

// MonitorStatus summarizes one strip.
type MonitorStatus struct {
	ID      int
	Name    string
	Columns int
	Windows int
	Scroll  float64
}

// WindowSnapshot summarizes one tracked window.
type WindowSnapshot struct {
	ID      platform.WindowID
	PID     int
	App     string
	Monitor int
	Managed bool
	Focused bool
	Frame   strip.Frame
}

func (e *Engine) statusLocked() StatusSnapshot {
	out := StatusSnapshot{
		Uptime:    time.Since(e.started),
		Processes: e.registry.Len(),
	}
	for _, w := range e.model.Windows() {
		if e.model.Managed(w.ID) {
			out.Managed++
		} else {
			out.Floating++
		}
	}
	for _, s := range e.model.Strips() {
		ms := MonitorStatus{
			ID:      s.MonitorID(),
			Name:    e.monitorNames[s.MonitorID()],
			Columns: len(s.Columns()),
			Scroll:  s.Scroll(),
		}
		for _, col := range s.Columns() {
			ms.Windows += len(col.Windows())
		}
		out.Monitors = append(out.Monitors, ms)
	}
	return out
}

func (e *Engine) windowsLocked() []WindowSnapshot {
	var out []WindowSnapshot
	for _, w := range e.model.Windows() {
		ws := WindowSnapshot{
			ID:      w.ID,
			PID:     w.PID,
			App:     w.App,
			Managed: e.model.Managed(w.ID),
			Focused: e.model.Focus() == w.ID,
			Frame:   w.Frame,
		}
		if monitor, ok := e.model.MonitorOf(w.ID); ok {
			ws.Monitor = monitor
		}
		out = append(out, ws)
	}
	return out
}

func rectToFrame(r platform.Rect) strip.Frame {
	return strip.Frame{X: float64(r.X), Y: float64(r.Y), W: float64(r.Width), H: float64(r.Height)}
}

func frameToRect(f strip.Frame) platform.Rect {
	return platform.Rect{
		X:      int(math.Round(f.X)),
		Y:      int(math.Round(f.Y)),
		Width:  int(math.Round(f.W)),
		Height: int(math.Round(f.H)),
	}
}

// errNoFocus is returned by command handlers that need a focused window.
var errNoFocus = fmt.Errorf("no focused window")
