// Package event defines the typed events consumed by the engine dispatcher.
// Producers (the platform bridge, the animation ticker, the IPC command
// source, the config watcher) only construct these values and enqueue them;
// all handling happens on the single consumer goroutine.
package event

import (
	"time"

	"github.com/stripwm/stripwm/internal/config"
	"github.com/stripwm/stripwm/internal/platform"
)

// Kind identifies an event variant for routing and logging.
type Kind string

const (
	KindAppLaunched      Kind = "app_launched"
	KindAppTerminated    Kind = "app_terminated"
	KindAppFrontSwitched Kind = "app_front_switched"
	KindWindowCreated    Kind = "window_created"
	KindWindowDestroyed  Kind = "window_destroyed"
	KindWindowFocused    Kind = "window_focused"
	KindWindowMoved      Kind = "window_moved"
	KindWindowResized    Kind = "window_resized"
	KindMouseMoved       Kind = "mouse_moved"
	KindSwipe            Kind = "swipe"
	KindDisplaysChanged  Kind = "displays_changed"
	KindDisplayRemoved   Kind = "display_removed"
	KindTick             Kind = "tick"
	KindCommand          Kind = "command"
	KindConfigReloaded   Kind = "config_reloaded"
	KindWindowsLoaded    Kind = "windows_loaded"
	KindQuit             Kind = "quit"
)

// Event is the closed set of inputs the dispatcher accepts.
type Event interface {
	Kind() Kind
}

// AppLaunched reports a newly observed application.
type AppLaunched struct {
	PID  int
	Name string
}

// AppTerminated reports that an application's process has exited.
type AppTerminated struct {
	PID int
}

// AppFrontSwitched reports a change of the frontmost application.
type AppFrontSwitched struct {
	PID int
}

// WindowCreated carries the full platform snapshot of a new window.
type WindowCreated struct {
	Window platform.Window
}

// WindowDestroyed reports a window that no longer exists. The id may already
// be unknown to the model; that is not an error.
type WindowDestroyed struct {
	ID platform.WindowID
}

// WindowFocused reports an OS-side focus change.
type WindowFocused struct {
	ID platform.WindowID
}

// WindowMoved reports that a window's origin changed outside the engine.
type WindowMoved struct {
	ID platform.WindowID
}

// WindowResized reports that a window's size changed outside the engine.
type WindowResized struct {
	ID platform.WindowID
}

// MouseMoved carries the pointer position in root coordinates.
type MouseMoved struct {
	X, Y int
}

// Swipe reports a multi-touch gesture: finger count and the horizontal
// fraction of the display width travelled (negative = west).
type Swipe struct {
	Fingers int
	DeltaX  float64
}

// DisplaysChanged signals that the display arrangement changed and the
// monitor set must be re-queried.
type DisplaysChanged struct{}

// DisplayRemoved reports a display that disappeared; its strip's windows are
// reassigned, never dropped.
type DisplayRemoved struct {
	ID int
}

// Tick drives the animation scheduler. Ticks are low priority: a tick
// observed with no animation in flight is a no-op.
type Tick struct {
	At time.Time
}

// Command is a decoded user command, e.g. ["window", "focus", "west"].
type Command struct {
	Argv []string
}

// ConfigReloaded replaces the engine's options and bindings atomically. The
// carried config is already parsed and validated; a malformed file never
// produces this event.
type ConfigReloaded struct {
	Config *config.Config
}

// WindowsLoaded marks the end of the initial platform scan.
type WindowsLoaded struct{}

// Quit terminates the dispatcher loop and the process.
type Quit struct{}

func (AppLaunched) Kind() Kind      { return KindAppLaunched }
func (AppTerminated) Kind() Kind    { return KindAppTerminated }
func (AppFrontSwitched) Kind() Kind { return KindAppFrontSwitched }
func (WindowCreated) Kind() Kind    { return KindWindowCreated }
func (WindowDestroyed) Kind() Kind  { return KindWindowDestroyed }
func (WindowFocused) Kind() Kind    { return KindWindowFocused }
func (WindowMoved) Kind() Kind      { return KindWindowMoved }
func (WindowResized) Kind() Kind    { return KindWindowResized }
func (MouseMoved) Kind() Kind       { return KindMouseMoved }
func (Swipe) Kind() Kind            { return KindSwipe }
func (DisplaysChanged) Kind() Kind  { return KindDisplaysChanged }
func (DisplayRemoved) Kind() Kind   { return KindDisplayRemoved }
func (Tick) Kind() Kind             { return KindTick }
func (Command) Kind() Kind          { return KindCommand }
func (ConfigReloaded) Kind() Kind   { return KindConfigReloaded }
func (WindowsLoaded) Kind() Kind    { return KindWindowsLoaded }
func (Quit) Kind() Kind             { return KindQuit }
