package x11

import (
	"context"
	"log/slog"
	"time"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/stripwm/stripwm/internal/event"
)

const pointerPollInterval = 100 * time.Millisecond

// Bridge translates X11 events into pipeline events. Created/destroyed
// windows are detected by diffing _NET_CLIENT_LIST rather than from raw
// CreateNotify, so only mapped client windows with real properties ever
// reach the engine.
type Bridge struct {
	conn   *Connection
	logger *slog.Logger
	emit   func(event.Event)

	known           map[xproto.Window]bool
	lastFocus       xproto.Window
	netClientList   xproto.Atom
	netActiveWindow xproto.Atom
}

// NewBridge creates a bridge that forwards events through emit.
func NewBridge(conn *Connection, logger *slog.Logger, emit func(event.Event)) *Bridge {
	return &Bridge{
		conn:   conn,
		logger: logger,
		emit:   emit,
		known:  make(map[xproto.Window]bool),
	}
}

// Subscribe registers all X event listeners. Call before the event loop
// starts.
func (b *Bridge) Subscribe() error {
	xu := b.conn.XUtil

	var err error
	if b.netClientList, err = xprop.Atm(xu, "_NET_CLIENT_LIST"); err != nil {
		return err
	}
	if b.netActiveWindow, err = xprop.Atm(xu, "_NET_ACTIVE_WINDOW"); err != nil {
		return err
	}

	root := xwindow.New(xu, b.conn.Root)
	if err := root.Listen(xproto.EventMaskPropertyChange | xproto.EventMaskSubstructureNotify); err != nil {
		return err
	}

	if err := b.conn.SubscribeScreenChanges(); err != nil {
		b.logger.Warn("randr subscription failed, display changes will not be tracked", "error", err)
	}

	// Seed the known set so the first client list diff only reports real
	// changes.
	if clients, err := ewmh.ClientListGet(xu); err == nil {
		for _, id := range clients {
			b.known[id] = true
		}
	}

	xevent.PropertyNotifyFun(b.onProperty).Connect(xu, b.conn.Root)
	xevent.ConfigureNotifyFun(b.onConfigure).Connect(xu, b.conn.Root)

	// RandR events are extension events without a typed xevent callback.
	xevent.HookFun(func(xu *xgbutil.XUtil, ev interface{}) bool {
		switch ev.(type) {
		case randr.ScreenChangeNotifyEvent, randr.NotifyEvent:
			b.emit(event.DisplaysChanged{})
			return false
		}
		return true
	}).Connect(xu)

	return nil
}

// RunPointerPoll emits MouseMoved events while the pointer travels. Global
// motion events would require a grab, so the pointer is sampled instead.
func (b *Bridge) RunPointerPoll(ctx context.Context) error {
	ticker := time.NewTicker(pointerPollInterval)
	defer ticker.Stop()

	var lastX, lastY int
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			pointer, err := xproto.QueryPointer(b.conn.XUtil.Conn(), b.conn.Root).Reply()
			if err != nil {
				continue
			}
			x, y := int(pointer.RootX), int(pointer.RootY)
			if x == lastX && y == lastY {
				continue
			}
			lastX, lastY = x, y
			b.emit(event.MouseMoved{X: x, Y: y})
		}
	}
}

func (b *Bridge) onProperty(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
	switch ev.Atom {
	case b.netClientList:
		b.diffClientList(xu)
	case b.netActiveWindow:
		active, err := ewmh.ActiveWindowGet(xu)
		if err != nil || active == 0 || active == b.lastFocus {
			return
		}
		b.lastFocus = active
		b.emit(event.WindowFocused{ID: windowID(active)})
	}
}

func (b *Bridge) onConfigure(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
	if !b.known[ev.Window] {
		return
	}
	b.emit(event.WindowMoved{ID: windowID(ev.Window)})
}

// diffClientList compares the WM's client list against the known set and
// emits created/destroyed events for the difference.
func (b *Bridge) diffClientList(xu *xgbutil.XUtil) {
	clients, err := ewmh.ClientListGet(xu)
	if err != nil {
		b.logger.Debug("client list query failed", "error", err)
		return
	}

	current := make(map[xproto.Window]bool, len(clients))
	for _, id := range clients {
		current[id] = true
		if b.known[id] {
			continue
		}
		b.known[id] = true
		if !b.conn.IsNormalWindow(id) {
			continue
		}
		w := b.conn.clientWindow(id)
		b.emit(event.WindowCreated{Window: clientToWindow(w)})
	}

	for id := range b.known {
		if !current[id] {
			delete(b.known, id)
			b.emit(event.WindowDestroyed{ID: windowID(id)})
		}
	}
}
