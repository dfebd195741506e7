package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/stripwm/stripwm/internal/platform"
)

// Backend implements platform.Backend on top of an X11 connection.
type Backend struct {
	conn *Connection
}

// NewBackend wraps an established connection.
func NewBackend(conn *Connection) *Backend {
	return &Backend{conn: conn}
}

func (b *Backend) Displays() ([]platform.Display, error) {
	monitors, err := b.conn.GetMonitors()
	if err != nil {
		return nil, err
	}
	displays := make([]platform.Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, platform.Display{
			ID:     m.ID,
			Name:   m.Name,
			Bounds: platform.Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height},
			Usable: platform.Rect{X: m.UsableX, Y: m.UsableY, Width: m.UsableWidth, Height: m.UsableHeight},
		})
	}
	return displays, nil
}

func (b *Backend) ActiveDisplay() (platform.Display, error) {
	mon, err := b.conn.GetActiveMonitor()
	if err != nil {
		return platform.Display{}, err
	}
	return platform.Display{
		ID:     mon.ID,
		Name:   mon.Name,
		Bounds: platform.Rect{X: mon.X, Y: mon.Y, Width: mon.Width, Height: mon.Height},
		Usable: platform.Rect{X: mon.UsableX, Y: mon.UsableY, Width: mon.UsableWidth, Height: mon.UsableHeight},
	}, nil
}

func (b *Backend) ActiveWindow() (platform.WindowID, error) {
	id, err := b.conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	return platform.WindowID(id), nil
}

func (b *Backend) ListWindows() ([]platform.Window, error) {
	clients, err := b.conn.ListClientWindows()
	if err != nil {
		return nil, err
	}
	windows := make([]platform.Window, 0, len(clients))
	for _, c := range clients {
		windows = append(windows, clientToWindow(c))
	}
	return windows, nil
}

func (b *Backend) WindowFrame(id platform.WindowID) (platform.Rect, error) {
	x, y, w, h, err := b.conn.WindowGeometry(xproto.Window(id))
	if err != nil {
		return platform.Rect{}, fmt.Errorf("window %d geometry: %w", id, err)
	}
	return platform.Rect{X: x, Y: y, Width: w, Height: h}, nil
}

func (b *Backend) SetWindowFrame(id platform.WindowID, frame platform.Rect) error {
	return b.conn.MoveResizeWindow(xproto.Window(id), frame.X, frame.Y, frame.Width, frame.Height)
}

func (b *Backend) RaiseWindow(id platform.WindowID) error {
	return b.conn.RaiseWindow(xproto.Window(id))
}

func (b *Backend) FocusWindow(id platform.WindowID) error {
	return b.conn.FocusWindow(xproto.Window(id))
}

func windowID(w xproto.Window) platform.WindowID {
	return platform.WindowID(w)
}

func clientToWindow(c ClientWindow) platform.Window {
	return platform.Window{
		ID:     platform.WindowID(c.ID),
		PID:    c.PID,
		AppID:  c.Class,
		Title:  c.Title,
		Bounds: platform.Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height},
	}
}
