package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// ClientWindow is one entry from the EWMH client list with the properties
// the daemon cares about.
type ClientWindow struct {
	ID     xproto.Window
	PID    int
	Class  string
	Title  string
	X      int
	Y      int
	Width  int
	Height int
}

// ListClientWindows returns every normal application window currently known
// to the window manager. Docks, desktops and splash screens are filtered out.
func (c *Connection) ListClientWindows() ([]ClientWindow, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, err
	}

	var windows []ClientWindow
	for _, id := range clients {
		if !c.IsNormalWindow(id) {
			continue
		}
		windows = append(windows, c.clientWindow(id))
	}
	return windows, nil
}

// GetClientWindow returns the properties of one window.
func (c *Connection) GetClientWindow(id xproto.Window) (ClientWindow, error) {
	if _, err := xproto.GetWindowAttributes(c.XUtil.Conn(), id).Reply(); err != nil {
		return ClientWindow{}, err
	}
	return c.clientWindow(id), nil
}

func (c *Connection) clientWindow(id xproto.Window) ClientWindow {
	w := ClientWindow{ID: id}

	if pid, err := ewmh.WmPidGet(c.XUtil, id); err == nil {
		w.PID = int(pid)
	}
	if class, err := icccm.WmClassGet(c.XUtil, id); err == nil {
		w.Class = class.Class
	}
	if title, err := ewmh.WmNameGet(c.XUtil, id); err == nil {
		w.Title = title
	}
	if x, y, width, height, err := c.WindowGeometry(id); err == nil {
		w.X, w.Y, w.Width, w.Height = x, y, width, height
	}
	return w
}

// WindowGeometry returns a window's root-relative geometry.
func (c *Connection) WindowGeometry(id xproto.Window) (x, y, width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(id)).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), id, c.Root, 0, 0).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return int(translate.DstX), int(translate.DstY), int(geom.Width), int(geom.Height), nil
}

// MoveResizeWindow moves and resizes a window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	// Maximized windows ignore configure requests until unmaximized.
	c.unmaximizeWindow(windowID)

	win := xwindow.New(c.XUtil, windowID)

	// Use EWMH MoveResize for better WM compatibility
	err := ewmh.MoveresizeWindow(
		c.XUtil,
		windowID,
		x, y, width, height,
	)
	if err != nil {
		// Fallback to direct window manipulation
		win.MoveResize(x, y, width, height)
	}

	return nil
}

// unmaximizeWindow removes maximized state from a window
func (c *Connection) unmaximizeWindow(windowID xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return err
	}

	for _, state := range states {
		if state == "_NET_WM_STATE_MAXIMIZED_HORZ" || state == "_NET_WM_STATE_MAXIMIZED_VERT" {
			ewmh.WmStateReq(c.XUtil, windowID, 0, state)
		}
	}

	return nil
}

// RaiseWindow brings a window to the top of the stacking order.
func (c *Connection) RaiseWindow(windowID xproto.Window) error {
	return xproto.ConfigureWindowChecked(
		c.XUtil.Conn(),
		windowID,
		xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove},
	).Check()
}

// FocusWindow asks the window manager to activate a window.
func (c *Connection) FocusWindow(windowID xproto.Window) error {
	return ewmh.ActiveWindowReq(c.XUtil, windowID)
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		// Reject desktop, dock, splash, etc.
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" ||
			t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" ||
			t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}

func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}
