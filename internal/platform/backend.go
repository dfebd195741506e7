package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display and its usable work area.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
	Usable Rect
}

// Window contains metadata and geometry for a top-level window.
type Window struct {
	ID     WindowID
	PID    int
	AppID  string
	Title  string
	Bounds Rect
}

// Backend abstracts window-system operations across platforms. All calls are
// best-effort: window servers drop or reorder requests under load, so a failed
// query or move is reported to the caller but never treated as fatal.
type Backend interface {
	Displays() ([]Display, error)
	ActiveDisplay() (Display, error)
	ActiveWindow() (WindowID, error)
	ListWindows() ([]Window, error)
	WindowFrame(windowID WindowID) (Rect, error)
	SetWindowFrame(windowID WindowID, bounds Rect) error
	RaiseWindow(windowID WindowID) error
	FocusWindow(windowID WindowID) error
}
