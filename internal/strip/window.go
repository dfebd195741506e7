package strip

import "github.com/stripwm/stripwm/internal/platform"

// Window is a tracked top-level window. Frame is the last position actually
// applied (or reported by the OS); Target is the latest computed layout
// position. The two differ only while an animation is in flight.
type Window struct {
	ID     platform.WindowID
	PID    int
	App    string
	Frame  Frame
	Target Frame
}

// Column is a vertical layout slot holding one or more stacked windows.
// Width is the only persisted geometry; every x-offset in a strip is derived
// from the ordered column list so offsets can never desync from it.
type Column struct {
	windows []*Window
	width   float64
	ratio   float64
}

// Windows returns the stacked windows, top to bottom.
func (c *Column) Windows() []*Window {
	return c.windows
}

// Width returns the column width in pixels.
func (c *Column) Width() float64 {
	return c.width
}

// Ratio returns the width as a fraction of the monitor width.
func (c *Column) Ratio() float64 {
	return c.ratio
}

func (c *Column) indexOf(id platform.WindowID) int {
	for i, w := range c.windows {
		if w.ID == id {
			return i
		}
	}
	return -1
}

func (c *Column) remove(id platform.WindowID) *Window {
	i := c.indexOf(id)
	if i < 0 {
		return nil
	}
	w := c.windows[i]
	c.windows = append(c.windows[:i], c.windows[i+1:]...)
	return w
}
