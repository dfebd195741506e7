// Package strip implements the spatial model of the window manager: one
// horizontally scrolling strip of columns per monitor, with windows stacked
// inside columns. The model is pure data plus invariant-preserving mutators;
// it is owned by the engine's single consumer goroutine and therefore needs
// no internal locking. Every mutator returns the set of windows whose target
// frame changed, which is the handoff to the animation scheduler — the model
// never talks to the platform.
package strip

import (
	"errors"
	"fmt"

	"github.com/stripwm/stripwm/internal/platform"
)

// ErrUnknownWindow marks an operation referring to a window id the model does
// not track. Callers treat it as already-removed, not as a failure.
var ErrUnknownWindow = errors.New("unknown window")

// Direction selects a neighbor or an edge position within a strip.
type Direction int

const (
	West Direction = iota
	East
	North
	South
	First
	Last
)

// Model tracks every known window across all monitors. Managed windows live
// in exactly one column; floating windows are tracked but excluded from the
// strips entirely and keep whatever frame the OS assigns.
type Model struct {
	gap      float64
	strips   []*Strip
	windows  map[platform.WindowID]*Window
	columnOf map[platform.WindowID]*Column
	focus    platform.WindowID
}

// New creates an empty model with the given inter-column gap.
func New(gap float64) *Model {
	return &Model{
		gap:      gap,
		windows:  make(map[platform.WindowID]*Window),
		columnOf: make(map[platform.WindowID]*Column),
	}
}

// SetGap changes the inter-column gap and recomputes all targets.
func (m *Model) SetGap(gap float64) []*Window {
	m.gap = gap
	return m.relayout()
}

// AddMonitor registers a display or updates its usable bounds.
func (m *Model) AddMonitor(id int, usable Frame) []*Window {
	for _, s := range m.strips {
		if s.monitorID == id {
			s.bounds = usable
			return m.relayout()
		}
	}
	m.strips = append(m.strips, &Strip{monitorID: id, bounds: usable})
	return nil
}

// RemoveMonitor reassigns the removed display's columns to the nearest
// remaining monitor, appended after its columns in order, with widths
// recomputed from their ratios. Windows are never lost; removing the last
// monitor is a no-op.
func (m *Model) RemoveMonitor(id int) []*Window {
	index := -1
	for i, s := range m.strips {
		if s.monitorID == id {
			index = i
			break
		}
	}
	if index < 0 || len(m.strips) == 1 {
		return nil
	}

	removed := m.strips[index]
	m.strips = append(m.strips[:index], m.strips[index+1:]...)
	target := m.strips[0]
	if index > 0 {
		target = m.strips[index-1]
	}

	for _, col := range removed.columns {
		col.width = col.ratio * target.bounds.W
		target.columns = append(target.columns, col)
	}
	return m.relayout()
}

// Strips returns the per-monitor strips in registration order.
func (m *Model) Strips() []*Strip {
	return m.strips
}

// Track registers a window as floating. Tracking an already known id only
// refreshes its metadata.
func (m *Model) Track(id platform.WindowID, pid int, app string, frame Frame) *Window {
	if w, ok := m.windows[id]; ok {
		w.PID = pid
		w.App = app
		return w
	}
	w := &Window{ID: id, PID: pid, App: app, Frame: frame, Target: frame}
	m.windows[id] = w
	return w
}

// Window returns a tracked window by id.
func (m *Model) Window(id platform.WindowID) (*Window, bool) {
	w, ok := m.windows[id]
	return w, ok
}

// Windows returns all tracked windows in unspecified order.
func (m *Model) Windows() []*Window {
	out := make([]*Window, 0, len(m.windows))
	for _, w := range m.windows {
		out = append(out, w)
	}
	return out
}

// Managed reports whether the window occupies a column.
func (m *Model) Managed(id platform.WindowID) bool {
	_, ok := m.columnOf[id]
	return ok
}

// Focus returns the focused window id, or 0 when nothing is focused.
func (m *Model) Focus() platform.WindowID {
	return m.focus
}

// SetFocus moves logical focus. Focusing a managed window scrolls its strip
// the minimum amount needed to make its column fully visible.
func (m *Model) SetFocus(id platform.WindowID) ([]*Window, error) {
	if id == 0 {
		m.focus = 0
		return nil, nil
	}
	if _, ok := m.windows[id]; !ok {
		return nil, fmt.Errorf("focus: %w", errUnknown(id))
	}
	m.focus = id
	if s, col := m.locate(id); s != nil {
		s.ensureVisible(s.columnIndexOf(col), m.gap)
	}
	return m.relayout(), nil
}

// InsertWindow moves a floating window into the strip of monitorID: a new
// column immediately east of the focused column (east edge when focus is
// elsewhere), at width ratio × monitor width. It only extends the ordered
// column sequence — no sibling width is ever touched.
func (m *Model) InsertWindow(id platform.WindowID, monitorID int, ratio float64) ([]*Window, error) {
	w, ok := m.windows[id]
	if !ok {
		return nil, fmt.Errorf("insert: %w", errUnknown(id))
	}
	if _, managed := m.columnOf[id]; managed {
		return nil, fmt.Errorf("insert: window %d already managed", id)
	}
	s := m.stripFor(monitorID)
	if s == nil {
		return nil, fmt.Errorf("insert: unknown monitor %d", monitorID)
	}

	index := len(s.columns)
	if fs, fcol := m.locate(m.focus); fs == s {
		index = s.columnIndexOf(fcol) + 1
	}

	col := &Column{windows: []*Window{w}, width: ratio * s.bounds.W, ratio: ratio}
	s.insertColumn(index, col)
	s.compensate(s.offset(index, m.gap)+col.width, col.width+m.gap)
	m.columnOf[id] = col
	return m.relayout(), nil
}

// RemoveWindow forgets a window entirely. A column left empty is removed from
// the sequence, never kept as a placeholder. Removing an unknown id is a
// no-op: destroy notifications race with process termination.
func (m *Model) RemoveWindow(id platform.WindowID) []*Window {
	if _, ok := m.windows[id]; !ok {
		return nil
	}
	changed := m.detach(id)
	delete(m.windows, id)
	if m.focus == id {
		m.focus = 0
	}
	return changed
}

// Unmanage removes the window from its column but keeps tracking it as
// floating at its last computed frame.
func (m *Model) Unmanage(id platform.WindowID) []*Window {
	w, ok := m.windows[id]
	if !ok {
		return nil
	}
	changed := m.detach(id)
	w.Target = w.Frame
	return changed
}

// detach pulls a window out of its column, dropping the column when it
// becomes empty, with scroll compensation for changes west of the viewport.
func (m *Model) detach(id platform.WindowID) []*Window {
	s, col := m.locate(id)
	if s == nil {
		return nil
	}
	delete(m.columnOf, id)
	col.remove(id)
	if len(col.windows) > 0 {
		return m.relayout()
	}
	index := s.columnIndexOf(col)
	right := s.offset(index, m.gap) + col.width
	s.removeColumn(index)
	s.compensate(right, -(col.width + m.gap))
	return m.relayout()
}

// ResizeColumn sets the width of the window's column to ratio × monitor
// width. Sibling widths are untouched; the strip as a whole simply grows or
// shrinks.
func (m *Model) ResizeColumn(id platform.WindowID, ratio float64) ([]*Window, error) {
	s, col := m.locate(id)
	if s == nil {
		return nil, fmt.Errorf("resize: %w", errUnknown(id))
	}
	index := s.columnIndexOf(col)
	right := s.offset(index, m.gap) + col.width
	delta := ratio*s.bounds.W - col.width
	col.width = ratio * s.bounds.W
	col.ratio = ratio
	s.compensate(right, delta)
	if m.focus != 0 {
		if fs, fcol := m.locate(m.focus); fs == s {
			s.ensureVisible(s.columnIndexOf(fcol), m.gap)
		}
	}
	return m.relayout(), nil
}

// NextPresetRatio cycles to the preset after the column's current ratio: the
// first preset strictly greater than it, wrapping to the smallest.
func (m *Model) NextPresetRatio(id platform.WindowID, presets []float64) float64 {
	if len(presets) == 0 {
		return 0.5
	}
	_, col := m.locate(id)
	if col == nil {
		return presets[0]
	}
	for _, p := range presets {
		if p > col.ratio+1e-9 {
			return p
		}
	}
	return presets[0]
}

// MoveColumn reorders the window's column within its strip. West/East
// exchange with the adjacent column; First/Last rotate the column to the
// strip edge, preserving the relative order of the others. Widths never
// change: this is a pure reorder. The moved column is kept visible.
func (m *Model) MoveColumn(id platform.WindowID, dir Direction) ([]*Window, error) {
	s, col := m.locate(id)
	if s == nil {
		return nil, fmt.Errorf("move: %w", errUnknown(id))
	}
	from := s.columnIndexOf(col)
	to := from
	switch dir {
	case West:
		if from > 0 {
			to = from - 1
		}
	case East:
		if from < len(s.columns)-1 {
			to = from + 1
		}
	case First:
		to = 0
	case Last:
		to = len(s.columns) - 1
	default:
		return nil, fmt.Errorf("move: direction must be horizontal")
	}
	if to == from {
		return nil, nil
	}
	s.rotateColumn(from, to)
	s.ensureVisible(to, m.gap)
	return m.relayout(), nil
}

// Stack moves the window into the adjacent column in dir, appending it to
// that column's stack. Every window in the target column receives an equal
// height share. A no-op at the strip edge.
func (m *Model) Stack(id platform.WindowID, dir Direction) ([]*Window, error) {
	s, col := m.locate(id)
	if s == nil {
		return nil, fmt.Errorf("stack: %w", errUnknown(id))
	}
	index := s.columnIndexOf(col)
	var target int
	switch dir {
	case West:
		target = index - 1
	case East:
		target = index + 1
	default:
		return nil, fmt.Errorf("stack: direction must be west or east")
	}
	if target < 0 || target >= len(s.columns) {
		return nil, nil
	}

	dst := s.columns[target]
	m.detach(id)
	w := m.windows[id]
	dst.windows = append(dst.windows, w)
	m.columnOf[id] = dst
	return m.relayout(), nil
}

// Unstack extracts the window from a shared column into its own new column
// immediately east, inheriting the source column's width. A no-op when the
// window is already the sole occupant.
func (m *Model) Unstack(id platform.WindowID) ([]*Window, error) {
	s, col := m.locate(id)
	if s == nil {
		return nil, fmt.Errorf("unstack: %w", errUnknown(id))
	}
	if len(col.windows) == 1 {
		return nil, nil
	}
	w := col.remove(id)
	fresh := &Column{windows: []*Window{w}, width: col.width, ratio: col.ratio}
	index := s.columnIndexOf(col) + 1
	s.insertColumn(index, fresh)
	s.compensate(s.offset(index, m.gap)+fresh.width, fresh.width+m.gap)
	m.columnOf[id] = fresh
	return m.relayout(), nil
}

// ScrollBy is an explicit viewport jump by delta pixels (negative = west).
// The scroll offset is clamped so the viewport never detaches entirely from
// the strip's content span.
func (m *Model) ScrollBy(monitorID int, delta float64) []*Window {
	s := m.stripFor(monitorID)
	if s == nil || len(s.columns) == 0 {
		return nil
	}
	total := s.offset(len(s.columns)-1, m.gap) + s.columns[len(s.columns)-1].width
	s.scroll += delta
	if s.scroll > total-s.bounds.W {
		s.scroll = total - s.bounds.W
	}
	if s.scroll < 0 {
		s.scroll = 0
	}
	return m.relayout()
}

// Neighbor resolves directional focus. West/East select the adjacent column
// (the window at the same stack depth, clamped); North/South move within the
// stack. First/Last select the strip edges. The second return is false at an
// edge: focus never wraps and never crosses monitors.
func (m *Model) Neighbor(id platform.WindowID, dir Direction) (platform.WindowID, bool) {
	s, col := m.locate(id)
	if s == nil {
		return 0, false
	}
	colIndex := s.columnIndexOf(col)
	winIndex := col.indexOf(id)

	pick := func(c *Column) platform.WindowID {
		i := winIndex
		if i >= len(c.windows) {
			i = len(c.windows) - 1
		}
		return c.windows[i].ID
	}

	switch dir {
	case West:
		if colIndex == 0 {
			return 0, false
		}
		return pick(s.columns[colIndex-1]), true
	case East:
		if colIndex == len(s.columns)-1 {
			return 0, false
		}
		return pick(s.columns[colIndex+1]), true
	case North:
		if winIndex == 0 {
			return 0, false
		}
		return col.windows[winIndex-1].ID, true
	case South:
		if winIndex == len(col.windows)-1 {
			return 0, false
		}
		return col.windows[winIndex+1].ID, true
	case First:
		if colIndex == 0 {
			return 0, false
		}
		return pick(s.columns[0]), true
	case Last:
		if colIndex == len(s.columns)-1 {
			return 0, false
		}
		return pick(s.columns[len(s.columns)-1]), true
	}
	return 0, false
}

// CenterTarget computes a frame for the window sized as-is but horizontally
// centered in its monitor's visible viewport. No other window is affected:
// centering is a one-off frame intent, not a structural mutation.
func (m *Model) CenterTarget(id platform.WindowID) (Frame, bool) {
	w, ok := m.windows[id]
	if !ok {
		return Frame{}, false
	}
	s, _ := m.locate(id)
	if s == nil {
		// Floating: center within the monitor containing the frame.
		for _, cand := range m.strips {
			if cand.bounds.Contains(w.Frame.X+w.Frame.W/2, w.Frame.Y+w.Frame.H/2) {
				s = cand
				break
			}
		}
		if s == nil && len(m.strips) > 0 {
			s = m.strips[0]
		}
		if s == nil {
			return Frame{}, false
		}
	}
	f := w.Target
	f.X = s.bounds.X + (s.bounds.W-f.W)/2
	return f, true
}

// WindowAt returns the managed window whose target frame contains the point.
func (m *Model) WindowAt(x, y float64) (platform.WindowID, bool) {
	for _, s := range m.strips {
		for _, col := range s.columns {
			for _, w := range col.windows {
				if w.Target.Contains(x, y) {
					return w.ID, true
				}
			}
		}
	}
	return 0, false
}

// MonitorOf returns the monitor id owning the window's column.
func (m *Model) MonitorOf(id platform.WindowID) (int, bool) {
	s, _ := m.locate(id)
	if s == nil {
		return 0, false
	}
	return s.monitorID, true
}

func (m *Model) stripFor(monitorID int) *Strip {
	for _, s := range m.strips {
		if s.monitorID == monitorID {
			return s
		}
	}
	return nil
}

func (m *Model) locate(id platform.WindowID) (*Strip, *Column) {
	col, ok := m.columnOf[id]
	if !ok {
		return nil, nil
	}
	for _, s := range m.strips {
		if s.columnIndexOf(col) >= 0 {
			return s, col
		}
	}
	return nil, nil
}

// relayout recomputes every managed window's target frame from the derived
// column offsets and returns the windows whose target changed.
func (m *Model) relayout() []*Window {
	var changed []*Window
	for _, s := range m.strips {
		for i, col := range s.columns {
			x := s.bounds.X + s.offset(i, m.gap) - s.scroll
			share := col.width
			count := float64(len(col.windows))
			height := s.bounds.H / count
			for j, w := range col.windows {
				target := Frame{X: x, Y: s.bounds.Y + float64(j)*height, W: share, H: height}
				if w.Target != target {
					w.Target = target
					changed = append(changed, w)
				}
			}
		}
	}
	return changed
}

func errUnknown(id platform.WindowID) error {
	return fmt.Errorf("window %d: %w", id, ErrUnknownWindow)
}
