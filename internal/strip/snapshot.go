package strip

import (
	"fmt"

	"github.com/stripwm/stripwm/internal/platform"
)

// Snapshot is a deep copy of the model taken before a mutation, used to roll
// back when a defensive invariant check fails afterwards.
type Snapshot struct {
	gap      float64
	strips   []*Strip
	windows  map[platform.WindowID]*Window
	columnOf map[platform.WindowID]*Column
	focus    platform.WindowID
}

// Snapshot captures the full model state.
func (m *Model) Snapshot() *Snapshot {
	snap := &Snapshot{
		gap:      m.gap,
		windows:  make(map[platform.WindowID]*Window, len(m.windows)),
		columnOf: make(map[platform.WindowID]*Column, len(m.columnOf)),
		focus:    m.focus,
	}
	for id, w := range m.windows {
		copied := *w
		snap.windows[id] = &copied
	}
	for _, s := range m.strips {
		dup := &Strip{monitorID: s.monitorID, bounds: s.bounds, scroll: s.scroll}
		for _, col := range s.columns {
			dupCol := &Column{width: col.width, ratio: col.ratio}
			for _, w := range col.windows {
				dupCol.windows = append(dupCol.windows, snap.windows[w.ID])
				snap.columnOf[w.ID] = dupCol
			}
			dup.columns = append(dup.columns, dupCol)
		}
		snap.strips = append(snap.strips, dup)
	}
	return snap
}

// Restore replaces the model state with the snapshot's.
func (m *Model) Restore(snap *Snapshot) {
	m.gap = snap.gap
	m.strips = snap.strips
	m.windows = snap.windows
	m.columnOf = snap.columnOf
	m.focus = snap.focus
}

// Validate runs the defensive invariant checks. A failure here means a
// mutator bug: the caller rolls back to the last snapshot rather than
// continuing with a corrupted layout.
func (m *Model) Validate() error {
	seen := make(map[platform.WindowID]struct{})
	for _, s := range m.strips {
		for i, col := range s.columns {
			if len(col.windows) == 0 {
				return fmt.Errorf("invariant violation: empty column %d on monitor %d", i, s.monitorID)
			}
			if col.width <= 0 {
				return fmt.Errorf("invariant violation: column %d on monitor %d has width %v", i, s.monitorID, col.width)
			}
			for _, w := range col.windows {
				if _, dup := seen[w.ID]; dup {
					return fmt.Errorf("invariant violation: window %d appears in two columns", w.ID)
				}
				seen[w.ID] = struct{}{}
				if m.columnOf[w.ID] != col {
					return fmt.Errorf("invariant violation: window %d column index desynced", w.ID)
				}
				if _, ok := m.windows[w.ID]; !ok {
					return fmt.Errorf("invariant violation: window %d in a column but untracked", w.ID)
				}
			}
		}
	}
	for id := range m.columnOf {
		if _, ok := seen[id]; !ok {
			return fmt.Errorf("invariant violation: window %d mapped to a column not in any strip", id)
		}
	}
	if m.focus != 0 {
		if _, ok := m.windows[m.focus]; !ok {
			return fmt.Errorf("invariant violation: focused window %d untracked", m.focus)
		}
	}
	return nil
}
