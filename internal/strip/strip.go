package strip

// Strip is the horizontally infinite arrangement of columns belonging to one
// monitor. scroll is the strip x-coordinate aligned with the left edge of the
// monitor's usable area; it only changes to reveal the focused column, to
// compensate a mutation west of the viewport, or on an explicit jump.
type Strip struct {
	monitorID int
	bounds    Frame
	columns   []*Column
	scroll    float64
}

// MonitorID returns the owning monitor's stable display id.
func (s *Strip) MonitorID() int {
	return s.monitorID
}

// Bounds returns the monitor's usable area.
func (s *Strip) Bounds() Frame {
	return s.bounds
}

// Columns returns the ordered column list, west to east.
func (s *Strip) Columns() []*Column {
	return s.columns
}

// Scroll returns the current scroll offset.
func (s *Strip) Scroll() float64 {
	return s.scroll
}

// offset returns the derived strip x-coordinate of column index: the sum of
// all preceding widths plus gaps. Never stored, always recomputed.
func (s *Strip) offset(index int, gap float64) float64 {
	x := 0.0
	for i := 0; i < index && i < len(s.columns); i++ {
		x += s.columns[i].width + gap
	}
	return x
}

func (s *Strip) columnIndexOf(col *Column) int {
	for i, c := range s.columns {
		if c == col {
			return i
		}
	}
	return -1
}

// ensureVisible scrolls the minimum amount needed to bring column index fully
// into the viewport. Columns wider than the viewport align to its left edge.
func (s *Strip) ensureVisible(index int, gap float64) {
	if index < 0 || index >= len(s.columns) {
		return
	}
	left := s.offset(index, gap)
	right := left + s.columns[index].width
	if right > s.scroll+s.bounds.W {
		s.scroll = right - s.bounds.W
	}
	if left < s.scroll {
		s.scroll = left
	}
}

// compensate shifts the scroll offset by delta when a structural change of
// that size happened entirely west of the viewport, so visible windows do not
// appear to move. changeRight is the strip x-coordinate of the eastern edge
// of the inserted/removed span, measured before the viewport would shift.
func (s *Strip) compensate(changeRight, delta float64) {
	if changeRight <= s.scroll {
		s.scroll += delta
	}
}

// insertColumn places col at index, keeping order of the rest.
func (s *Strip) insertColumn(index int, col *Column) {
	if index < 0 {
		index = 0
	}
	if index > len(s.columns) {
		index = len(s.columns)
	}
	s.columns = append(s.columns, nil)
	copy(s.columns[index+1:], s.columns[index:])
	s.columns[index] = col
}

// removeColumn drops the column at index.
func (s *Strip) removeColumn(index int) {
	s.columns = append(s.columns[:index], s.columns[index+1:]...)
}

// rotateColumn moves the column at from to position to, preserving the
// relative order of all other columns.
func (s *Strip) rotateColumn(from, to int) {
	if from == to {
		return
	}
	if from < to {
		for i := from; i < to; i++ {
			s.columns[i], s.columns[i+1] = s.columns[i+1], s.columns[i]
		}
		return
	}
	for i := from; i > to; i-- {
		s.columns[i], s.columns[i-1] = s.columns[i-1], s.columns[i]
	}
}
