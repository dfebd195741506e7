package strip

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stripwm/stripwm/internal/platform"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := New(0)
	m.AddMonitor(1, Frame{X: 0, Y: 0, W: 1000, H: 500})
	return m
}

func insert(t *testing.T, m *Model, id platform.WindowID, ratio float64) {
	t.Helper()
	m.Track(id, int(id)*100, "term", Frame{W: 400, H: 300})
	_, err := m.InsertWindow(id, 1, ratio)
	require.NoError(t, err)
}

func targetOf(t *testing.T, m *Model, id platform.WindowID) Frame {
	t.Helper()
	w, ok := m.Window(id)
	require.True(t, ok, "window %d not tracked", id)
	return w.Target
}

func TestInsertExtendsStripWithoutResizingSiblings(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.5)
	insert(t, m, 2, 0.5)
	insert(t, m, 3, 0.5)

	// Columns line up west to east; nothing shrank to make room.
	require.InDelta(t, 0, targetOf(t, m, 1).X, 1e-9)
	require.InDelta(t, 500, targetOf(t, m, 2).X, 1e-9)
	require.InDelta(t, 1000, targetOf(t, m, 3).X, 1e-9)
	for _, id := range []platform.WindowID{1, 2, 3} {
		require.InDelta(t, 500, targetOf(t, m, id).W, 1e-9)
		require.InDelta(t, 500, targetOf(t, m, id).H, 1e-9)
	}

	// The third column starts past the viewport edge; the strip does not
	// scroll until focus moves there.
	require.InDelta(t, 0, m.Strips()[0].Scroll(), 1e-9)
}

func TestInsertAfterFocusedColumn(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.25)
	insert(t, m, 2, 0.25)
	_, err := m.SetFocus(1)
	require.NoError(t, err)

	insert(t, m, 3, 0.25)

	// New column lands east of the focused one, not at the strip end.
	require.InDelta(t, 0, targetOf(t, m, 1).X, 1e-9)
	require.InDelta(t, 250, targetOf(t, m, 3).X, 1e-9)
	require.InDelta(t, 500, targetOf(t, m, 2).X, 1e-9)
}

func TestFocusScrollsColumnIntoView(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.5)
	insert(t, m, 2, 0.5)
	insert(t, m, 3, 0.5)

	_, err := m.SetFocus(3)
	require.NoError(t, err)

	s := m.Strips()[0]
	require.InDelta(t, 500, s.Scroll(), 1e-9)
	require.InDelta(t, 500, targetOf(t, m, 3).X, 1e-9)
	require.InDelta(t, -500, targetOf(t, m, 1).X, 1e-9)

	// Focusing back west scrolls the minimum amount.
	_, err = m.SetFocus(1)
	require.NoError(t, err)
	require.InDelta(t, 0, s.Scroll(), 1e-9)
}

func TestResizeTouchesOnlyTheResizedColumn(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.5)
	insert(t, m, 2, 0.5)
	insert(t, m, 3, 0.5)

	_, err := m.ResizeColumn(2, 0.25)
	require.NoError(t, err)

	require.InDelta(t, 500, targetOf(t, m, 1).W, 1e-9)
	require.InDelta(t, 250, targetOf(t, m, 2).W, 1e-9)
	require.InDelta(t, 500, targetOf(t, m, 3).W, 1e-9)

	// Eastern neighbors shift, they do not shrink.
	require.InDelta(t, 750, targetOf(t, m, 3).X, 1e-9)
}

func TestResizeWestOfViewportCompensatesScroll(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.5)
	insert(t, m, 2, 0.5)
	insert(t, m, 3, 0.5)
	_, err := m.SetFocus(3)
	require.NoError(t, err)

	before := targetOf(t, m, 3)

	// Column 1 sits entirely west of the scrolled viewport; resizing it must
	// not move anything on screen.
	_, err = m.ResizeColumn(1, 0.25)
	require.NoError(t, err)

	require.InDelta(t, 250, m.Strips()[0].Scroll(), 1e-9)
	require.Equal(t, before, targetOf(t, m, 3))
}

func TestRemoveWindowDropsEmptyColumn(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.5)
	insert(t, m, 2, 0.5)
	insert(t, m, 3, 0.5)
	_, err := m.SetFocus(2)
	require.NoError(t, err)

	m.RemoveWindow(2)

	require.False(t, m.Managed(2))
	_, tracked := m.Window(2)
	require.False(t, tracked)
	require.Equal(t, platform.WindowID(0), m.Focus())
	require.Len(t, m.Strips()[0].Columns(), 2)

	// Survivors keep their widths; the east column slides west.
	require.InDelta(t, 500, targetOf(t, m, 1).W, 1e-9)
	require.InDelta(t, 500, targetOf(t, m, 3).W, 1e-9)
	require.InDelta(t, 500, targetOf(t, m, 3).X, 1e-9)
}

func TestRemoveUnknownWindowIsNoop(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.5)

	require.Nil(t, m.RemoveWindow(99))
	require.Len(t, m.Strips()[0].Columns(), 1)
}

func TestStackSharesColumnHeightEqually(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.5)
	insert(t, m, 2, 0.5)
	insert(t, m, 3, 0.5)

	_, err := m.Stack(2, East)
	require.NoError(t, err)

	require.Len(t, m.Strips()[0].Columns(), 2)
	require.InDelta(t, 250, targetOf(t, m, 3).H, 1e-9)
	require.InDelta(t, 250, targetOf(t, m, 2).H, 1e-9)
	require.InDelta(t, 0, targetOf(t, m, 3).Y, 1e-9)
	require.InDelta(t, 250, targetOf(t, m, 2).Y, 1e-9)

	// Same column, same x and width.
	require.Equal(t, targetOf(t, m, 3).X, targetOf(t, m, 2).X)
	require.Equal(t, targetOf(t, m, 3).W, targetOf(t, m, 2).W)
}

func TestStackAtEdgeIsNoop(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.5)

	changed, err := m.Stack(1, West)
	require.NoError(t, err)
	require.Nil(t, changed)
	require.Len(t, m.Strips()[0].Columns(), 1)
}

func TestUnstackInheritsColumnWidth(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.5)
	insert(t, m, 2, 0.5)
	_, err := m.Stack(2, West)
	require.NoError(t, err)

	_, err = m.Unstack(2)
	require.NoError(t, err)

	cols := m.Strips()[0].Columns()
	require.Len(t, cols, 2)
	require.InDelta(t, 500, targetOf(t, m, 2).W, 1e-9)
	require.InDelta(t, 500, targetOf(t, m, 2).X, 1e-9)
	require.InDelta(t, 500, targetOf(t, m, 1).H, 1e-9)
}

func TestUnstackSoleOccupantIsNoop(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.5)

	changed, err := m.Unstack(1)
	require.NoError(t, err)
	require.Nil(t, changed)
}

func TestMoveColumnRotationPreservesOrder(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.25)
	insert(t, m, 2, 0.25)
	insert(t, m, 3, 0.25)
	insert(t, m, 4, 0.25)

	_, err := m.MoveColumn(4, First)
	require.NoError(t, err)

	order := columnOrder(m)
	require.Equal(t, []platform.WindowID{4, 1, 2, 3}, order)

	_, err = m.MoveColumn(4, Last)
	require.NoError(t, err)
	require.Equal(t, []platform.WindowID{1, 2, 3, 4}, columnOrder(m))
}

func TestMoveColumnAdjacentSwap(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.25)
	insert(t, m, 2, 0.25)

	_, err := m.MoveColumn(2, West)
	require.NoError(t, err)
	require.Equal(t, []platform.WindowID{2, 1}, columnOrder(m))

	// At the edge the move is a silent no-op.
	changed, err := m.MoveColumn(2, West)
	require.NoError(t, err)
	require.Nil(t, changed)
}

func TestNeighborNeverWraps(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.25)
	insert(t, m, 2, 0.25)
	insert(t, m, 3, 0.25)

	id, ok := m.Neighbor(1, West)
	require.False(t, ok)
	require.Equal(t, platform.WindowID(0), id)

	id, ok = m.Neighbor(1, East)
	require.True(t, ok)
	require.Equal(t, platform.WindowID(2), id)

	id, ok = m.Neighbor(1, Last)
	require.True(t, ok)
	require.Equal(t, platform.WindowID(3), id)

	_, ok = m.Neighbor(3, East)
	require.False(t, ok)
}

func TestNeighborWithinStack(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.5)
	insert(t, m, 2, 0.5)
	_, err := m.Stack(2, West)
	require.NoError(t, err)

	id, ok := m.Neighbor(1, South)
	require.True(t, ok)
	require.Equal(t, platform.WindowID(2), id)

	id, ok = m.Neighbor(2, North)
	require.True(t, ok)
	require.Equal(t, platform.WindowID(1), id)

	_, ok = m.Neighbor(1, North)
	require.False(t, ok)
}

func TestCenterTargetLeavesOthersAlone(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.5)
	insert(t, m, 2, 0.5)

	other := targetOf(t, m, 2)

	f, ok := m.CenterTarget(1)
	require.True(t, ok)
	require.InDelta(t, 250, f.X, 1e-9)
	require.InDelta(t, 500, f.W, 1e-9)

	// Centering computes a frame; it must not have moved anything.
	require.Equal(t, other, targetOf(t, m, 2))
	require.InDelta(t, 0, m.Strips()[0].Scroll(), 1e-9)
}

func TestScrollByClamps(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.5)
	insert(t, m, 2, 0.5)
	insert(t, m, 3, 0.5)

	m.ScrollBy(1, 10000)
	require.InDelta(t, 500, m.Strips()[0].Scroll(), 1e-9)

	m.ScrollBy(1, -10000)
	require.InDelta(t, 0, m.Strips()[0].Scroll(), 1e-9)
}

func TestNextPresetRatioCycles(t *testing.T) {
	presets := []float64{0.25, 0.33, 0.50, 0.66, 0.75}
	m := newTestModel(t)
	insert(t, m, 1, 0.50)

	require.InDelta(t, 0.66, m.NextPresetRatio(1, presets), 1e-9)

	_, err := m.ResizeColumn(1, 0.75)
	require.NoError(t, err)
	require.InDelta(t, 0.25, m.NextPresetRatio(1, presets), 1e-9)

	_, err = m.ResizeColumn(1, 0.40)
	require.NoError(t, err)
	require.InDelta(t, 0.50, m.NextPresetRatio(1, presets), 1e-9)
}

func TestUnmanageKeepsWindowTracked(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.5)
	insert(t, m, 2, 0.5)

	m.Unmanage(1)

	require.False(t, m.Managed(1))
	_, tracked := m.Window(1)
	require.True(t, tracked)
	require.Len(t, m.Strips()[0].Columns(), 1)
	require.InDelta(t, 0, targetOf(t, m, 2).X, 1e-9)
}

func TestRemoveMonitorReassignsColumns(t *testing.T) {
	m := New(0)
	m.AddMonitor(1, Frame{X: 0, Y: 0, W: 1000, H: 500})
	m.AddMonitor(2, Frame{X: 1000, Y: 0, W: 800, H: 600})

	m.Track(1, 100, "a", Frame{})
	_, err := m.InsertWindow(1, 1, 0.5)
	require.NoError(t, err)
	m.Track(2, 200, "b", Frame{})
	_, err = m.InsertWindow(2, 2, 0.5)
	require.NoError(t, err)

	m.RemoveMonitor(2)

	require.Len(t, m.Strips(), 1)
	monitor, ok := m.MonitorOf(2)
	require.True(t, ok)
	require.Equal(t, 1, monitor)

	// Width recomputed from the ratio against the new monitor.
	require.InDelta(t, 500, targetOf(t, m, 2).W, 1e-9)
	require.InDelta(t, 500, targetOf(t, m, 2).X, 1e-9)

	// Removing the last monitor is a no-op.
	m.RemoveMonitor(1)
	require.Len(t, m.Strips(), 1)
}

func TestSnapshotRestore(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.5)
	insert(t, m, 2, 0.5)
	_, err := m.SetFocus(2)
	require.NoError(t, err)

	snap := m.Snapshot()

	m.RemoveWindow(1)
	_, err = m.ResizeColumn(2, 0.25)
	require.NoError(t, err)

	m.Restore(snap)

	require.True(t, m.Managed(1))
	require.Equal(t, platform.WindowID(2), m.Focus())
	require.InDelta(t, 500, targetOf(t, m, 2).W, 1e-9)
	require.NoError(t, m.Validate())
}

func TestValidateCatchesCorruption(t *testing.T) {
	m := newTestModel(t)
	insert(t, m, 1, 0.5)
	require.NoError(t, m.Validate())

	// A window present in two columns violates the partition.
	w, _ := m.Window(1)
	s := m.Strips()[0]
	s.columns = append(s.columns, &Column{windows: []*Window{w}, width: 500, ratio: 0.5})
	require.Error(t, m.Validate())
}

func columnOrder(m *Model) []platform.WindowID {
	var order []platform.WindowID
	for _, col := range m.Strips()[0].Columns() {
		order = append(order, col.Windows()[0].ID)
	}
	return order
}
