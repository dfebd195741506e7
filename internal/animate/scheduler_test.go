package animate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stripwm/stripwm/internal/config"
	"github.com/stripwm/stripwm/internal/strip"
)

func TestSetStartsTaskAndTickConverges(t *testing.T) {
	s := New(1000) // px/s
	start := time.Now()

	from := strip.Frame{X: 0, Y: 0, W: 500, H: 500}
	to := strip.Frame{X: 1000, Y: 0, W: 500, H: 500}

	require.True(t, s.Set(1, from, to, start))
	require.Equal(t, 1, s.Active())

	// Distance 1000px at 1000px/s is one second; halfway through the frame
	// sits halfway between.
	mid := s.Tick(start.Add(500 * time.Millisecond))
	require.Len(t, mid, 1)
	require.False(t, mid[0].Done)
	require.InDelta(t, 500, mid[0].Frame.X, 1e-6)

	final := s.Tick(start.Add(2 * time.Second))
	require.Len(t, final, 1)
	require.True(t, final[0].Done)
	require.Equal(t, to, final[0].Frame)
	require.Equal(t, 0, s.Active())
}

func TestSupersedeContinuesFromCurrentFrame(t *testing.T) {
	s := New(1000)
	start := time.Now()

	from := strip.Frame{X: 0, W: 500, H: 500}
	to := strip.Frame{X: 1000, W: 500, H: 500}
	require.True(t, s.Set(1, from, to, start))

	halfway := start.Add(500 * time.Millisecond)
	current, ok := s.Frame(1, halfway)
	require.True(t, ok)
	require.InDelta(t, 500, current.X, 1e-6)

	// Retarget mid-flight from the interpolated position.
	back := strip.Frame{X: 0, W: 500, H: 500}
	require.True(t, s.Set(1, current, back, halfway))

	next := s.Tick(halfway.Add(250 * time.Millisecond))
	require.Len(t, next, 1)
	require.InDelta(t, 250, next[0].Frame.X, 1e-6)
}

func TestDisabledSpeedForcesDiscreteJump(t *testing.T) {
	for _, speed := range []float64{0, config.DisableAnimationSpeed} {
		s := New(speed)
		ok := s.Set(1, strip.Frame{}, strip.Frame{X: 100, W: 10, H: 10}, time.Now())
		require.False(t, ok, "speed %v must not animate", speed)
		require.Equal(t, 0, s.Active())
	}
}

func TestZeroDistanceIsDiscarded(t *testing.T) {
	s := New(1000)
	f := strip.Frame{X: 10, Y: 10, W: 100, H: 100}
	require.False(t, s.Set(1, f, f, time.Now()))
	require.Equal(t, 0, s.Active())
}

func TestSupersedeReplacesExistingTask(t *testing.T) {
	s := New(1000)
	now := time.Now()
	require.True(t, s.Set(1, strip.Frame{}, strip.Frame{X: 100, W: 1, H: 1}, now))
	require.True(t, s.Set(1, strip.Frame{}, strip.Frame{X: 200, W: 1, H: 1}, now))
	require.Equal(t, 1, s.Active())

	updates := s.Tick(now.Add(time.Hour))
	require.Len(t, updates, 1)
	require.InDelta(t, 200, updates[0].Frame.X, 1e-6)
}

func TestCancelDropsTask(t *testing.T) {
	s := New(1000)
	now := time.Now()
	require.True(t, s.Set(1, strip.Frame{}, strip.Frame{X: 100, W: 1, H: 1}, now))
	s.Cancel(1)
	require.Equal(t, 0, s.Active())
	require.Nil(t, s.Tick(now.Add(time.Second)))
}

func TestTickBeforeStartHoldsAtOrigin(t *testing.T) {
	s := New(1000)
	now := time.Now()
	from := strip.Frame{X: 50, W: 10, H: 10}
	require.True(t, s.Set(1, from, strip.Frame{X: 150, W: 10, H: 10}, now))

	updates := s.Tick(now.Add(-time.Second))
	require.Len(t, updates, 1)
	require.Equal(t, from, updates[0].Frame)
}
