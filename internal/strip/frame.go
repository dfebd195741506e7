package strip

import "math"

// Frame is a window position and size in screen coordinates. The model works
// in float64 so animation interpolation does not accumulate rounding error;
// conversion to integer pixels happens at the platform boundary.
type Frame struct {
	X float64
	Y float64
	W float64
	H float64
}

// Contains reports whether the point (x, y) falls inside the frame.
func (f Frame) Contains(x, y float64) bool {
	return x >= f.X && x < f.X+f.W && y >= f.Y && y < f.Y+f.H
}

// Distance returns the Euclidean distance between the origins plus the
// Euclidean distance between the sizes. It is the path length the animation
// scheduler divides by the configured speed.
func (f Frame) Distance(other Frame) float64 {
	move := math.Hypot(other.X-f.X, other.Y-f.Y)
	grow := math.Hypot(other.W-f.W, other.H-f.H)
	return move + grow
}

// Lerp linearly interpolates between f and target. t is clamped to [0, 1];
// t=1 returns target exactly so a finished animation has no residual drift.
func (f Frame) Lerp(target Frame, t float64) Frame {
	if t <= 0 {
		return f
	}
	if t >= 1 {
		return target
	}
	return Frame{
		X: f.X + (target.X-f.X)*t,
		Y: f.Y + (target.Y-f.Y)*t,
		W: f.W + (target.W-f.W)*t,
		H: f.H + (target.H-f.H)*t,
	}
}
