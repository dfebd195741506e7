// Package animate converts target-frame changes into time-stepped
// intermediate frames. The scheduler holds no goroutines and no locks: the
// engine's ticker producer only enqueues tick events, and all task state is
// read and written from the single consumer goroutine, so superseding an
// in-flight task is a plain map replacement.
package animate

import (
	"time"

	"github.com/stripwm/stripwm/internal/config"
	"github.com/stripwm/stripwm/internal/platform"
	"github.com/stripwm/stripwm/internal/strip"
)

// Task is one in-flight animation: Idle → Animating → Idle per window.
type Task struct {
	ID       platform.WindowID
	From     strip.Frame
	To       strip.Frame
	Start    time.Time
	Duration time.Duration
}

// Update is an intermediate (or final) frame for one window.
type Update struct {
	ID    platform.WindowID
	Frame strip.Frame
	Done  bool
}

// Scheduler interpolates windows toward their targets at a fixed speed in
// pixels per second.
type Scheduler struct {
	speed float64
	tasks map[platform.WindowID]*Task
}

// New creates a scheduler at the given speed.
func New(speed float64) *Scheduler {
	return &Scheduler{
		speed: speed,
		tasks: make(map[platform.WindowID]*Task),
	}
}

// SetSpeed replaces the speed for tasks started after this call; in-flight
// tasks keep their computed duration.
func (s *Scheduler) SetSpeed(speed float64) {
	s.speed = speed
}

// Enabled reports whether the configured speed produces per-tick animation.
// An unset or very large speed degenerates to a single discrete move: the
// caller must apply the target directly rather than rely on ticks.
func (s *Scheduler) Enabled() bool {
	return s.speed > 0 && s.speed < config.DisableAnimationSpeed
}

// Set starts (or supersedes) the task for a window. current must be the
// window's present frame: when a task is already in flight this is its
// interpolated position, so replacement never snaps back to the old start.
// The return is false when the move is degenerate and the caller should jump
// straight to the target.
func (s *Scheduler) Set(id platform.WindowID, current, target strip.Frame, now time.Time) bool {
	if !s.Enabled() {
		delete(s.tasks, id)
		return false
	}
	distance := current.Distance(target)
	if distance == 0 {
		delete(s.tasks, id)
		return false
	}
	duration := time.Duration(distance / s.speed * float64(time.Second))
	if duration <= 0 {
		delete(s.tasks, id)
		return false
	}
	s.tasks[id] = &Task{ID: id, From: current, To: target, Start: now, Duration: duration}
	return true
}

// Cancel drops any task for the window, e.g. when it is destroyed mid-flight.
func (s *Scheduler) Cancel(id platform.WindowID) {
	delete(s.tasks, id)
}

// Active returns the number of windows currently animating.
func (s *Scheduler) Active() int {
	return len(s.tasks)
}

// Frame returns the window's current interpolated frame while a task is in
// flight.
func (s *Scheduler) Frame(id platform.WindowID, now time.Time) (strip.Frame, bool) {
	task, ok := s.tasks[id]
	if !ok {
		return strip.Frame{}, false
	}
	return task.From.Lerp(task.To, task.fraction(now)), true
}

// Tick advances all tasks to now, emitting one update per animating window.
// A finished task reports Done with its frame set exactly to the target and
// is removed, returning that window to Idle.
func (s *Scheduler) Tick(now time.Time) []Update {
	if len(s.tasks) == 0 {
		return nil
	}
	updates := make([]Update, 0, len(s.tasks))
	for id, task := range s.tasks {
		t := task.fraction(now)
		if t >= 1 {
			updates = append(updates, Update{ID: id, Frame: task.To, Done: true})
			delete(s.tasks, id)
			continue
		}
		updates = append(updates, Update{ID: id, Frame: task.From.Lerp(task.To, t)})
	}
	return updates
}

func (t *Task) fraction(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	elapsed := now.Sub(t.Start)
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(t.Duration)
}
