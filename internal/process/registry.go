// Package process tracks running applications and their window ownership.
// Like the strip model it is owned by the engine goroutine and holds no
// locks; all events reach it through the dispatcher.
package process

import (
	"sort"

	gops "github.com/shirou/gopsutil/v4/process"

	"github.com/stripwm/stripwm/internal/platform"
)

// State is an application's lifecycle phase.
type State int

const (
	StateLaunching State = iota
	StateRunning
	StateFrontmostSwitching
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateLaunching:
		return "launching"
	case StateRunning:
		return "running"
	case StateFrontmostSwitching:
		return "front-switching"
	case StateTerminated:
		return "terminated"
	}
	return "unknown"
}

// Process is one running application and the windows it owns.
type Process struct {
	PID     int
	Name    string
	State   State
	windows map[platform.WindowID]struct{}
}

// Windows returns the owned window ids in ascending order.
func (p *Process) Windows() []platform.WindowID {
	out := make([]platform.WindowID, 0, len(p.windows))
	for id := range p.windows {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Registry maps pids to processes and window ids back to their owners.
type Registry struct {
	processes map[int]*Process
	ownerOf   map[platform.WindowID]int
	frontmost int

	// nameFn resolves a display name from a pid; swapped out in tests.
	nameFn func(pid int) string
}

// NewRegistry creates an empty registry resolving names via the OS process
// table.
func NewRegistry() *Registry {
	return &Registry{
		processes: make(map[int]*Process),
		ownerOf:   make(map[platform.WindowID]int),
		nameFn:    systemProcessName,
	}
}

func systemProcessName(pid int) string {
	proc, err := gops.NewProcess(int32(pid))
	if err != nil {
		return ""
	}
	name, err := proc.Name()
	if err != nil {
		return ""
	}
	return name
}

// OnLaunch records a newly observed application. Re-launching a known pid
// refreshes its name and marks it running.
func (r *Registry) OnLaunch(pid int, name string) *Process {
	if name == "" {
		name = r.nameFn(pid)
	}
	p, ok := r.processes[pid]
	if !ok {
		p = &Process{PID: pid, Name: name, State: StateLaunching, windows: make(map[platform.WindowID]struct{})}
		r.processes[pid] = p
	}
	if name != "" {
		p.Name = name
	}
	p.State = StateRunning
	return p
}

// OnTerminate removes a process and returns the window ids it owned so the
// caller can drop them from the layout. Terminate events race with the
// platform's own window-destroyed notifications, so terminating an unknown or
// already terminated pid is a no-op, not an error.
func (r *Registry) OnTerminate(pid int) []platform.WindowID {
	p, ok := r.processes[pid]
	if !ok {
		return nil
	}
	owned := p.Windows()
	for _, id := range owned {
		delete(r.ownerOf, id)
	}
	p.State = StateTerminated
	delete(r.processes, pid)
	if r.frontmost == pid {
		r.frontmost = 0
	}
	return owned
}

// OnFrontSwitch marks the frontmost application. It never moves a window;
// the marker only feeds focus-follows-mouse and status reporting.
func (r *Registry) OnFrontSwitch(pid int) {
	if prev, ok := r.processes[r.frontmost]; ok && prev.State == StateFrontmostSwitching {
		prev.State = StateRunning
	}
	r.frontmost = pid
	if p, ok := r.processes[pid]; ok {
		p.State = StateFrontmostSwitching
	}
}

// Frontmost returns the active application's pid, or 0.
func (r *Registry) Frontmost() int {
	return r.frontmost
}

// RegisterWindow records window ownership, creating the owner entry when the
// window arrives before any launch event. name seeds the display name for an
// owner created this way; the OS process table is only consulted when it is
// empty.
func (r *Registry) RegisterWindow(pid int, id platform.WindowID, name string) {
	p, ok := r.processes[pid]
	if !ok {
		p = r.OnLaunch(pid, name)
	}
	p.windows[id] = struct{}{}
	r.ownerOf[id] = pid
}

// UnregisterWindow drops a window from its owner. Unknown ids are ignored.
// It returns the owner pid and whether that owner now has no windows left,
// which is the caller's cue to probe whether the process is still alive.
func (r *Registry) UnregisterWindow(id platform.WindowID) (pid int, orphaned bool) {
	pid, ok := r.ownerOf[id]
	if !ok {
		return 0, false
	}
	delete(r.ownerOf, id)
	p, ok := r.processes[pid]
	if !ok {
		return pid, false
	}
	delete(p.windows, id)
	return pid, len(p.windows) == 0
}

// Owner returns the pid owning a window id.
func (r *Registry) Owner(id platform.WindowID) (int, bool) {
	pid, ok := r.ownerOf[id]
	return pid, ok
}

// Find returns a process by pid.
func (r *Registry) Find(pid int) (*Process, bool) {
	p, ok := r.processes[pid]
	return p, ok
}

// Alive probes the OS process table for the pid. Used after a process loses
// its last window to decide whether to synthesize a terminate.
func (r *Registry) Alive(pid int) bool {
	ok, err := gops.PidExists(int32(pid))
	return err == nil && ok
}

// Len returns the number of tracked processes.
func (r *Registry) Len() int {
	return len(r.processes)
}
