package process

import (
	"testing"

	"github.com/stripwm/stripwm/internal/platform"
)

func newTestRegistry() *Registry {
	r := NewRegistry()
	r.nameFn = func(pid int) string { return "resolved" }
	return r
}

func TestLaunchAndTerminate(t *testing.T) {
	r := newTestRegistry()

	p := r.OnLaunch(100, "term")
	if p.State != StateRunning {
		t.Fatalf("expected running, got %s", p.State)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 process, got %d", r.Len())
	}

	r.RegisterWindow(100, 1, "term")
	r.RegisterWindow(100, 2, "term")

	owned := r.OnTerminate(100)
	if len(owned) != 2 || owned[0] != 1 || owned[1] != 2 {
		t.Fatalf("expected owned windows [1 2], got %v", owned)
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}
	if _, ok := r.Owner(1); ok {
		t.Fatal("window 1 should have no owner after terminate")
	}
}

func TestTerminateUnknownPidIsNoop(t *testing.T) {
	r := newTestRegistry()
	if owned := r.OnTerminate(42); owned != nil {
		t.Fatalf("expected nil, got %v", owned)
	}

	// Terminating twice is equally harmless.
	r.OnLaunch(100, "term")
	r.OnTerminate(100)
	if owned := r.OnTerminate(100); owned != nil {
		t.Fatalf("expected nil on second terminate, got %v", owned)
	}
}

func TestRegisterWindowCreatesOwner(t *testing.T) {
	r := newTestRegistry()

	// Window arrives before any launch event.
	r.RegisterWindow(200, 7, "editor")

	p, ok := r.Find(200)
	if !ok {
		t.Fatal("expected process 200 to exist")
	}
	if p.Name != "editor" {
		t.Fatalf("expected seeded name, got %q", p.Name)
	}
	pid, ok := r.Owner(7)
	if !ok || pid != 200 {
		t.Fatalf("expected owner 200, got %d (ok=%v)", pid, ok)
	}
}

func TestRegisterWindowFallsBackToNameFn(t *testing.T) {
	r := newTestRegistry()
	r.RegisterWindow(300, 8, "")
	p, _ := r.Find(300)
	if p.Name != "resolved" {
		t.Fatalf("expected resolved name, got %q", p.Name)
	}
}

func TestUnregisterWindowReportsOrphan(t *testing.T) {
	r := newTestRegistry()
	r.RegisterWindow(100, 1, "term")
	r.RegisterWindow(100, 2, "term")

	pid, orphaned := r.UnregisterWindow(1)
	if pid != 100 || orphaned {
		t.Fatalf("expected (100,false), got (%d,%v)", pid, orphaned)
	}

	pid, orphaned = r.UnregisterWindow(2)
	if pid != 100 || !orphaned {
		t.Fatalf("expected (100,true), got (%d,%v)", pid, orphaned)
	}

	if pid, orphaned := r.UnregisterWindow(99); pid != 0 || orphaned {
		t.Fatal("unknown window must be ignored")
	}
}

func TestFrontSwitch(t *testing.T) {
	r := newTestRegistry()
	r.OnLaunch(100, "a")
	r.OnLaunch(200, "b")

	r.OnFrontSwitch(100)
	if r.Frontmost() != 100 {
		t.Fatalf("expected frontmost 100, got %d", r.Frontmost())
	}

	r.OnFrontSwitch(200)
	if r.Frontmost() != 200 {
		t.Fatalf("expected frontmost 200, got %d", r.Frontmost())
	}
	a, _ := r.Find(100)
	if a.State != StateRunning {
		t.Fatalf("previous frontmost should be running, got %s", a.State)
	}

	r.OnTerminate(200)
	if r.Frontmost() != 0 {
		t.Fatalf("frontmost should clear on terminate, got %d", r.Frontmost())
	}
}

func TestWindowsSorted(t *testing.T) {
	r := newTestRegistry()
	for _, id := range []platform.WindowID{5, 1, 3} {
		r.RegisterWindow(100, id, "term")
	}
	p, _ := r.Find(100)
	got := p.Windows()
	want := []platform.WindowID{1, 3, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
