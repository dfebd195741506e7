package ipc

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stripwm/stripwm/internal/engine"
	"github.com/stripwm/stripwm/internal/event"
)

type recordingDispatcher struct {
	events []event.Event
}

func (r *recordingDispatcher) Enqueue(ev event.Event) {
	r.events = append(r.events, ev)
}

func (r *recordingDispatcher) Status(ctx context.Context) (engine.StatusSnapshot, error) {
	return engine.StatusSnapshot{}, nil
}

func (r *recordingDispatcher) ListWindows(ctx context.Context) ([]engine.WindowSnapshot, error) {
	return nil, nil
}

func newTestServer(t *testing.T, configPath string) (*Server, *recordingDispatcher) {
	t.Helper()
	disp := &recordingDispatcher{}
	return &Server{
		engine:     disp,
		configPath: configPath,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, disp
}

func TestReloadReadsDaemonConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("gap: 5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	s, disp := newTestServer(t, path)
	resp := s.handleReload()
	if resp.Status != "OK" {
		t.Fatalf("expected OK, got %s: %s", resp.Status, resp.Error)
	}
	if len(disp.events) != 1 {
		t.Fatalf("expected one enqueued event, got %d", len(disp.events))
	}
	reloaded, ok := disp.events[0].(event.ConfigReloaded)
	if !ok {
		t.Fatalf("expected ConfigReloaded, got %T", disp.events[0])
	}
	if reloaded.Config.Gap != 5 {
		t.Fatalf("expected gap 5 from %s, got %v", path, reloaded.Config.Gap)
	}
}

func TestReloadRejectsInvalidConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("gap: [broken\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	s, disp := newTestServer(t, path)
	resp := s.handleReload()
	if resp.Status != "ERROR" {
		t.Fatalf("expected ERROR for malformed config, got %s", resp.Status)
	}
	if len(disp.events) != 0 {
		t.Fatalf("malformed config must not reach the engine, got %d events", len(disp.events))
	}
}
