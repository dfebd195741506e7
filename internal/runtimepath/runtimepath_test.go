package runtimepath

import (
	"os"
	"strings"
	"testing"
)

func TestDirReturnsUsableDirectory(t *testing.T) {
	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got == "" {
		t.Fatal("Dir() returned empty path")
	}
	info, err := os.Stat(got)
	if err != nil {
		t.Fatalf("Dir() = %q, not statable: %v", got, err)
	}
	if !info.IsDir() {
		t.Fatalf("Dir() = %q, not a directory", got)
	}
}

func TestSocketPath(t *testing.T) {
	socket, err := SocketPath()
	if err != nil {
		t.Fatalf("SocketPath() error: %v", err)
	}
	if !strings.HasSuffix(socket, "/stripwm.sock") {
		t.Fatalf("SocketPath() = %q, missing suffix", socket)
	}
}
