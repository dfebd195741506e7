package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/stripwm/stripwm/internal/config"
	"github.com/stripwm/stripwm/internal/engine"
	"github.com/stripwm/stripwm/internal/event"
	"github.com/stripwm/stripwm/internal/runtimepath"
)

const queryTimeout = 5 * time.Second

// dispatcher is the engine surface the server drives: commands are enqueued
// onto the pipeline, queries are answered from engine snapshots.
type dispatcher interface {
	Enqueue(ev event.Event)
	Status(ctx context.Context) (engine.StatusSnapshot, error)
	ListWindows(ctx context.Context) ([]engine.WindowSnapshot, error)
}

// Server handles IPC requests from clients. Command requests are enqueued
// onto the engine's pipeline; status requests are answered from engine
// snapshots.
type Server struct {
	socketPath   string
	configPath   string
	listener     net.Listener
	engine       dispatcher
	logger       *slog.Logger
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server. configPath is the config file the
// daemon was started with; RELOAD re-reads that file, not the default
// location.
func NewServer(eng *engine.Engine, configPath string, logger *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		configPath: configPath,
		engine:     eng,
		logger:     logger,
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Error("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Error("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal IPC response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Error("failed to send IPC response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandExec:
		return s.handleExec(req.Payload)
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetWindows:
		return s.handleGetWindows()
	case CommandReload:
		return s.handleReload()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// handleExec enqueues an argv command. The response says the command was
// accepted, not that it succeeded: execution happens asynchronously in the
// engine's pipeline.
func (s *Server) handleExec(payload json.RawMessage) *Response {
	var exec ExecPayload
	if err := json.Unmarshal(payload, &exec); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid exec payload: %v", err))
	}
	if len(exec.Argv) == 0 {
		return NewErrorResponse("argv is required")
	}

	s.engine.Enqueue(event.Command{Argv: exec.Argv})
	s.logger.Debug("IPC command enqueued", "argv", exec.Argv)

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	snap, err := s.engine.Status(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get status: %v", err))
	}

	status := StatusData{
		UptimeSeconds:   int64(snap.Uptime.Seconds()),
		ManagedWindows:  snap.Managed,
		FloatingWindows: snap.Floating,
		Processes:       snap.Processes,
		DaemonRunning:   true,
	}
	for _, m := range snap.Monitors {
		status.Monitors = append(status.Monitors, MonitorInfo{
			ID:      m.ID,
			Name:    m.Name,
			Columns: m.Columns,
			Windows: m.Windows,
			Scroll:  m.Scroll,
		})
	}

	resp, _ := NewOKResponse(status)
	return resp
}

// handleGetWindows returns all tracked windows
func (s *Server) handleGetWindows() *Response {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	windows, err := s.engine.ListWindows(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to list windows: %v", err))
	}

	data := WindowsData{Windows: make([]WindowInfo, 0, len(windows))}
	for _, w := range windows {
		data.Windows = append(data.Windows, WindowInfo{
			ID:      uint32(w.ID),
			PID:     w.PID,
			App:     w.App,
			Monitor: w.Monitor,
			Managed: w.Managed,
			Focused: w.Focused,
			X:       w.Frame.X,
			Y:       w.Frame.Y,
			Width:   w.Frame.W,
			Height:  w.Frame.H,
		})
	}

	resp, _ := NewOKResponse(data)
	return resp
}

// handleReload re-reads the daemon's config file and hands it to the engine
func (s *Server) handleReload() *Response {
	s.logger.Info("IPC reload requested", "path", s.configPath)

	var cfg *config.Config
	var err error
	if s.configPath != "" {
		cfg, err = config.LoadFromPath(s.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}

	s.engine.Enqueue(event.ConfigReloaded{Config: cfg})

	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
