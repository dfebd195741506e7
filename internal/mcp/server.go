// Package mcp exposes the daemon to MCP clients over stdio. Every tool is a
// thin wrapper around the IPC client, so the MCP process needs no X11
// connection of its own and can run wherever the daemon's socket is
// reachable.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stripwm/stripwm/internal/ipc"
)

const (
	ServerName    = "stripwm"
	ServerVersion = "0.1.0"
)

// Server is the MCP server bridging tools to the daemon's IPC socket.
type Server struct {
	mcpServer *mcpsdk.Server
	client    *ipc.Client
}

// NewServer creates a new MCP server talking to the local daemon.
func NewServer() *Server {
	s := &Server{
		client: ipc.NewClient(),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Get daemon status: uptime, managed/floating window counts, tracked processes, and per-monitor column strips with their scroll offsets.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List all windows the daemon tracks, with geometry, owning process, monitor, and whether each is tiled into a strip or floating.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "run_command",
		Description: "Run a window-management command, e.g. [\"window\",\"focus\",\"east\"], [\"window\",\"swap\",\"west\"], [\"window\",\"resize\"], [\"window\",\"center\"], [\"window\",\"stack\",\"east\"], [\"window\",\"unstack\"], [\"window\",\"manage\"]. The command is enqueued and executes asynchronously.",
	}, s.handleRunCommand)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "reload_config",
		Description: "Reload the daemon's configuration file and apply it: animation speed, gaps, presets and key bindings take effect without restarting.",
	}, s.handleReloadConfig)
}
