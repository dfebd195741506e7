package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, fmt.Errorf("daemon status: %w", err)
	}

	out := GetStatusOutput{
		DaemonRunning:   status.DaemonRunning,
		UptimeSeconds:   status.UptimeSeconds,
		ManagedWindows:  status.ManagedWindows,
		FloatingWindows: status.FloatingWindows,
		Processes:       status.Processes,
	}
	for _, m := range status.Monitors {
		out.Monitors = append(out.Monitors, MonitorStatus{
			ID:      m.ID,
			Name:    m.Name,
			Columns: m.Columns,
			Windows: m.Windows,
			Scroll:  m.Scroll,
		})
	}
	return nil, out, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	windows, err := s.client.GetWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, fmt.Errorf("daemon windows: %w", err)
	}

	out := ListWindowsOutput{Windows: []WindowDescription{}}
	for _, w := range windows.Windows {
		if args.ManagedOnly && !w.Managed {
			continue
		}
		out.Windows = append(out.Windows, WindowDescription{
			ID:      w.ID,
			PID:     w.PID,
			App:     w.App,
			Monitor: w.Monitor,
			Managed: w.Managed,
			Focused: w.Focused,
			X:       w.X,
			Y:       w.Y,
			Width:   w.Width,
			Height:  w.Height,
		})
	}
	return nil, out, nil
}

func (s *Server) handleRunCommand(_ context.Context, _ *mcpsdk.CallToolRequest, args RunCommandInput) (*mcpsdk.CallToolResult, RunCommandOutput, error) {
	if len(args.Argv) == 0 {
		return nil, RunCommandOutput{}, fmt.Errorf("argv is required")
	}
	if err := s.client.Exec(args.Argv); err != nil {
		return nil, RunCommandOutput{}, fmt.Errorf("run command: %w", err)
	}
	return nil, RunCommandOutput{Accepted: true}, nil
}

func (s *Server) handleReloadConfig(_ context.Context, _ *mcpsdk.CallToolRequest, _ ReloadConfigInput) (*mcpsdk.CallToolResult, ReloadConfigOutput, error) {
	if err := s.client.Reload(); err != nil {
		return nil, ReloadConfigOutput{}, fmt.Errorf("reload config: %w", err)
	}
	return nil, ReloadConfigOutput{Reloaded: true}, nil
}
