package mcp

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// MonitorStatus describes one monitor's strip in get_status output.
type MonitorStatus struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Columns int     `json:"columns"`
	Windows int     `json:"windows"`
	Scroll  float64 `json:"scroll"`
}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	DaemonRunning   bool            `json:"daemon_running"`
	UptimeSeconds   int64           `json:"uptime_seconds"`
	ManagedWindows  int             `json:"managed_windows"`
	FloatingWindows int             `json:"floating_windows"`
	Processes       int             `json:"processes"`
	Monitors        []MonitorStatus `json:"monitors"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	ManagedOnly bool `json:"managed_only,omitempty" jsonschema:"When true, only windows currently tiled into a strip are returned"`
}

// WindowDescription describes a single tracked window.
type WindowDescription struct {
	ID      uint32  `json:"id"`
	PID     int     `json:"pid"`
	App     string  `json:"app"`
	Monitor int     `json:"monitor"`
	Managed bool    `json:"managed"`
	Focused bool    `json:"focused"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowDescription `json:"windows"`
}

// RunCommandInput is the input for the run_command tool.
type RunCommandInput struct {
	Argv []string `json:"argv" jsonschema:"required,Command words, e.g. [\"window\",\"focus\",\"west\"] or [\"window\",\"resize\",\"0.5\"]"`
}

// RunCommandOutput is the output for the run_command tool.
type RunCommandOutput struct {
	Accepted bool `json:"accepted"`
}

// ReloadConfigInput is the input for the reload_config tool.
type ReloadConfigInput struct{}

// ReloadConfigOutput is the output for the reload_config tool.
type ReloadConfigOutput struct {
	Reloaded bool `json:"reloaded"`
}
