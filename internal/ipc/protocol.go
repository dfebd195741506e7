package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandExec       CommandType = "EXEC"
	CommandGetStatus  CommandType = "GET_STATUS"
	CommandGetWindows CommandType = "GET_WINDOWS"
	CommandReload     CommandType = "RELOAD"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// ExecPayload carries an argv-style command for the EXEC request.
type ExecPayload struct {
	Argv []string `json:"argv"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	UptimeSeconds   int64         `json:"uptime_seconds"`
	ManagedWindows  int           `json:"managed_windows"`
	FloatingWindows int           `json:"floating_windows"`
	Processes       int           `json:"processes"`
	Monitors        []MonitorInfo `json:"monitors"`
	DaemonRunning   bool          `json:"daemon_running"`
}

// MonitorInfo represents one strip in GET_STATUS output.
type MonitorInfo struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Columns int     `json:"columns"`
	Windows int     `json:"windows"`
	Scroll  float64 `json:"scroll"`
}

// WindowInfo represents one tracked window in GET_WINDOWS output.
type WindowInfo struct {
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

// WindowsData represents the data returned by GET_WINDOWS
type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
