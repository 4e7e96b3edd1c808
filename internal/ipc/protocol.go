package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/tdawm/internal/wm"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandPing       CommandType = "PING"
	CommandGetStatus  CommandType = "GET_STATUS"
	CommandGetScreens CommandType = "GET_SCREENS"
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

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	ActiveLayout  string `json:"active_layout"`
	WindowCount   int    `json:"window_count"`
	ScreenCount   int    `json:"screen_count"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Running       bool   `json:"running"`
}

// ScreenInfo represents a single screen and its current workspace.
type ScreenInfo struct {
	ID               int    `json:"id"`
	X                int    `json:"x"`
	Y                int    `json:"y"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	CurrentWorkspace int    `json:"current_workspace"`
	Focused          uint32 `json:"focused"`
	WorkspaceWindows []int  `json:"workspace_windows"`
	Docks            int    `json:"docks"`
}

// ScreensData represents the data returned by GET_SCREENS
type ScreensData struct {
	Screens []ScreenInfo `json:"screens"`
}

func screensFromSnapshot(snap *wm.Snapshot) []ScreenInfo {
	out := make([]ScreenInfo, len(snap.Screens))
	for i, s := range snap.Screens {
		out[i] = ScreenInfo{
			ID:               i,
			X:                s.Bounds.X,
			Y:                s.Bounds.Y,
			Width:            s.Bounds.Width,
			Height:           s.Bounds.Height,
			CurrentWorkspace: s.CurrentWorkspace,
			Focused:          uint32(s.Focused),
			WorkspaceWindows: append([]int(nil), s.WorkspaceWindows...),
			Docks:            s.Docks,
		}
	}
	return out
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data any) (*Response, error) {
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
