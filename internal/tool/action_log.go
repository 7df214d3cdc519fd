package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hal9000y/mailsweep/internal/eventlog"
)

// ActionLogRequest has no parameters.
type ActionLogRequest struct{}

// ActionLogResponse lists recorded actions, newest first.
type ActionLogResponse struct {
	Entries []eventlog.Entry `json:"entries" jsonschema:"recorded actions for this session, newest first"`
}

// NewActionLog creates the action_log tool.
func NewActionLog(rec *eventlog.Recorder) *ActionLog {
	return &ActionLog{rec: rec}
}

// ActionLog exposes the session's action history.
type ActionLog struct {
	rec *eventlog.Recorder
}

// ActionLog returns the recorded history. Session-scoped only; nothing is
// persisted across restarts.
func (t *ActionLog) ActionLog(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ActionLogRequest,
) (*mcp.CallToolResult, ActionLogResponse, error) {
	return nil, ActionLogResponse{Entries: t.rec.Entries()}, nil
}
