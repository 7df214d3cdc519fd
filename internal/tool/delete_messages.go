package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hal9000y/mailsweep/internal/cleanup"
	"github.com/hal9000y/mailsweep/internal/eventlog"
)

// maxReportedErrors bounds the per-message error list in the response.
const maxReportedErrors = 5

// DeleteMessagesRequest carries the message IDs selected for deletion.
type DeleteMessagesRequest struct {
	MessageIDs []string `json:"message_ids" jsonschema:"IDs of messages to move to trash"`
}

// DeleteMessagesResponse reports per-invocation delete counts. Failed
// messages are not retried automatically; re-select and delete again.
type DeleteMessagesResponse struct {
	Succeeded   int      `json:"succeeded" jsonschema:"messages moved to trash"`
	Failed      int      `json:"failed" jsonschema:"messages that could not be trashed"`
	Errors      []string `json:"errors" jsonschema:"up to 5 per-message error descriptions"`
	TotalErrors int      `json:"total_errors" jsonschema:"full failure count when errors were truncated"`
}

type deleteMessagesSvc interface {
	BatchModify(ctx context.Context, ids, addLabelIDs, removeLabelIDs []string) error
	TrashMessage(ctx context.Context, msgID string) error
}

// NewDeleteMessages creates the delete_messages tool.
func NewDeleteMessages(svc deleteMessagesSvc, rec *eventlog.Recorder) *DeleteMessages {
	return &DeleteMessages{
		executor: cleanup.NewExecutor(svc),
		rec:      rec,
	}
}

// DeleteMessages moves selected messages to trash via the batch executor.
type DeleteMessages struct {
	executor *cleanup.Executor
	rec      *eventlog.Recorder
}

// DeleteMessages trashes the selected messages. Empty input is a no-op with
// a zero result and no remote calls.
func (t *DeleteMessages) DeleteMessages(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteMessagesRequest,
) (*mcp.CallToolResult, DeleteMessagesResponse, error) {
	result := t.executor.Delete(ctx, input.MessageIDs)

	if len(input.MessageIDs) > 0 {
		t.rec.Record("delete", "selected messages", result.Succeeded)
	}

	reported := result.Errors
	if len(reported) > maxReportedErrors {
		reported = reported[:maxReportedErrors]
	}

	return nil, DeleteMessagesResponse{
		Succeeded:   result.Succeeded,
		Failed:      result.Failed,
		Errors:      reported,
		TotalErrors: len(result.Errors),
	}, nil
}
