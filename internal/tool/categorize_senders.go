package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hal9000y/mailsweep/internal/ai"
	"github.com/hal9000y/mailsweep/internal/cleanup"
	"github.com/hal9000y/mailsweep/internal/eventlog"
)

// CategorizeSendersRequest carries the sender stats of the current working
// set, in descending-count order as returned by fetch_messages.
type CategorizeSendersRequest struct {
	Senders []SenderCount `json:"senders" jsonschema:"sender stats to categorize, descending by count"`
}

// CategorizeSendersResponse groups senders by category. Senders the model
// could not be trusted on land in the uncategorized bucket; this tool never
// fails outright.
type CategorizeSendersResponse struct {
	Categories map[string][]string `json:"categories" jsonschema:"category name to sender list"`
}

type categorizeSvc interface {
	Categorize(ctx context.Context, stats cleanup.SenderStats) ai.CategoryMap
}

// NewCategorizeSenders creates the categorize_senders tool.
func NewCategorizeSenders(svc categorizeSvc, rec *eventlog.Recorder) *CategorizeSenders {
	return &CategorizeSenders{svc: svc, rec: rec}
}

// CategorizeSenders delegates sender grouping to the AI categorizer.
type CategorizeSenders struct {
	svc categorizeSvc
	rec *eventlog.Recorder
}

// CategorizeSenders groups the given senders. The result is a snapshot tied
// to the working set it was computed from; refetch invalidates it.
func (t *CategorizeSenders) CategorizeSenders(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CategorizeSendersRequest,
) (*mcp.CallToolResult, CategorizeSendersResponse, error) {
	categories := t.svc.Categorize(ctx, senderStats(input.Senders))

	t.rec.Record("categorize", "", len(input.Senders))

	return nil, CategorizeSendersResponse{
		Categories: categories,
	}, nil
}
