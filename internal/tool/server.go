package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hal9000y/mailsweep/internal/eventlog"
)

type gmailSvc interface {
	fetchMessagesSvc
	deleteMessagesSvc
	previewMessageSvc
	listLabelsSvc
}

type aiSvc interface {
	categorizeSvc
	summarizeSvc
}

// NewServer creates an MCP server exposing the mailbox cleanup tools.
func NewServer(svc gmailSvc, ai aiSvc, rec *eventlog.Recorder) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "mailsweep", Version: "v1.0.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "fetch_messages",
		Description: "Fetch old unread messages matching filters, with per-sender stats",
	}, NewFetchMessages(svc, rec).FetchMessages)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "categorize_senders",
		Description: "Group senders into cleanup categories using AI (best effort)",
	}, NewCategorizeSenders(ai, rec).CategorizeSenders)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_recommendations",
		Description: "Suggest bulk cleanup actions for the current working set",
	}, NewGetRecommendations(ai).GetRecommendations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_messages",
		Description: "Move selected messages to trash, reporting partial failures",
	}, NewDeleteMessages(svc, rec).DeleteMessages)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preview_message",
		Description: "Get the readable body text of a single message",
	}, NewPreviewMessage(svc).PreviewMessage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_labels",
		Description: "List the mailbox labels available for filtering",
	}, NewListLabels(svc).ListLabels)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "action_log",
		Description: "Show the actions taken in this session",
	}, NewActionLog(rec).ActionLog)

	return server
}
