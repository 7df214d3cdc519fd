package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"
)

// ListLabelsRequest has no parameters.
type ListLabelsRequest struct{}

// Label is one Gmail label.
type Label struct {
	ID   string `json:"id" jsonschema:"label ID"`
	Name string `json:"name" jsonschema:"label display name"`
	Type string `json:"type,omitempty" jsonschema:"system or user"`
}

// ListLabelsResponse lists the user's labels.
type ListLabelsResponse struct {
	Labels []Label `json:"labels" jsonschema:"all labels in the mailbox"`
}

type listLabelsSvc interface {
	ListLabels(ctx context.Context) ([]*gmail.Label, error)
}

// NewListLabels creates the list_labels tool.
func NewListLabels(svc listLabelsSvc) *ListLabels {
	return &ListLabels{svc: svc}
}

// ListLabels exposes mailbox labels so the client can offer a label filter.
type ListLabels struct {
	svc listLabelsSvc
}

// ListLabels returns all labels.
func (t *ListLabels) ListLabels(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListLabelsRequest,
) (*mcp.CallToolResult, ListLabelsResponse, error) {
	labels, err := t.svc.ListLabels(ctx)
	if err != nil {
		return nil, ListLabelsResponse{}, fmt.Errorf("svc.ListLabels failed: %w", err)
	}

	out := make([]Label, 0, len(labels))
	for _, l := range labels {
		out = append(out, Label{ID: l.Id, Name: l.Name, Type: l.Type})
	}

	return nil, ListLabelsResponse{Labels: out}, nil
}
