package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hal9000y/mailsweep/internal/cleanup"
)

// MessageRef is the slice of a message the recommendation rules need.
type MessageRef struct {
	ID      string `json:"id" jsonschema:"message ID"`
	From    string `json:"from" jsonschema:"sender header value"`
	AgeDays int    `json:"age_days" jsonschema:"message age in days"`
}

// GetRecommendationsRequest carries the working set plus optional AI
// categories from categorize_senders.
type GetRecommendationsRequest struct {
	Messages   []MessageRef        `json:"messages" jsonschema:"current working set"`
	Categories map[string][]string `json:"categories,omitempty" jsonschema:"optional sender categories"`
}

// Recommendation is one actionable cleanup suggestion.
type Recommendation struct {
	Type        string   `json:"type" jsonschema:"bulk_delete, category_delete or old_emails"`
	Title       string   `json:"title" jsonschema:"short heading"`
	Description string   `json:"description" jsonschema:"what was found"`
	Action      string   `json:"action" jsonschema:"suggested action"`
	Priority    string   `json:"priority" jsonschema:"high, medium or low"`
	Senders     []string `json:"senders,omitempty" jsonschema:"example senders, up to 5"`
}

// GetRecommendationsResponse lists suggestions, possibly empty when nothing
// is actionable, plus a short deletion summary.
type GetRecommendationsResponse struct {
	Recommendations []Recommendation `json:"recommendations" jsonschema:"ranked suggestions, may be empty"`
	Summary         string           `json:"summary" jsonschema:"human-readable overview of the working set"`
}

type summarizeSvc interface {
	Summarize(ctx context.Context, messages []cleanup.Message, stats cleanup.SenderStats) string
}

// NewGetRecommendations creates the get_recommendations tool.
func NewGetRecommendations(svc summarizeSvc) *GetRecommendations {
	return &GetRecommendations{svc: svc}
}

// GetRecommendations combines rule-based detection with AI categories.
type GetRecommendations struct {
	svc summarizeSvc
}

// GetRecommendations recomputes suggestions from the current working set.
// Results are ephemeral; call again after any fetch or delete.
func (t *GetRecommendations) GetRecommendations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetRecommendationsRequest,
) (*mcp.CallToolResult, GetRecommendationsResponse, error) {
	messages := make([]cleanup.Message, 0, len(input.Messages))
	for _, ref := range input.Messages {
		messages = append(messages, cleanup.Message{
			ID:      ref.ID,
			From:    ref.From,
			AgeDays: ref.AgeDays,
		})
	}

	stats := cleanup.Aggregate(messages)

	recs := cleanup.Recommend(messages, stats, input.Categories)

	out := make([]Recommendation, 0, len(recs))
	for _, r := range recs {
		out = append(out, Recommendation{
			Type:        r.Type,
			Title:       r.Title,
			Description: r.Description,
			Action:      r.Action,
			Priority:    r.Priority,
			Senders:     r.Senders,
		})
	}

	return nil, GetRecommendationsResponse{
		Recommendations: out,
		Summary:         t.svc.Summarize(ctx, messages, stats),
	}, nil
}
