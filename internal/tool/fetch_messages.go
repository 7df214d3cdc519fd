package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/gmail/v1"

	"github.com/hal9000y/mailsweep/internal/cleanup"
	"github.com/hal9000y/mailsweep/internal/eventlog"
	"github.com/hal9000y/mailsweep/internal/gservice"
	"github.com/hal9000y/mailsweep/internal/query"
)

// FetchMessagesRequest describes a mailbox search.
type FetchMessagesRequest struct {
	DaysOld    int    `json:"days_old,omitempty" jsonschema:"minimum message age in days, 0 disables the age filter"`
	UnreadOnly bool   `json:"unread_only,omitempty" jsonschema:"only fetch unread messages"`
	Sender     string `json:"sender,omitempty" jsonschema:"filter by sender address or name"`
	Subject    string `json:"subject,omitempty" jsonschema:"filter by subject keywords"`
	Label      string `json:"label,omitempty" jsonschema:"filter by Gmail label name"`
	MaxResults int64  `json:"max_results,omitempty" jsonschema:"maximum messages to fetch"`
}

// FetchMessagesResponse carries the fetched working set and its sender stats.
type FetchMessagesResponse struct {
	Query        string           `json:"query" jsonschema:"the Gmail search query that was run"`
	Messages     []MessageSummary `json:"messages" jsonschema:"fetched messages, newest first"`
	Senders      []SenderCount    `json:"senders" jsonschema:"per-sender counts, descending"`
	TotalResults int              `json:"total_results" jsonschema:"number of messages returned"`
	Notice       string           `json:"notice,omitempty" jsonschema:"non-fatal condition, e.g. mailbox temporarily unavailable"`
}

type fetchMessagesSvc interface {
	ListMessageIDs(ctx context.Context, query string, maxResults int64) ([]string, error)
	GetMessageMetadata(ctx context.Context, msgID string) (*gmail.Message, error)
}

// NewFetchMessages creates the fetch_messages tool.
func NewFetchMessages(svc fetchMessagesSvc, rec *eventlog.Recorder) *FetchMessages {
	return &FetchMessages{
		fetcher: cleanup.NewFetcher(svc),
		rec:     rec,
	}
}

// FetchMessages builds the search query, loads matching messages and
// aggregates sender stats.
type FetchMessages struct {
	fetcher *cleanup.Fetcher
	rec     *eventlog.Recorder
}

// FetchMessages runs the search. A mailbox outage yields an empty result
// with a notice rather than a tool error; the client must not confuse it
// with a genuinely empty mailbox.
func (t *FetchMessages) FetchMessages(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FetchMessagesRequest,
) (*mcp.CallToolResult, FetchMessagesResponse, error) {
	q := query.Build(query.FilterSpec{
		DaysOld:    input.DaysOld,
		UnreadOnly: input.UnreadOnly,
		Sender:     input.Sender,
		Subject:    input.Subject,
		Label:      input.Label,
	})

	maxResults := normalizeMaxResults(input.MaxResults)

	messages, err := t.fetcher.FetchAll(ctx, q, maxResults)
	if errors.Is(err, gservice.ErrRemoteUnavailable) {
		log.Error().Err(err).Str("query", q).Msg("fetch aborted, mailbox unavailable")

		return nil, FetchMessagesResponse{
			Query:    q,
			Messages: []MessageSummary{},
			Senders:  []SenderCount{},
			Notice:   "Mailbox temporarily unavailable; no messages were fetched. Try again later.",
		}, nil
	}
	if err != nil {
		return nil, FetchMessagesResponse{}, fmt.Errorf("fetcher.FetchAll failed: %w", err)
	}

	summaries := make([]MessageSummary, 0, len(messages))
	for _, m := range messages {
		summaries = append(summaries, newMessageSummary(m))
	}

	t.rec.Record("fetch", q, len(messages))

	return nil, FetchMessagesResponse{
		Query:        q,
		Messages:     summaries,
		Senders:      newSenderCounts(cleanup.Aggregate(messages)),
		TotalResults: len(summaries),
	}, nil
}

func normalizeMaxResults(maxResults int64) int64 {
	if maxResults <= 0 {
		return 100
	}
	if maxResults > 500 {
		return 500
	}
	return maxResults
}
