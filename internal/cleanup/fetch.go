package cleanup

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/gmail/v1"
)

// metadataWorkers bounds concurrent per-message metadata fetches. Gmail
// enforces its own per-user rate limits; the gateway backs off on throttling.
const metadataWorkers = 4

type fetchSvc interface {
	ListMessageIDs(ctx context.Context, query string, maxResults int64) ([]string, error)
	GetMessageMetadata(ctx context.Context, msgID string) (*gmail.Message, error)
}

// NewFetcher creates a fetcher over the mailbox gateway.
func NewFetcher(svc fetchSvc) *Fetcher {
	return &Fetcher{svc: svc, now: time.Now}
}

// Fetcher builds the in-memory working set for a search query.
type Fetcher struct {
	svc fetchSvc
	now func() time.Time
}

// FetchAll lists matching message IDs and loads metadata for each with
// bounded concurrency. A failed per-message fetch drops that record rather
// than failing the batch. The result is sorted newest-first.
func (f *Fetcher) FetchAll(ctx context.Context, query string, maxResults int64) ([]Message, error) {
	ids, err := f.svc.ListMessageIDs(ctx, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("svc.ListMessageIDs failed: %w", err)
	}

	if len(ids) == 0 {
		log.Info().Str("query", query).Msg("fetch completed, no matches")

		return []Message{}, nil
	}

	now := f.now()

	jobs := make(chan string)
	results := make(chan Message, len(ids))
	dropped := make(chan string, len(ids))

	var wg sync.WaitGroup
	for range metadataWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				msg, err := f.svc.GetMessageMetadata(ctx, id)
				if err != nil {
					dropped <- id
					continue
				}
				results <- NewMessage(msg, now)
			}
		}()
	}

	for _, id := range ids {
		jobs <- id
	}
	close(jobs)
	wg.Wait()
	close(results)
	close(dropped)

	messages := make([]Message, 0, len(ids))
	for msg := range results {
		messages = append(messages, msg)
	}

	for id := range dropped {
		log.Warn().Str("id", id).Msg("dropped message, metadata fetch failed")
	}

	// Workers complete out of order; restore a stable display order.
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Date.After(messages[j].Date)
	})

	log.Info().
		Str("query", query).
		Int("fetched", len(messages)).
		Int("dropped", len(ids)-len(messages)).
		Msg("fetch completed")

	return messages, nil
}
