package tool

import (
	"strings"

	"github.com/hal9000y/mailsweep/internal/cleanup"
)

const dateFormat = "2006-01-02 15:04"

// EmailAddress represents an email address with optional display name.
type EmailAddress struct {
	Name  string `json:"name,omitempty" jsonschema:"the display name"`
	Email string `json:"email" jsonschema:"the email address"`
}

// MessageSummary is one working-set entry as shown to the client.
type MessageSummary struct {
	ID           string          `json:"id" jsonschema:"message ID"`
	ThreadID     string          `json:"thread_id" jsonschema:"thread ID"`
	From         EmailAddress    `json:"from" jsonschema:"sender information"`
	Subject      string          `json:"subject" jsonschema:"email subject"`
	Date         string          `json:"date" jsonschema:"send time, YYYY-MM-DD HH:MM"`
	AgeDays      int             `json:"age_days" jsonschema:"message age in whole days at fetch time"`
	Snippet      string          `json:"snippet,omitempty" jsonschema:"message preview"`
	LabelIDs     []string        `json:"label_ids,omitempty" jsonschema:"label identifiers"`
	SizeEstimate int64           `json:"size_estimate,omitempty" jsonschema:"size estimate in bytes"`
	Signals      cleanup.Signals `json:"signals" jsonschema:"advisory heuristic hints, not deletion gates"`
}

// SenderCount is one sender's tally in descending-count order.
type SenderCount struct {
	Sender string `json:"sender" jsonschema:"normalized sender address"`
	Count  int    `json:"count" jsonschema:"number of messages"`
}

func newMessageSummary(m cleanup.Message) MessageSummary {
	return MessageSummary{
		ID:           m.ID,
		ThreadID:     m.ThreadID,
		From:         parseEmailAddress(m.From),
		Subject:      m.Subject,
		Date:         m.Date.Format(dateFormat),
		AgeDays:      m.AgeDays,
		Snippet:      m.Snippet,
		LabelIDs:     m.LabelIDs,
		SizeEstimate: m.SizeEstimate,
		Signals:      cleanup.Classify(m),
	}
}

func newSenderCounts(stats cleanup.SenderStats) []SenderCount {
	counts := make([]SenderCount, 0, len(stats))
	for _, st := range stats {
		counts = append(counts, SenderCount{Sender: st.Sender, Count: st.Count})
	}
	return counts
}

func senderStats(counts []SenderCount) cleanup.SenderStats {
	stats := make(cleanup.SenderStats, 0, len(counts))
	for _, sc := range counts {
		stats = append(stats, cleanup.SenderStat{Sender: sc.Sender, Count: sc.Count})
	}
	return stats
}

func parseEmailAddress(from string) EmailAddress {
	addr := EmailAddress{}

	if idx := strings.Index(from, "<"); idx != -1 {
		addr.Name = strings.TrimSpace(from[:idx])
		if endIdx := strings.Index(from[idx:], ">"); endIdx != -1 {
			addr.Email = strings.TrimSpace(from[idx+1 : idx+endIdx])
		}
	} else {
		addr.Email = strings.TrimSpace(from)
	}

	addr.Name = strings.Trim(addr.Name, "\"")

	return addr
}
