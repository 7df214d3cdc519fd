// Package cleanup contains the mailbox cleanup core: message aggregation,
// heuristic classification, recommendations and batched deletion.
package cleanup

import (
	"net/mail"
	"time"

	"google.golang.org/api/gmail/v1"
)

// Message is one fetched mailbox entry. Immutable after construction; AgeDays
// is a snapshot relative to fetch time and is not re-derived later.
type Message struct {
	ID           string
	ThreadID     string
	From         string
	Subject      string
	Date         time.Time
	AgeDays      int
	Snippet      string
	LabelIDs     []string
	SizeEstimate int64
}

// NewMessage maps a Gmail metadata response to a Message. An unparseable or
// missing Date header falls back to now (age 0); future-dated mail is clamped
// to age 0 rather than going negative.
func NewMessage(msg *gmail.Message, now time.Time) Message {
	m := Message{
		ID:           msg.Id,
		ThreadID:     msg.ThreadId,
		From:         "Unknown",
		Subject:      "(No Subject)",
		Snippet:      msg.Snippet,
		LabelIDs:     msg.LabelIds,
		SizeEstimate: msg.SizeEstimate,
	}

	var dateHeader string
	if msg.Payload != nil {
		for _, h := range msg.Payload.Headers {
			switch h.Name {
			case "From":
				if h.Value != "" {
					m.From = h.Value
				}
			case "Subject":
				if h.Value != "" {
					m.Subject = h.Value
				}
			case "Date":
				dateHeader = h.Value
			}
		}
	}

	m.Date = now
	if dateHeader != "" {
		if parsed, err := mail.ParseDate(dateHeader); err == nil {
			m.Date = parsed
		}
	}

	if age := int(now.Sub(m.Date).Hours() / 24); age > 0 {
		m.AgeDays = age
	}

	return m
}
