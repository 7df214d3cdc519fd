package cleanup

import (
	"sort"
	"strings"
)

// SenderStat is one sender's message count in the working set.
type SenderStat struct {
	Sender string
	Count  int
}

// SenderStats is ordered descending by count, ties broken by first
// appearance in the input.
type SenderStats []SenderStat

// Senders returns the sender strings in stats order.
func (s SenderStats) Senders() []string {
	senders := make([]string, 0, len(s))
	for _, st := range s {
		senders = append(senders, st.Sender)
	}
	return senders
}

// Aggregate recomputes per-sender counts from the full working set. It is
// a full recomputation on purpose; incremental patching invites staleness.
func Aggregate(messages []Message) SenderStats {
	counts := make(map[string]int, len(messages))
	firstSeen := make(map[string]int, len(messages))

	for i, msg := range messages {
		sender := NormalizeSender(msg.From)
		if _, ok := counts[sender]; !ok {
			firstSeen[sender] = i
		}
		counts[sender]++
	}

	stats := make(SenderStats, 0, len(counts))
	for sender, count := range counts {
		stats = append(stats, SenderStat{Sender: sender, Count: count})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return firstSeen[stats[i].Sender] < firstSeen[stats[j].Sender]
	})

	return stats
}

// NormalizeSender extracts the bare address from a "Name <address>" header
// value; anything else is returned as-is.
func NormalizeSender(from string) string {
	open := strings.Index(from, "<")
	if open == -1 {
		return from
	}
	end := strings.Index(from[open:], ">")
	if end == -1 {
		return from
	}
	return from[open+1 : open+end]
}
