// Package eventlog keeps a bounded, session-scoped history of cleanup
// actions. Append-only and in-memory; nothing survives a restart.
package eventlog

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// defaultCapacity bounds the history; oldest entries are evicted first.
const defaultCapacity = 100

// Entry is one recorded action.
type Entry struct {
	Time   time.Time `json:"time"`
	Action string    `json:"action"`
	Detail string    `json:"detail"`
	Count  int       `json:"count"`
}

// NewRecorder creates a recorder holding at most capacity entries;
// capacity <= 0 selects the default.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Recorder{
		capacity: capacity,
		now:      time.Now,
	}
}

// Recorder is a thread-safe append-only action history.
type Recorder struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry
	now      func() time.Time
}

// Record appends an entry and emits it as a structured log event.
func (r *Recorder) Record(action, detail string, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, Entry{
		Time:   r.now(),
		Action: action,
		Detail: detail,
		Count:  count,
	})

	if len(r.entries) > r.capacity {
		r.entries = r.entries[len(r.entries)-r.capacity:]
	}

	log.Info().Str("action", action).Str("detail", detail).Int("count", count).
		Msg("action recorded")
}

// Entries returns the recorded history, newest first.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, len(r.entries))
	for i, e := range r.entries {
		out[len(r.entries)-1-i] = e
	}

	return out
}
