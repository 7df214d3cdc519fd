package cleanup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hal9000y/mailsweep/internal/cleanup"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		from     string
		subject  string
		expected cleanup.Signals
	}{
		{
			name:     "all empty",
			expected: cleanup.Signals{},
		},
		{
			name:     "automated sender",
			from:     "NoReply <noreply@service.example>",
			subject:  "Your account",
			expected: cleanup.Signals{Automated: true},
		},
		{
			name:     "automated sender case insensitive",
			from:     "DoNotReply@service.example",
			subject:  "hi",
			expected: cleanup.Signals{Automated: true},
		},
		{
			name:     "newsletter subject",
			from:     "person@example.com",
			subject:  "Your Weekly Digest",
			expected: cleanup.Signals{Newsletter: true},
		},
		{
			name:     "promotional subject",
			from:     "person@example.com",
			subject:  "50% OFF everything",
			expected: cleanup.Signals{Promotional: true},
		},
		{
			name:     "review worthy subject",
			from:     "billing@example.com",
			subject:  "Invoice #1234",
			expected: cleanup.Signals{ReviewWorthy: true},
		},
		{
			name:    "signals are independent",
			from:    "notification@shop.example",
			subject: "Unsubscribe for a free deal on your receipt",
			expected: cleanup.Signals{
				Automated:    true,
				Newsletter:   true,
				Promotional:  true,
				ReviewWorthy: true,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := cleanup.Message{From: tc.from, Subject: tc.subject}
			assert.Equal(t, tc.expected, cleanup.Classify(msg))
		})
	}
}

func TestClassifyDependsOnlyOnSenderAndSubject(t *testing.T) {
	a := cleanup.Message{ID: "1", From: "noreply@x", Subject: "sale", AgeDays: 5}
	b := cleanup.Message{ID: "2", From: "noreply@x", Subject: "sale", AgeDays: 500, Snippet: "other"}

	assert.Equal(t, cleanup.Classify(a), cleanup.Classify(b))
}
