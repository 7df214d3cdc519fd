package cleanup

import (
	"fmt"
	"strings"
)

// Recommendation is one actionable cleanup suggestion. Ephemeral: recomputed
// from the current working set on every request, never persisted.
type Recommendation struct {
	Type        string
	Title       string
	Description string
	Action      string
	Priority    string
	Senders     []string
}

const (
	// RecBulkDelete flags senders with many unread messages.
	RecBulkDelete = "bulk_delete"
	// RecCategoryDelete flags an AI category worth clearing wholesale.
	RecCategoryDelete = "category_delete"
	// RecOldEmails flags messages older than the age threshold.
	RecOldEmails = "old_emails"
)

const (
	highVolumeThreshold = 10
	oldAgeThresholdDays = 90
	maxExampleSenders   = 5
)

// deletableCategories are the AI categories safe to suggest clearing.
var deletableCategories = []string{"newsletter", "promotional"}

// Recommend combines high-volume detection, AI categories and age thresholds
// into an ordered list of suggestions. categories may be nil. An empty result
// means nothing actionable, not an error.
func Recommend(messages []Message, stats SenderStats, categories map[string][]string) []Recommendation {
	recs := []Recommendation{}

	if rec, ok := highVolumeRecommendation(stats); ok {
		recs = append(recs, rec)
	}

	for _, category := range deletableCategories {
		if rec, ok := categoryRecommendation(category, categories[category], stats); ok {
			recs = append(recs, rec)
		}
	}

	if rec, ok := oldEmailsRecommendation(messages); ok {
		recs = append(recs, rec)
	}

	return recs
}

func highVolumeRecommendation(stats SenderStats) (Recommendation, bool) {
	var senders []string
	for _, st := range stats {
		if st.Count >= highVolumeThreshold {
			senders = append(senders, st.Sender)
		}
	}

	if len(senders) == 0 {
		return Recommendation{}, false
	}

	examples := senders
	if len(examples) > maxExampleSenders {
		examples = examples[:maxExampleSenders]
	}

	description := fmt.Sprintf("Found %d senders with %d+ unread emails each.",
		len(senders), highVolumeThreshold)
	if len(senders) > maxExampleSenders {
		description += fmt.Sprintf(" Showing the top %d.", maxExampleSenders)
	}

	return Recommendation{
		Type:        RecBulkDelete,
		Title:       "High-Volume Senders",
		Description: description,
		Action:      "Consider deleting all emails from these senders",
		Priority:    "high",
		Senders:     examples,
	}, true
}

func categoryRecommendation(category string, senders []string, stats SenderStats) (Recommendation, bool) {
	if len(senders) == 0 {
		return Recommendation{}, false
	}

	counts := make(map[string]int, len(stats))
	for _, st := range stats {
		counts[st.Sender] = st.Count
	}

	total := 0
	for _, sender := range senders {
		total += counts[sender]
	}

	if total == 0 {
		return Recommendation{}, false
	}

	examples := senders
	if len(examples) > maxExampleSenders {
		examples = examples[:maxExampleSenders]
	}

	return Recommendation{
		Type:        RecCategoryDelete,
		Title:       titleCase(category) + " Emails",
		Description: fmt.Sprintf("Found %d emails from %s sources.", total, category),
		Action:      fmt.Sprintf("Delete all %s emails", category),
		Priority:    "medium",
		Senders:     examples,
	}, true
}

func oldEmailsRecommendation(messages []Message) (Recommendation, bool) {
	old := 0
	for _, msg := range messages {
		if msg.AgeDays > oldAgeThresholdDays {
			old++
		}
	}

	if old == 0 {
		return Recommendation{}, false
	}

	return Recommendation{
		Type:        RecOldEmails,
		Title:       fmt.Sprintf("Very Old Emails (%d+ days)", oldAgeThresholdDays),
		Description: fmt.Sprintf("Found %d emails older than %d days.", old, oldAgeThresholdDays),
		Action:      fmt.Sprintf("Delete all emails older than %d days", oldAgeThresholdDays),
		Priority:    "medium",
	}, true
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
