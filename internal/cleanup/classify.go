package cleanup

import "strings"

// Signals are advisory display hints derived from sender and subject text.
// They are independent booleans, not deletion gates.
type Signals struct {
	Automated    bool `json:"automated"`
	Newsletter   bool `json:"newsletter"`
	Promotional  bool `json:"promotional"`
	ReviewWorthy bool `json:"review_worthy"`
}

var (
	automatedSenderHints = []string{"noreply", "no-reply", "donotreply", "notification"}
	newsletterHints      = []string{"newsletter", "digest", "weekly", "monthly", "unsubscribe"}
	promotionalHints     = []string{"sale", "off", "deal", "discount", "offer", "free"}
	reviewWorthyHints    = []string{"invoice", "receipt", "confirm", "action required"}
)

// Classify derives Signals from a message. Pure function of sender and
// subject; matching is case-insensitive substring.
func Classify(msg Message) Signals {
	sender := strings.ToLower(msg.From)
	subject := strings.ToLower(msg.Subject)

	return Signals{
		Automated:    containsAny(sender, automatedSenderHints),
		Newsletter:   containsAny(subject, newsletterHints),
		Promotional:  containsAny(subject, promotionalHints),
		ReviewWorthy: containsAny(subject, reviewWorthyHints),
	}
}

func containsAny(s string, hints []string) bool {
	for _, hint := range hints {
		if strings.Contains(s, hint) {
			return true
		}
	}
	return false
}
