// Package query builds Gmail search query strings from filter fields.
package query

import (
	"fmt"
	"strings"
)

// FilterSpec describes a single mailbox search.
type FilterSpec struct {
	DaysOld    int
	UnreadOnly bool
	Sender     string
	Subject    string
	Label      string
}

// Labels handled through dedicated operators (is:unread, in:spam, ...) rather
// than label: terms.
var reservedLabels = map[string]struct{}{
	"UNREAD":    {},
	"INBOX":     {},
	"SENT":      {},
	"DRAFT":     {},
	"SPAM":      {},
	"TRASH":     {},
	"STARRED":   {},
	"IMPORTANT": {},
}

// Build assembles a Gmail search query. Terms are joined with single spaces;
// Gmail treats them as an implicit AND.
func Build(spec FilterSpec) string {
	var parts []string

	if spec.DaysOld > 0 {
		parts = append(parts, fmt.Sprintf("older_than:%dd", spec.DaysOld))
	}

	if spec.UnreadOnly {
		parts = append(parts, "is:unread")
	}

	if spec.Sender != "" {
		parts = append(parts, term("from", spec.Sender))
	}

	if spec.Subject != "" {
		parts = append(parts, term("subject", spec.Subject))
	}

	if label := spec.Label; label != "" && label != "All" {
		if _, reserved := reservedLabels[strings.ToUpper(label)]; !reserved {
			parts = append(parts, term("label", label))
		}
	}

	return strings.Join(parts, " ")
}

// term quotes multi-word values so the search grammar treats them as one phrase.
func term(op, value string) string {
	if strings.Contains(value, " ") {
		return fmt.Sprintf(`%s:"%s"`, op, value)
	}
	return fmt.Sprintf("%s:%s", op, value)
}
