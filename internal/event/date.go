package event

import (
	"strings"
	"time"
)

// ParseDate attempts to parse an event date such as "March 15, 2025".
// Returns time.Time{} (zero value) if parsing fails or the date was not found.
func ParseDate(dateText string) time.Time {
	dateText = strings.TrimSpace(dateText)
	if dateText == "" || dateText == DateNotFound {
		return time.Time{}
	}

	layouts := []string{
		"January 2, 2006",
		"Jan 2, 2006",
		"January 2 2006",
		"Jan. 2, 2006",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, dateText); err == nil {
			return t
		}
	}

	return time.Time{}
}

// DateRange returns the earliest and latest parseable dates among events.
// Both are zero when no event date parses.
func DateRange(events []*Event) (first, last time.Time) {
	for _, evt := range events {
		t := ParseDate(evt.Date)
		if t.IsZero() {
			continue
		}
		if first.IsZero() || t.Before(first) {
			first = t
		}
		if last.IsZero() || t.After(last) {
			last = t
		}
	}
	return first, last
}
