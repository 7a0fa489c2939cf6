package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/ufcstats/internal/event"
)

// SortOrder represents the available orderings of the event preview
type SortOrder string

const (
	SortNone   SortOrder = "none"
	SortByDate SortOrder = "date"
	SortByName SortOrder = "name"
)

// sortEvents sorts a slice of events based on the specified sort order.
// SortNone keeps listing order.
func sortEvents(events []*event.Event, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(events, func(i, j int) bool {
			return compareByDate(events[i], events[j])
		})
	case SortByName:
		sort.SliceStable(events, func(i, j int) bool {
			return strings.ToLower(events[i].Name) < strings.ToLower(events[j].Name)
		})
	}
}

// compareByDate reports whether i comes before j, most recent first.
// Events with unreadable dates go last.
func compareByDate(i, j *event.Event) bool {
	dateI := event.ParseDate(i.Date)
	dateJ := event.ParseDate(j.Date)

	if !dateI.IsZero() && !dateJ.IsZero() {
		return dateI.After(dateJ)
	}

	// If only one date is valid, put the valid one first
	if !dateI.IsZero() {
		return true
	}
	return false
}
