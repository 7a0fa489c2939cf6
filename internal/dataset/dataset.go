// Package dataset accumulates the records of one run and lays them out as tables.
package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pfrederiksen/ufcstats/internal/event"
)

// Table names double as the output file names (without extension).
const (
	EventsTableName = "event_data"
	FightsTableName = "fight_data_by_fighter"
)

var (
	EventHeader = []string{"Event Name", "Event URL", "Event Date"}
	FightHeader = []string{
		"Event Name", "W/L", "FIGHTER", "KD", "STR", "TD", "SUB (stats)",
		"WEIGHT CLASS", "METHOD", "SUB", "ROUND", "TIME",
	}
)

// ErrInconsistent is returned by Check when the fight records do not line up in pairs.
var ErrInconsistent = errors.New("inconsistent fight records")

// maxReportedIssues bounds how many problems Check spells out in its error.
const maxReportedIssues = 5

// Table is a header plus rows of text cells.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Dataset holds events and fights in the order they were extracted.
type Dataset struct {
	events []*event.Event
	fights []*event.Fight
}

// New creates an empty Dataset.
func New() *Dataset {
	return &Dataset{
		events: make([]*event.Event, 0),
		fights: make([]*event.Fight, 0),
	}
}

// AddEvent appends an event.
func (d *Dataset) AddEvent(evt *event.Event) {
	d.events = append(d.events, evt)
}

// AddFights appends fight records.
func (d *Dataset) AddFights(fights ...*event.Fight) {
	d.fights = append(d.fights, fights...)
}

// Events returns a copy of the events in insertion order.
func (d *Dataset) Events() []*event.Event {
	out := make([]*event.Event, len(d.events))
	copy(out, d.events)
	return out
}

// Fights returns a copy of the fight records in insertion order.
func (d *Dataset) Fights() []*event.Fight {
	out := make([]*event.Fight, len(d.fights))
	copy(out, d.fights)
	return out
}

// Bouts returns the number of fights, i.e. pairs of fight records.
func (d *Dataset) Bouts() int {
	return len(d.fights) / 2
}

// Check verifies that fight records come in pairs describing the same bout.
// The returned error wraps ErrInconsistent.
func (d *Dataset) Check() error {
	var issues []string

	if len(d.fights)%2 != 0 {
		issues = append(issues, fmt.Sprintf("odd number of fight records: %d", len(d.fights)))
	}

	for i := 0; i+1 < len(d.fights); i += 2 {
		a, b := d.fights[i], d.fights[i+1]
		switch {
		case a.EventName != b.EventName:
			issues = append(issues, fmt.Sprintf("records %d and %d belong to different events", i, i+1))
		case a.Bout() != b.Bout():
			issues = append(issues, fmt.Sprintf("records %d and %d describe different bouts", i, i+1))
		case a.Outcome == event.Win && b.Outcome == event.Win:
			issues = append(issues, fmt.Sprintf("records %d and %d are both wins", i, i+1))
		}
	}

	if len(issues) == 0 {
		return nil
	}

	total := len(issues)
	if total > maxReportedIssues {
		issues = append(issues[:maxReportedIssues], fmt.Sprintf("%d more", total-maxReportedIssues))
	}
	return fmt.Errorf("%w: %s", ErrInconsistent, strings.Join(issues, "; "))
}

// EventTable lays out the events table.
func (d *Dataset) EventTable() Table {
	rows := make([][]string, 0, len(d.events))
	for _, evt := range d.events {
		rows = append(rows, []string{evt.Name, evt.SourceURL, evt.Date})
	}
	return Table{Name: EventsTableName, Header: EventHeader, Rows: rows}
}

// FightTable lays out the per-fighter fights table.
func (d *Dataset) FightTable() Table {
	rows := make([][]string, 0, len(d.fights))
	for _, f := range d.fights {
		rows = append(rows, []string{
			f.EventName,
			string(f.Outcome),
			f.Fighter,
			f.Knockdowns,
			f.SignificantStrikes,
			f.Takedowns,
			f.SubmissionAttempts,
			f.WeightClass,
			f.Method,
			f.MethodDetail,
			f.Round,
			f.Time,
		})
	}
	return Table{Name: FightsTableName, Header: FightHeader, Rows: rows}
}

// Tables returns the events table followed by the fights table.
func (d *Dataset) Tables() []Table {
	return []Table{d.EventTable(), d.FightTable()}
}
