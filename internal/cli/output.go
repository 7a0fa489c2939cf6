package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pfrederiksen/ufcstats/internal/dataset"
	"github.com/pfrederiksen/ufcstats/internal/event"
	"github.com/pfrederiksen/ufcstats/internal/logger"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Summary describes a finished run
type Summary struct {
	StartedAt        time.Time       `json:"started_at"`
	Duration         string          `json:"duration"`
	ListingURL       string          `json:"listing_url"`
	EventCount       int             `json:"event_count"`
	FightCount       int             `json:"fight_count"`
	BoutCount        int             `json:"bout_count"`
	FirstEventDate   string          `json:"first_event_date,omitempty"`
	LastEventDate    string          `json:"last_event_date,omitempty"`
	Consistent       bool            `json:"consistent"`
	ConsistencyError string          `json:"consistency_error,omitempty"`
	Files            []string        `json:"files"`
	Metrics          logger.Snapshot `json:"metrics"`
	EventPreview     []*event.Event  `json:"event_preview"`
	FightPreview     []*event.Fight  `json:"fight_preview"`
}

// SummaryOptions carries the run details that are not in the dataset.
type SummaryOptions struct {
	ListingURL string
	StartedAt  time.Time
	Duration   time.Duration
	Files      []string
	CheckErr   error
	Preview    int
	Sort       SortOrder
	Metrics    logger.Snapshot
}

// NewSummary builds the summary of a run from its dataset.
func NewSummary(ds *dataset.Dataset, opts SummaryOptions) *Summary {
	events := ds.Events()
	fights := ds.Fights()

	s := &Summary{
		StartedAt:  opts.StartedAt,
		Duration:   opts.Duration.Round(time.Millisecond).String(),
		ListingURL: opts.ListingURL,
		EventCount: len(events),
		FightCount: len(fights),
		BoutCount:  ds.Bouts(),
		Consistent: opts.CheckErr == nil,
		Files:      append([]string(nil), opts.Files...),
		Metrics:    opts.Metrics,
	}
	if opts.CheckErr != nil {
		s.ConsistencyError = opts.CheckErr.Error()
	}

	if first, last := event.DateRange(events); !first.IsZero() {
		s.FirstEventDate = first.Format("2006-01-02")
		s.LastEventDate = last.Format("2006-01-02")
	}

	sortEvents(events, opts.Sort)
	s.EventPreview = head(events, opts.Preview)
	s.FightPreview = head(fights, opts.Preview)

	return s
}

func head[T any](items []T, n int) []T {
	if n < len(items) {
		items = items[:n]
	}
	return append([]T{}, items...)
}

// WriteOutput writes the summary in the specified format
func WriteOutput(w io.Writer, s *Summary, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, s)
	case FormatText:
		return writeText(w, s)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the summary as JSON
func writeJSON(w io.Writer, s *Summary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s)
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	t.SetTitle(title)
	return t
}

// writeText outputs the summary as human-readable tables
func writeText(w io.Writer, s *Summary) error {
	totals := newTable(w, "Run summary")
	totals.AppendRows([]table.Row{
		{"Events", s.EventCount},
		{"Fight records", s.FightCount},
		{"Bouts", s.BoutCount},
		{"Rows skipped", s.Metrics.Counters["fights.skipped"]},
		{"Events failed", s.Metrics.Counters["events.failed"]},
		{"Duration", s.Duration},
	})
	if s.FirstEventDate != "" {
		totals.AppendRow(table.Row{"Dates", s.FirstEventDate + " to " + s.LastEventDate})
	}
	totals.Render()

	if !s.Consistent {
		fmt.Fprintf(w, "\nWarning: %s\n", s.ConsistencyError)
	}

	if len(s.EventPreview) > 0 {
		fmt.Fprintln(w)
		events := newTable(w, fmt.Sprintf("Events (%d of %d)", len(s.EventPreview), s.EventCount))
		events.AppendHeader(headerRow(dataset.EventHeader))
		for _, evt := range s.EventPreview {
			events.AppendRow(table.Row{evt.Name, evt.SourceURL, evt.Date})
		}
		events.Render()
	}

	if len(s.FightPreview) > 0 {
		fmt.Fprintln(w)
		fights := newTable(w, fmt.Sprintf("Fights (%d of %d)", len(s.FightPreview), s.FightCount))
		fights.AppendHeader(headerRow(dataset.FightHeader))
		for _, f := range s.FightPreview {
			fights.AppendRow(table.Row{
				f.EventName, f.Outcome, f.Fighter, f.Knockdowns, f.SignificantStrikes, f.Takedowns,
				f.SubmissionAttempts, f.WeightClass, f.Method, f.MethodDetail, f.Round, f.Time,
			})
		}
		fights.Render()
	}

	if len(s.Files) > 0 {
		fmt.Fprintln(w, "\nFiles written:")
		for _, path := range s.Files {
			fmt.Fprintf(w, "  %s\n", path)
		}
	}

	return nil
}

func headerRow(cols []string) table.Row {
	row := make(table.Row, 0, len(cols))
	for _, c := range cols {
		row = append(row, c)
	}
	return row
}
