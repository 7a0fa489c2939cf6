package event

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name      string
		dateText  string
		wantYear  int
		wantMonth time.Month
		wantDay   int
		wantZero  bool
	}{
		{
			name:      "Full month name",
			dateText:  "March 15, 2025",
			wantYear:  2025,
			wantMonth: time.March,
			wantDay:   15,
		},
		{
			name:      "Single digit day",
			dateText:  "June 1, 2024",
			wantYear:  2024,
			wantMonth: time.June,
			wantDay:   1,
		},
		{
			name:      "Abbreviated month",
			dateText:  "Dec 9, 2023",
			wantYear:  2023,
			wantMonth: time.December,
			wantDay:   9,
		},
		{
			name:      "Surrounding whitespace",
			dateText:  "  April 13, 2024 ",
			wantYear:  2024,
			wantMonth: time.April,
			wantDay:   13,
		},
		{
			name:      "ISO date",
			dateText:  "2024-04-13",
			wantYear:  2024,
			wantMonth: time.April,
			wantDay:   13,
		},
		{
			name:     "Not found placeholder",
			dateText: DateNotFound,
			wantZero: true,
		},
		{
			name:     "Empty",
			dateText: "",
			wantZero: true,
		},
		{
			name:     "Garbage",
			dateText: "sometime next year",
			wantZero: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.dateText)
			if tt.wantZero {
				if !got.IsZero() {
					t.Errorf("ParseDate(%q) = %v, want zero time", tt.dateText, got)
				}
				return
			}
			if got.Year() != tt.wantYear || got.Month() != tt.wantMonth || got.Day() != tt.wantDay {
				t.Errorf("ParseDate(%q) = %v, want %d-%02d-%02d", tt.dateText, got, tt.wantYear, tt.wantMonth, tt.wantDay)
			}
		})
	}
}

func TestDateRange(t *testing.T) {
	events := []*Event{
		{Name: "B", Date: "April 13, 2024"},
		{Name: "A", Date: DateNotFound},
		{Name: "C", Date: "January 20, 2024"},
		{Name: "D", Date: "June 29, 2024"},
	}

	first, last := DateRange(events)
	if first.Month() != time.January || first.Day() != 20 {
		t.Errorf("first = %v, want 2024-01-20", first)
	}
	if last.Month() != time.June || last.Day() != 29 {
		t.Errorf("last = %v, want 2024-06-29", last)
	}

	first, last = DateRange([]*Event{{Date: DateNotFound}})
	if !first.IsZero() || !last.IsZero() {
		t.Errorf("DateRange() with no parseable dates = (%v, %v), want zero", first, last)
	}
}
