package scraper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pfrederiksen/ufcstats/internal/document"
	"github.com/pfrederiksen/ufcstats/internal/event"
	"github.com/pfrederiksen/ufcstats/internal/logger"
)

const (
	fightTableSelector = "tbody.b-fight-details__table-body"
	fightRowSelector   = "tr.b-fight-details__table-row"
	cellSelector       = "td.b-fight-details__table-col"
	textSelector       = "p.b-fight-details__table-text"
	flagSelector       = "i.b-flag__text"

	minCells        = 10
	noMarker        = "n/a"
	namePlaceholder = "N/D"
)

// Cell positions within a fight row.
const (
	colOutcome = iota
	colFighters
	colKnockdowns
	colStrikes
	colTakedowns
	colSubAttempts
	colWeightClass
	colMethod
	colRound
	colTime
)

var (
	// ErrNoFightTable is returned when an event page has no fight results table.
	ErrNoFightTable = errors.New("fight table not found")
	// ErrTooFewCells is returned for rows with fewer than ten cells.
	ErrTooFewCells = errors.New("too few cells in fight row")
	// ErrMissingFighters is returned when a row does not name two fighters.
	ErrMissingFighters = errors.New("fewer than two fighter names in fight row")
)

// RowError describes a fight row that was skipped.
type RowError struct {
	Fighter1 string
	Fighter2 string
	Err      error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s vs %s: %v", e.Fighter1, e.Fighter2, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ExtractFights returns two Fight records per readable row of the event's fight
// table, in row order. Rows that cannot be read are logged and skipped. When the
// page has no fight table ErrNoFightTable is returned with no records.
func ExtractFights(doc document.Node, eventName string) ([]*event.Fight, error) {
	body := doc.Find(fightTableSelector)
	if body == nil {
		return nil, ErrNoFightTable
	}

	rows := body.FindAll(fightRowSelector)
	logger.Info("Found fight rows", logger.Fields{"event": eventName, "rows": len(rows)})

	fights := make([]*event.Fight, 0, 2*len(rows))
	for i, row := range rows {
		logger.IncrCounter("fights.rows")

		pair, res, err := ExtractFightRow(row, eventName)
		if err != nil {
			logger.IncrCounter("fights.skipped")
			fields := logger.Fields{"event": eventName, "row": i + 1}
			var rowErr *RowError
			if errors.As(err, &rowErr) {
				fields["fighter1"] = rowErr.Fighter1
				fields["fighter2"] = rowErr.Fighter2
			}
			if errors.Is(err, ErrTooFewCells) || errors.Is(err, ErrMissingFighters) {
				logger.Warn("Skipping fight row", withError(fields, err))
			} else {
				logger.Error("Failed to process fight row", fields, err)
			}
			continue
		}

		logResolution(eventName, i+1, pair, res)
		fights = append(fights, pair...)
	}

	return fights, nil
}

// ExtractFightRow reads one fight row into a pair of records, fighter 1 first.
// It never panics; unexpected failures are returned as *RowError carrying any
// fighter names resolved before the failure.
func ExtractFightRow(row document.Node, eventName string) (fights []*event.Fight, res event.Resolution, err error) {
	names := [2]string{namePlaceholder, namePlaceholder}
	defer func() {
		if r := recover(); r != nil {
			fights, res = nil, ""
			err = &RowError{Fighter1: names[0], Fighter2: names[1], Err: fmt.Errorf("unexpected failure: %v", r)}
		}
	}()

	cells := row.FindAll(cellSelector)
	if len(cells) < minCells {
		return nil, "", &RowError{
			Fighter1: names[0],
			Fighter2: names[1],
			Err:      fmt.Errorf("%w: got %d, want %d", ErrTooFewCells, len(cells), minCells),
		}
	}

	fighterTexts := cells[colFighters].FindAll(textSelector)
	if len(fighterTexts) < 2 {
		return nil, "", &RowError{
			Fighter1: names[0],
			Fighter2: names[1],
			Err:      fmt.Errorf("%w: got %d", ErrMissingFighters, len(fighterTexts)),
		}
	}
	names[0] = extractNth(fighterTexts, 0, "Fighter 1 not found")
	names[1] = extractNth(fighterTexts, 1, "Fighter 2 not found")

	methodTexts := cells[colMethod].FindAll(textSelector)
	method := extractNth(methodTexts, 0, event.NotAvailable)
	detail := extractNth(methodTexts, 1, "")

	marker1, marker2 := outcomeMarkers(cells[colOutcome])
	res = resolveOutcome(marker1, marker2, method)
	outcome1, outcome2 := res.Outcomes()
	if res == event.Unresolved && (marker1 != noMarker || marker2 != noMarker) {
		logger.Warn("Unrecognized outcome markers, recording both fighters as Loss", logger.Fields{
			"event":    eventName,
			"fighter1": names[0],
			"fighter2": names[1],
			"marker1":  marker1,
			"marker2":  marker2,
		})
	}

	kd1, kd2 := statPair(cells, colKnockdowns)
	str1, str2 := statPair(cells, colStrikes)
	td1, td2 := statPair(cells, colTakedowns)
	sub1, sub2 := statPair(cells, colSubAttempts)

	bout := event.Bout{
		WeightClass:  firstLine(extractText(cells[colWeightClass].Find(textSelector), event.NotAvailable)),
		Method:       method,
		MethodDetail: detail,
		Round:        extractText(cells[colRound].Find(textSelector), event.NotAvailable),
		Time:         extractText(cells[colTime].Find(textSelector), event.NotAvailable),
	}

	fights = []*event.Fight{
		event.NewFight(eventName, event.Corner{
			Fighter:            names[0],
			Outcome:            outcome1,
			Knockdowns:         kd1,
			SignificantStrikes: str1,
			Takedowns:          td1,
			SubmissionAttempts: sub1,
		}, bout),
		event.NewFight(eventName, event.Corner{
			Fighter:            names[1],
			Outcome:            outcome2,
			Knockdowns:         kd2,
			SignificantStrikes: str2,
			Takedowns:          td2,
			SubmissionAttempts: sub2,
		}, bout),
	}
	return fights, res, nil
}

// outcomeMarkers returns the lowercased flag text of the first two text elements
// in the outcome cell, or "n/a" where there is no flag.
func outcomeMarkers(cell document.Node) (string, string) {
	texts := cell.FindAll(textSelector)
	markers := [2]string{noMarker, noMarker}
	for i := 0; i < len(markers) && i < len(texts); i++ {
		if flag := texts[i].Find(flagSelector); flag != nil {
			markers[i] = strings.ToLower(flag.Text())
		}
	}
	return markers[0], markers[1]
}

// resolveOutcome applies the outcome rules in priority order: a win marker for
// fighter 1, then for fighter 2, then a draw marker on either side, then a
// no-contest method.
func resolveOutcome(marker1, marker2, method string) event.Resolution {
	switch {
	case marker1 == "win":
		return event.ResolvedFighter1Win
	case marker2 == "win":
		return event.ResolvedFighter2Win
	case marker1 == "draw" || marker2 == "draw":
		return event.ResolvedDraw
	}

	m := strings.ToLower(method)
	if strings.Contains(m, "no contest") || m == "nc" {
		return event.ResolvedNoContest
	}
	return event.Unresolved
}

// statPair returns the two per-fighter values of a stats cell. A missing cell
// yields ("0", "0").
func statPair(cells []document.Node, idx int) (string, string) {
	if idx >= len(cells) {
		return event.NoStat, event.NoStat
	}
	return extractPair(cells[idx], event.NoStat)
}

func logResolution(eventName string, row int, pair []*event.Fight, res event.Resolution) {
	fields := logger.Fields{
		"event":      eventName,
		"row":        row,
		"fighter1":   pair[0].Fighter,
		"fighter2":   pair[1].Fighter,
		"resolution": string(res),
	}

	switch res {
	case event.ResolvedDraw:
		logger.IncrCounter("fights.draws")
		logger.Info("Fight detected as draw, recording both fighters as Loss", fields)
	case event.ResolvedNoContest:
		logger.IncrCounter("fights.no_contests")
		logger.Info("Fight detected as no contest by method, recording both fighters as Loss", fields)
	default:
		fields["outcome1"] = string(pair[0].Outcome)
		fields["outcome2"] = string(pair[1].Outcome)
		logger.Debug("Fight extracted", fields)
	}
}

func withError(fields logger.Fields, err error) logger.Fields {
	fields["reason"] = err.Error()
	return fields
}
