package event

// Default values substituted when a page is missing the element a field comes from.
const (
	NameNotFound = "Name not found"
	DateNotFound = "Date not found"
	NotAvailable = "N/A"
	NoStat       = "0"
)

// Outcome is a fighter's result. Draws and no-contests are recorded as Loss for
// both fighters, so only two values exist.
type Outcome string

const (
	Win  Outcome = "Win"
	Loss Outcome = "Loss"
)

// Resolution records which rule decided a fight's outcomes.
type Resolution string

const (
	ResolvedFighter1Win Resolution = "fighter1-win"
	ResolvedFighter2Win Resolution = "fighter2-win"
	ResolvedDraw        Resolution = "draw"
	ResolvedNoContest   Resolution = "no-contest"
	Unresolved          Resolution = "unresolved"
)

// Outcomes returns the outcome pair (fighter 1, fighter 2) for a resolution.
func (r Resolution) Outcomes() (Outcome, Outcome) {
	switch r {
	case ResolvedFighter1Win:
		return Win, Loss
	case ResolvedFighter2Win:
		return Loss, Win
	default:
		return Loss, Loss
	}
}

// Event is one event detail page.
type Event struct {
	Name      string `json:"name"`
	SourceURL string `json:"source_url"`
	Date      string `json:"date"`
}

// NewEvent creates an Event, substituting defaults for empty name or date.
func NewEvent(name, sourceURL, date string) *Event {
	if name == "" {
		name = NameNotFound
	}
	if date == "" {
		date = DateNotFound
	}
	return &Event{
		Name:      name,
		SourceURL: sourceURL,
		Date:      date,
	}
}

// Corner holds the per-fighter half of a fight row.
type Corner struct {
	Fighter            string
	Outcome            Outcome
	Knockdowns         string
	SignificantStrikes string
	Takedowns          string
	SubmissionAttempts string
}

// Bout holds the details both fighters of a row share.
type Bout struct {
	WeightClass  string
	Method       string
	MethodDetail string
	Round        string
	Time         string
}

// Fight is one fighter's line of a fight. Every fight produces two of these.
// Stat fields are kept as the raw text shown on the page.
type Fight struct {
	EventName          string  `json:"event_name"`
	Outcome            Outcome `json:"outcome"`
	Fighter            string  `json:"fighter"`
	Knockdowns         string  `json:"kd"`
	SignificantStrikes string  `json:"str"`
	Takedowns          string  `json:"td"`
	SubmissionAttempts string  `json:"sub_attempts"`
	WeightClass        string  `json:"weight_class"`
	Method             string  `json:"method"`
	MethodDetail       string  `json:"method_detail"`
	Round              string  `json:"round"`
	Time               string  `json:"time"`
}

// NewFight combines a corner and the shared bout details into a Fight.
func NewFight(eventName string, c Corner, b Bout) *Fight {
	return &Fight{
		EventName:          eventName,
		Outcome:            c.Outcome,
		Fighter:            c.Fighter,
		Knockdowns:         c.Knockdowns,
		SignificantStrikes: c.SignificantStrikes,
		Takedowns:          c.Takedowns,
		SubmissionAttempts: c.SubmissionAttempts,
		WeightClass:        b.WeightClass,
		Method:             b.Method,
		MethodDetail:       b.MethodDetail,
		Round:              b.Round,
		Time:               b.Time,
	}
}

// Bout returns the shared details of f.
func (f *Fight) Bout() Bout {
	return Bout{
		WeightClass:  f.WeightClass,
		Method:       f.Method,
		MethodDetail: f.MethodDetail,
		Round:        f.Round,
		Time:         f.Time,
	}
}
