package domain

import "time"

// DocumentType enumerates the four FOMC communication types tracked by the system.
type DocumentType string

const (
	DocStatement          DocumentType = "statement"
	DocMinutes            DocumentType = "minutes"
	DocProjectionNote     DocumentType = "projection_note"
	DocImplementationNote DocumentType = "implementation_note"
)

// DocumentTypes lists every tracked type in a stable order.
func DocumentTypes() []DocumentType {
	return []DocumentType{DocStatement, DocMinutes, DocProjectionNote, DocImplementationNote}
}

// FetchResult is the outcome of probing one source endpoint. A zero ReleaseDate
// means the document is not published (or the probe failed and degraded to absent).
type FetchResult struct {
	Type        DocumentType
	Body        string
	SourceURL   string
	ReleaseDate time.Time
}

// Published reports whether the source resolved an actual release.
func (r FetchResult) Published() bool {
	return !r.ReleaseDate.IsZero()
}

// FetchSet groups one cycle's fetch results keyed by document type.
type FetchSet map[DocumentType]FetchResult

// Slot is one document's place in an aligned cycle. An absent slot has a zero
// date and empty body.
type Slot struct {
	ReleaseDate time.Time
	Body        string
}

// Present reports whether the slot survived the knockout.
func (s Slot) Present() bool {
	return !s.ReleaseDate.IsZero()
}

// AlignedCycle is the reconciled view for one candidate meeting cycle.
// Each type's slot is filled only when its latest known date equals TargetDate.
type AlignedCycle struct {
	TargetDate time.Time
	Slots      map[DocumentType]Slot
}

// Slot returns the slot for the given type, absent if never set.
func (c AlignedCycle) Slot(t DocumentType) Slot {
	return c.Slots[t]
}

// Empty reports whether no document survived alignment.
func (c AlignedCycle) Empty() bool {
	for _, s := range c.Slots {
		if s.Present() {
			return false
		}
	}
	return true
}

// Verdict is one persisted analysis record, keyed by its anchor date.
// A later run with the same anchor date fully replaces the row.
type Verdict struct {
	AnchorDate    time.Time
	ExecutionDate time.Time
	Dates         map[DocumentType]time.Time
	Content       AnalysisResult
}

// Date returns the per-type release date recorded with the verdict,
// zero when that type did not contribute to the cycle.
func (v Verdict) Date(t DocumentType) time.Time {
	return v.Dates[t]
}

// HistoricalVerdict is a verdict prepared for analysis input: execution
// metadata is stripped because it is not analytic signal.
type HistoricalVerdict struct {
	AnchorDate time.Time               `json:"anchor_date"`
	Dates      map[DocumentType]string `json:"release_dates"`
	Content    AnalysisResult          `json:"content"`
}

// Historical strips the verdict down to its analytic content.
func (v Verdict) Historical() HistoricalVerdict {
	dates := make(map[DocumentType]string, len(v.Dates))
	for t, d := range v.Dates {
		if !d.IsZero() {
			dates[t] = FormatDate(d)
		}
	}
	return HistoricalVerdict{
		AnchorDate: v.AnchorDate,
		Dates:      dates,
		Content:    v.Content,
	}
}

// Day truncates a timestamp to its UTC calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay compares two timestamps as UTC calendar dates.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// ParseDate parses a YYYY-MM-DD string into a UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
