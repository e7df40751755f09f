package usecase

import (
	"time"

	"fedwatch/internal/domain"
)

// Align reconciles the store's latest known dates with the run's fresh fetch
// results into one candidate cycle. The governing date is the maximum of all
// known dates; a type participates only when its latest date equals that
// target exactly. This is a strict equality knockout, not a freshness window:
// a document published weeks before the others is deliberately excluded once
// a newer related release supersedes it as the governing date.
func Align(latest map[domain.DocumentType]time.Time, fetched domain.FetchSet) domain.AlignedCycle {
	cycle := domain.AlignedCycle{Slots: make(map[domain.DocumentType]domain.Slot)}

	var target time.Time
	for _, d := range latest {
		if d.After(target) {
			target = d
		}
	}
	if target.IsZero() {
		// Nothing recorded anywhere: the cycle stays all-absent.
		return cycle
	}
	cycle.TargetDate = domain.Day(target)

	for t, d := range latest {
		if d.IsZero() || !domain.SameDay(d, target) {
			continue
		}
		slot := domain.Slot{ReleaseDate: cycle.TargetDate}
		// Body comes from this run's fetch when the source resolved the same
		// date; a document stored on an earlier run keeps an empty body slot.
		if f, ok := fetched[t]; ok && f.Published() && domain.SameDay(f.ReleaseDate, target) {
			slot.Body = f.Body
		}
		cycle.Slots[t] = slot
	}
	return cycle
}
