package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fedwatch/internal/domain"
)

func cycleWith(target time.Time, slots map[domain.DocumentType]domain.Slot) domain.AlignedCycle {
	return domain.AlignedCycle{TargetDate: target, Slots: slots}
}

func verdictWith(dates map[domain.DocumentType]time.Time) *domain.Verdict {
	return &domain.Verdict{AnchorDate: day(2024, 12, 18), Dates: dates}
}

func TestDecideNewMinutesRuns(t *testing.T) {
	t.Parallel()

	cycle := cycleWith(day(2025, 1, 8), map[domain.DocumentType]domain.Slot{
		domain.DocMinutes: {ReleaseDate: day(2025, 1, 8)},
	})
	last := verdictWith(map[domain.DocumentType]time.Time{
		domain.DocMinutes: day(2024, 12, 18),
	})

	outcome := Decide(cycle, last)
	assert.True(t, outcome.Run)
	assert.Contains(t, outcome.Reason, "2025-01-08")
}

func TestDecideMinutesPrecedence(t *testing.T) {
	t.Parallel()

	// Both slots present, minutes unchanged: skip even though the statement
	// date moved, because minutes dominates the novelty signal.
	cycle := cycleWith(day(2025, 1, 8), map[domain.DocumentType]domain.Slot{
		domain.DocMinutes:   {ReleaseDate: day(2025, 1, 8)},
		domain.DocStatement: {ReleaseDate: day(2025, 1, 8)},
	})
	last := verdictWith(map[domain.DocumentType]time.Time{
		domain.DocMinutes:   day(2025, 1, 8),
		domain.DocStatement: day(2024, 12, 18),
	})

	outcome := Decide(cycle, last)
	assert.False(t, outcome.Run)
	assert.Equal(t, "minutes already analyzed", outcome.Reason)
}

func TestDecideStatementFallback(t *testing.T) {
	t.Parallel()

	cycle := cycleWith(day(2025, 1, 29), map[domain.DocumentType]domain.Slot{
		domain.DocStatement: {ReleaseDate: day(2025, 1, 29)},
	})
	last := verdictWith(map[domain.DocumentType]time.Time{
		domain.DocStatement: day(2024, 12, 18),
	})

	outcome := Decide(cycle, last)
	assert.True(t, outcome.Run)
	assert.Contains(t, outcome.Reason, "new statement (2025-01-29)")
}

func TestDecideStatementUnchangedSkips(t *testing.T) {
	t.Parallel()

	cycle := cycleWith(day(2025, 1, 29), map[domain.DocumentType]domain.Slot{
		domain.DocStatement: {ReleaseDate: day(2025, 1, 29)},
	})
	last := verdictWith(map[domain.DocumentType]time.Time{
		domain.DocStatement: day(2025, 1, 29),
	})

	outcome := Decide(cycle, last)
	assert.False(t, outcome.Run)
}

func TestDecideNeitherSlotPresent(t *testing.T) {
	t.Parallel()

	// Projection-only cycle: neither novelty signal exists.
	cycle := cycleWith(day(2025, 1, 29), map[domain.DocumentType]domain.Slot{
		domain.DocProjectionNote: {ReleaseDate: day(2025, 1, 29)},
	})

	outcome := Decide(cycle, nil)
	assert.False(t, outcome.Run)
	assert.Equal(t, "no new releases", outcome.Reason)
}

func TestDecideEmptyCycle(t *testing.T) {
	t.Parallel()

	outcome := Decide(domain.AlignedCycle{}, nil)
	assert.False(t, outcome.Run)
	assert.Equal(t, "no release dates recorded", outcome.Reason)
}

func TestDecideFirstEverMinutesRuns(t *testing.T) {
	t.Parallel()

	cycle := cycleWith(day(2025, 1, 8), map[domain.DocumentType]domain.Slot{
		domain.DocMinutes: {ReleaseDate: day(2025, 1, 8)},
	})

	outcome := Decide(cycle, nil)
	assert.True(t, outcome.Run)
}
