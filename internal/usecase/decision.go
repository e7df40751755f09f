package usecase

import (
	"fmt"

	"fedwatch/internal/domain"
)

// Outcome is the terminal result of the novelty decision. Reason is audit
// output only; nothing branches on it downstream.
type Outcome struct {
	Run    bool
	Reason string
}

// Decide applies the novelty rule to an aligned cycle against the last saved
// verdict. Minutes are the authoritative record of a meeting and take
// precedence as the novelty signal whenever present; the statement is only a
// fallback signal for the earlier announcement stage, before minutes exist.
func Decide(cycle domain.AlignedCycle, last *domain.Verdict) Outcome {
	if cycle.TargetDate.IsZero() {
		return Outcome{Run: false, Reason: "no release dates recorded"}
	}

	minutes := cycle.Slot(domain.DocMinutes)
	statement := cycle.Slot(domain.DocStatement)

	var lastMinutes, lastStatement string
	if last != nil {
		if d := last.Date(domain.DocMinutes); !d.IsZero() {
			lastMinutes = domain.FormatDate(d)
		}
		if d := last.Date(domain.DocStatement); !d.IsZero() {
			lastStatement = domain.FormatDate(d)
		}
	}

	if minutes.Present() {
		if date := domain.FormatDate(minutes.ReleaseDate); date != lastMinutes {
			return Outcome{Run: true, Reason: fmt.Sprintf("new minutes (%s)", date)}
		}
		return Outcome{Run: false, Reason: "minutes already analyzed"}
	}

	if statement.Present() {
		if date := domain.FormatDate(statement.ReleaseDate); date != lastStatement {
			return Outcome{Run: true, Reason: fmt.Sprintf("new statement (%s)", date)}
		}
	}

	return Outcome{Run: false, Reason: "no new releases"}
}
