package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fedwatch/internal/domain"
	"fedwatch/internal/ports"
)

// historyDepth is how many trailing verdicts accompany the analysis input.
const historyDepth = 6

// ErrMissingAnchor is returned when a run reaches commit with neither a
// statement nor a minutes date in the aligned cycle. The novelty decision
// cannot approve such a cycle, so an occurrence signals a logic bug.
var ErrMissingAnchor = errors.New("aligned cycle has neither statement nor minutes date")

// ErrAnalysisFailed marks a run that reached the analysis stage and could not
// produce a valid structured result. The cause is attached.
var ErrAnalysisFailed = errors.New("analysis failed")

// Status is the user-visible outcome of one workflow run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
)

// Report summarizes one run for the caller.
type Report struct {
	Status     Status
	Message    string
	AnchorDate time.Time
}

// WorkflowDeps wires all driven adapters into the orchestration workflow.
type WorkflowDeps struct {
	Fetcher  ports.DocumentFetcher
	Store    ports.ReleaseStore
	Analyzer ports.Analyzer
	Notifier ports.Notifier
	Logger   *slog.Logger
	Now      func() time.Time
}

// Workflow implements the ingestion-alignment-decision cycle.
type Workflow struct {
	fetcher  ports.DocumentFetcher
	store    ports.ReleaseStore
	analyzer ports.Analyzer
	notifier ports.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewWorkflow constructs the orchestration component.
func NewWorkflow(deps WorkflowDeps) *Workflow {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{
		fetcher:  deps.Fetcher,
		store:    deps.Store,
		analyzer: deps.Analyzer,
		notifier: deps.Notifier,
		logger:   logger,
		now:      now,
	}
}

// Run executes one full cycle: fetch, write-through, align, decide, and when
// warranted analyze and commit. A zero override auto-detects from current
// source state; a non-zero override forces that cycle's URLs to be probed.
// Document-level failures are absorbed; analysis and verdict-commit failures
// fail the run.
func (w *Workflow) Run(ctx context.Context, override time.Time) (Report, error) {
	fetched, err := w.fetcher.FetchAll(ctx, override)
	if err != nil {
		return Report{Status: StatusError, Message: err.Error()}, fmt.Errorf("fetch documents: %w", err)
	}

	w.persistFetched(ctx, fetched)

	latest, err := w.latestDates(ctx)
	if err != nil {
		return Report{Status: StatusError, Message: err.Error()}, err
	}

	history, err := w.store.RecentVerdicts(ctx, historyDepth)
	if err != nil {
		err = fmt.Errorf("load verdict history: %w", err)
		return Report{Status: StatusError, Message: err.Error()}, err
	}
	var last *domain.Verdict
	if len(history) > 0 {
		last = &history[0]
	}

	cycle := Align(latest, fetched)
	outcome := Decide(cycle, last)
	w.logger.Info("novelty decision",
		"run", outcome.Run,
		"reason", outcome.Reason,
		"target_date", formatOrNone(cycle.TargetDate))

	if !outcome.Run {
		return Report{Status: StatusSkipped, Message: outcome.Reason}, nil
	}

	if w.analyzer == nil {
		err = errors.New("no analyzer configured")
		return Report{Status: StatusError, Message: err.Error()}, err
	}

	result, err := w.analyzer.Analyze(ctx, cycle, historicalInput(history))
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
		return Report{Status: StatusError, Message: err.Error()}, err
	}

	anchor, err := anchorDate(cycle)
	if err != nil {
		// Unreachable when the decision logic is correct; never commit here.
		w.logger.Error("missing anchor at commit time", "target_date", formatOrNone(cycle.TargetDate))
		return Report{Status: StatusError, Message: err.Error()}, err
	}

	verdict := domain.Verdict{
		AnchorDate:    anchor,
		ExecutionDate: w.now(),
		Dates:         cycleDates(cycle),
		Content:       *result,
	}
	if err := w.store.UpsertVerdict(ctx, verdict); err != nil {
		err = fmt.Errorf("commit verdict: %w", err)
		return Report{Status: StatusError, Message: err.Error()}, err
	}

	w.broadcast(ctx, verdict)

	return Report{Status: StatusSuccess, Message: outcome.Reason, AnchorDate: anchor}, nil
}

// persistFetched writes through every published, non-future document. Write
// failures are isolated per type and logged; a single source must not block
// saving the other three.
func (w *Workflow) persistFetched(ctx context.Context, fetched domain.FetchSet) {
	today := domain.Day(w.now())
	for _, t := range domain.DocumentTypes() {
		r := fetched[t]
		if !r.Published() {
			continue
		}
		if domain.Day(r.ReleaseDate).After(today) {
			w.logger.Warn("skipping future-dated document",
				"type", string(t),
				"release_date", domain.FormatDate(r.ReleaseDate))
			continue
		}
		if err := w.store.UpsertDocument(ctx, t, r.ReleaseDate, r.Body); err != nil {
			w.logger.Error("persist document failed", "type", string(t), "error", err)
		}
	}
}

func (w *Workflow) latestDates(ctx context.Context) (map[domain.DocumentType]time.Time, error) {
	latest := make(map[domain.DocumentType]time.Time, len(domain.DocumentTypes()))
	for _, t := range domain.DocumentTypes() {
		d, err := w.store.LatestDate(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("load latest %s date: %w", string(t), err)
		}
		latest[t] = d
	}
	return latest, nil
}

// broadcast delivers the digest on a best-effort basis; delivery failure
// never fails an already-committed run.
func (w *Workflow) broadcast(ctx context.Context, verdict domain.Verdict) {
	if w.notifier == nil {
		return
	}
	if err := w.notifier.PublishDigest(ctx, buildDigest(verdict)); err != nil {
		w.logger.Error("digest delivery failed", "error", err)
	}
}

// anchorDate selects the key a verdict persists under: the statement date
// when present, else the minutes date. Never silently defaulted.
func anchorDate(cycle domain.AlignedCycle) (time.Time, error) {
	if s := cycle.Slot(domain.DocStatement); s.Present() {
		return s.ReleaseDate, nil
	}
	if m := cycle.Slot(domain.DocMinutes); m.Present() {
		return m.ReleaseDate, nil
	}
	return time.Time{}, ErrMissingAnchor
}

func cycleDates(cycle domain.AlignedCycle) map[domain.DocumentType]time.Time {
	dates := make(map[domain.DocumentType]time.Time)
	for t, s := range cycle.Slots {
		if s.Present() {
			dates[t] = s.ReleaseDate
		}
	}
	return dates
}

func historicalInput(history []domain.Verdict) []domain.HistoricalVerdict {
	out := make([]domain.HistoricalVerdict, 0, len(history))
	for _, v := range history {
		out = append(out, v.Historical())
	}
	return out
}

func formatOrNone(t time.Time) string {
	if t.IsZero() {
		return "none"
	}
	return domain.FormatDate(t)
}
