package ports

import (
	"context"
	"time"

	"fedwatch/internal/domain"
)

// DocumentFetcher probes all four communication endpoints for a given date
// hint. A zero hint means "probe today's URLs". Individual source failures
// degrade to absent results; FetchAll only errors when nothing could run.
type DocumentFetcher interface {
	FetchAll(ctx context.Context, hint time.Time) (domain.FetchSet, error)
}

// ReleaseStore persists documents and verdicts and answers latest-state queries.
type ReleaseStore interface {
	// LatestDate returns the most recent persisted release date for the type,
	// zero when none is recorded.
	LatestDate(ctx context.Context, t domain.DocumentType) (time.Time, error)

	// LatestVerdict returns the most recent verdict, nil when none exists.
	LatestVerdict(ctx context.Context) (*domain.Verdict, error)

	// RecentVerdicts returns up to n verdicts ordered by anchor date descending.
	RecentVerdicts(ctx context.Context, n int) ([]domain.Verdict, error)

	// UpsertDocument insert-or-replaces one document keyed by (type, date).
	UpsertDocument(ctx context.Context, t domain.DocumentType, date time.Time, body string) error

	// UpsertVerdict insert-or-replaces one verdict keyed by anchor date,
	// fully overwriting any prior row.
	UpsertVerdict(ctx context.Context, v domain.Verdict) error
}

// Analyzer runs the structured analysis pass over one aligned cycle plus
// trailing history. Any parse or validation failure is terminal for the run.
type Analyzer interface {
	Analyze(ctx context.Context, cycle domain.AlignedCycle, history []domain.HistoricalVerdict) (*domain.AnalysisResult, error)
}

// Notifier delivers a rendered analysis digest to subscribers.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when workflow runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
