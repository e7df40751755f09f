package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fedwatch/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMemoryStoreUpsertDocumentIdempotent(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.UpsertDocument(ctx, domain.DocStatement, day(2025, 1, 29), "v1"))
	require.NoError(t, store.UpsertDocument(ctx, domain.DocStatement, day(2025, 1, 29), "v2"))

	assert.Equal(t, 1, store.DocumentCount(domain.DocStatement))
	body, ok := store.Document(domain.DocStatement, day(2025, 1, 29))
	require.True(t, ok)
	assert.Equal(t, "v2", body)
}

func TestMemoryStoreLatestDate(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	got, err := store.LatestDate(ctx, domain.DocMinutes)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	require.NoError(t, store.UpsertDocument(ctx, domain.DocMinutes, day(2024, 12, 18), "old"))
	require.NoError(t, store.UpsertDocument(ctx, domain.DocMinutes, day(2025, 1, 8), "new"))

	got, err = store.LatestDate(ctx, domain.DocMinutes)
	require.NoError(t, err)
	assert.Equal(t, day(2025, 1, 8), got)
}

func TestMemoryStoreRecentVerdictsOrderAndReplace(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	first := domain.Verdict{AnchorDate: day(2024, 12, 18)}
	first.Content.MeetingCycleSynthesis.PolicyRegime.Current = "old regime"
	second := domain.Verdict{AnchorDate: day(2025, 1, 8)}

	require.NoError(t, store.UpsertVerdict(ctx, first))
	require.NoError(t, store.UpsertVerdict(ctx, second))

	verdicts, err := store.RecentVerdicts(ctx, 6)
	require.NoError(t, err)
	require.Len(t, verdicts, 2)
	assert.Equal(t, day(2025, 1, 8), verdicts[0].AnchorDate)
	assert.Equal(t, day(2024, 12, 18), verdicts[1].AnchorDate)

	// Re-upserting an anchor replaces the whole row, not merges it.
	replacement := domain.Verdict{AnchorDate: day(2024, 12, 18)}
	replacement.Content.MeetingCycleSynthesis.PolicyRegime.Current = "new regime"
	require.NoError(t, store.UpsertVerdict(ctx, replacement))

	assert.Equal(t, 2, store.VerdictCount())
	latest, err := store.RecentVerdicts(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, "new regime", latest[1].Content.MeetingCycleSynthesis.PolicyRegime.Current)

	limited, err := store.RecentVerdicts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, day(2025, 1, 8), limited[0].AnchorDate)
}
