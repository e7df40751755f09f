package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"fedwatch/internal/domain"
	"fedwatch/internal/ports"
)

// MemoryStore is an in-memory ReleaseStore. It backs tests and DSN-less runs
// with the same idempotent upsert semantics as the Postgres store.
type MemoryStore struct {
	mu       sync.RWMutex
	docs     map[domain.DocumentType]map[string]string
	verdicts map[string]domain.Verdict
}

var _ ports.ReleaseStore = (*MemoryStore)(nil)

// NewMemoryStore builds an empty store.
func NewMemoryStore() *MemoryStore {
	docs := make(map[domain.DocumentType]map[string]string)
	for _, t := range domain.DocumentTypes() {
		docs[t] = make(map[string]string)
	}
	return &MemoryStore{docs: docs, verdicts: make(map[string]domain.Verdict)}
}

// LatestDate returns the most recent stored release date for the type.
func (s *MemoryStore) LatestDate(_ context.Context, t domain.DocumentType) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest string
	for date := range s.docs[t] {
		if date > latest {
			latest = date
		}
	}
	if latest == "" {
		return time.Time{}, nil
	}
	return domain.ParseDate(latest)
}

// UpsertDocument insert-or-replaces one document keyed by (type, date).
func (s *MemoryStore) UpsertDocument(_ context.Context, t domain.DocumentType, date time.Time, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[t][domain.FormatDate(date)] = body
	return nil
}

// Document returns a stored body, for assertions in tests.
func (s *MemoryStore) Document(t domain.DocumentType, date time.Time) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	body, ok := s.docs[t][domain.FormatDate(date)]
	return body, ok
}

// DocumentCount reports how many rows exist for the type.
func (s *MemoryStore) DocumentCount(t domain.DocumentType) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs[t])
}

// UpsertVerdict insert-or-replaces the verdict for its anchor date.
func (s *MemoryStore) UpsertVerdict(_ context.Context, v domain.Verdict) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verdicts[domain.FormatDate(v.AnchorDate)] = v
	return nil
}

// LatestVerdict returns the most recent verdict, nil when none exists.
func (s *MemoryStore) LatestVerdict(ctx context.Context) (*domain.Verdict, error) {
	verdicts, err := s.RecentVerdicts(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(verdicts) == 0 {
		return nil, nil
	}
	return &verdicts[0], nil
}

// RecentVerdicts returns up to n verdicts ordered by anchor date descending.
func (s *MemoryStore) RecentVerdicts(_ context.Context, n int) ([]domain.Verdict, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.verdicts))
	for k := range s.verdicts {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	if n < len(keys) {
		keys = keys[:n]
	}
	verdicts := make([]domain.Verdict, 0, len(keys))
	for _, k := range keys {
		verdicts = append(verdicts, s.verdicts[k])
	}
	return verdicts, nil
}

// VerdictCount reports how many verdict rows exist.
func (s *MemoryStore) VerdictCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.verdicts)
}
