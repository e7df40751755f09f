package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"fedwatch/internal/domain"
	"fedwatch/internal/ports"
)

// Schema documents the storage layout: one table per document type keyed by
// release date, one verdict table keyed by anchor date.
const Schema = `
CREATE TABLE IF NOT EXISTS statements (
    release_date DATE PRIMARY KEY,
    body TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS minutes (
    release_date DATE PRIMARY KEY,
    body TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS projection_notes (
    release_date DATE PRIMARY KEY,
    body TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS implementation_notes (
    release_date DATE PRIMARY KEY,
    body TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS verdicts (
    anchor_date DATE PRIMARY KEY,
    execution_date TIMESTAMPTZ NOT NULL,
    statement_date DATE,
    minutes_date DATE,
    projection_note_date DATE,
    implementation_note_date DATE,
    content JSONB NOT NULL
);
`

var docTables = map[domain.DocumentType]string{
	domain.DocStatement:          "statements",
	domain.DocMinutes:            "minutes",
	domain.DocProjectionNote:     "projection_notes",
	domain.DocImplementationNote: "implementation_notes",
}

// PostgresStore persists release documents and verdicts in Postgres.
type PostgresStore struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ ports.ReleaseStore = (*PostgresStore)(nil)

// NewPostgresStore wires a sql.DB implementation.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewPostgresStore(db), nil
}

// EnsureSchema creates the tables when they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// LatestDate returns the most recent persisted release date for the type.
func (s *PostgresStore) LatestDate(ctx context.Context, t domain.DocumentType) (time.Time, error) {
	table, ok := docTables[t]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown document type %q", string(t))
	}

	query := s.sb.Select("release_date").
		From(table).
		OrderBy("release_date DESC").
		Limit(1).
		RunWith(s.db)

	var date time.Time
	if err := query.QueryRowContext(ctx).Scan(&date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("latest %s date: %w", string(t), err)
	}
	return domain.Day(date), nil
}

// UpsertDocument insert-or-replaces one document keyed by (type, release date).
// Each write runs in its own short transaction so one type's failure never
// taints the others.
func (s *PostgresStore) UpsertDocument(ctx context.Context, t domain.DocumentType, date time.Time, body string) error {
	table, ok := docTables[t]
	if !ok {
		return fmt.Errorf("unknown document type %q", string(t))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert %s: %w", string(t), err)
	}

	_, err = s.sb.Insert(table).
		Columns("release_date", "body").
		Values(domain.Day(date), body).
		Suffix("ON CONFLICT (release_date) DO UPDATE SET body = EXCLUDED.body").
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("upsert %s: %w", string(t), err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert %s: %w", string(t), err)
	}
	return nil
}

// UpsertVerdict insert-or-replaces the verdict row for its anchor date,
// overwriting every column of any prior row.
func (s *PostgresStore) UpsertVerdict(ctx context.Context, v domain.Verdict) error {
	if v.AnchorDate.IsZero() {
		return fmt.Errorf("verdict has no anchor date")
	}

	content, err := json.Marshal(v.Content)
	if err != nil {
		return fmt.Errorf("marshal verdict content: %w", err)
	}

	_, err = s.sb.Insert("verdicts").
		Columns("anchor_date", "execution_date",
			"statement_date", "minutes_date", "projection_note_date", "implementation_note_date",
			"content").
		Values(domain.Day(v.AnchorDate), v.ExecutionDate,
			nullableDate(v.Date(domain.DocStatement)),
			nullableDate(v.Date(domain.DocMinutes)),
			nullableDate(v.Date(domain.DocProjectionNote)),
			nullableDate(v.Date(domain.DocImplementationNote)),
			content).
		Suffix(`ON CONFLICT (anchor_date) DO UPDATE SET
			execution_date = EXCLUDED.execution_date,
			statement_date = EXCLUDED.statement_date,
			minutes_date = EXCLUDED.minutes_date,
			projection_note_date = EXCLUDED.projection_note_date,
			implementation_note_date = EXCLUDED.implementation_note_date,
			content = EXCLUDED.content`).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("upsert verdict %s: %w", domain.FormatDate(v.AnchorDate), err)
	}
	return nil
}

// LatestVerdict returns the most recent verdict, nil when none exists.
func (s *PostgresStore) LatestVerdict(ctx context.Context) (*domain.Verdict, error) {
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
func (s *PostgresStore) RecentVerdicts(ctx context.Context, n int) ([]domain.Verdict, error) {
	query := s.sb.Select("anchor_date", "execution_date",
		"statement_date", "minutes_date", "projection_note_date", "implementation_note_date",
		"content").
		From("verdicts").
		OrderBy("anchor_date DESC").
		Limit(uint64(n)).
		RunWith(s.db)

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query verdicts: %w", err)
	}
	defer rows.Close()

	var verdicts []domain.Verdict
	for rows.Next() {
		var (
			v                     domain.Verdict
			stmt, min, proj, impl sql.NullTime
			content               []byte
		)
		if err := rows.Scan(&v.AnchorDate, &v.ExecutionDate, &stmt, &min, &proj, &impl, &content); err != nil {
			return nil, fmt.Errorf("scan verdict: %w", err)
		}
		v.AnchorDate = domain.Day(v.AnchorDate)
		v.Dates = map[domain.DocumentType]time.Time{}
		setIfValid(v.Dates, domain.DocStatement, stmt)
		setIfValid(v.Dates, domain.DocMinutes, min)
		setIfValid(v.Dates, domain.DocProjectionNote, proj)
		setIfValid(v.Dates, domain.DocImplementationNote, impl)
		if err := json.Unmarshal(content, &v.Content); err != nil {
			return nil, fmt.Errorf("decode verdict content: %w", err)
		}
		verdicts = append(verdicts, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verdicts: %w", err)
	}
	return verdicts, nil
}

func setIfValid(dates map[domain.DocumentType]time.Time, t domain.DocumentType, v sql.NullTime) {
	if v.Valid {
		dates[t] = domain.Day(v.Time)
	}
}

func nullableDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return domain.Day(t)
}
