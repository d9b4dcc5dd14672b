package label

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"swipetree/internal/annotation/models"
	"swipetree/pkg/platform/sentinel"
)

// Schema creates the labels table.
const Schema = `
CREATE TABLE IF NOT EXISTS labels (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	dob        TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL
)`

// Postgres persists labels in PostgreSQL.
type Postgres struct {
	db  *sql.DB
	now func() time.Time
}

// PostgresOption configures a Postgres store.
type PostgresOption func(*Postgres)

// WithClock overrides the clock used when a label arrives without UpdatedAt.
func WithClock(now func() time.Time) PostgresOption {
	return func(s *Postgres) {
		if now != nil {
			s.now = now
		}
	}
}

// NewPostgres constructs a PostgreSQL-backed label store.
func NewPostgres(db *sql.DB, opts ...PostgresOption) *Postgres {
	s := &Postgres{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Migrate creates the schema if it does not exist.
func (s *Postgres) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate labels: %w", err)
	}
	return nil
}

// FindByID returns the label for id or sentinel.ErrNotFound.
func (s *Postgres) FindByID(ctx context.Context, id string) (*models.Label, error) {
	var l models.Label
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, dob, updated_at FROM labels WHERE id = $1`, id,
	).Scan(&l.ID, &l.Name, &l.DOB, &l.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("label %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find label %s: %w", id, err)
	}
	return &l, nil
}

// FindMany loads every existing label among ids in one query.
func (s *Postgres) FindMany(ctx context.Context, ids []string) (map[string]models.Label, error) {
	out := make(map[string]models.Label, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, dob, updated_at FROM labels WHERE id = ANY($1)`, pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("find labels: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l models.Label
		if err := rows.Scan(&l.ID, &l.Name, &l.DOB, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan label: %w", err)
		}
		out[l.ID] = l
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate labels: %w", err)
	}
	return out, nil
}

// Upsert inserts or replaces the label.
func (s *Postgres) Upsert(ctx context.Context, l *models.Label) error {
	updatedAt := l.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO labels (id, name, dob, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, dob = EXCLUDED.dob, updated_at = EXCLUDED.updated_at
	`, l.ID, l.Name, l.DOB, updatedAt)
	if err != nil {
		return fmt.Errorf("upsert label %s: %w", l.ID, err)
	}
	return nil
}
