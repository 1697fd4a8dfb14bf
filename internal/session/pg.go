package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/restopsdev/platewatch/internal/report"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// PGStore keeps session reports in a Postgres table as JSONB payloads.
type PGStore struct {
	db DBTX
}

// NewPGStore creates a Postgres-backed session store.
func NewPGStore(db DBTX) *PGStore {
	return &PGStore{db: db}
}

// EnsureSchema creates the backing table if it does not exist.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS session_reports (
			session_id TEXT PRIMARY KEY,
			payload    JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure session_reports schema: %w", err)
	}
	return nil
}

// Put upserts the session's report, replacing any prior payload.
func (s *PGStore) Put(ctx context.Context, sessionID string, rep *report.Report) error {
	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO session_reports (session_id, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (session_id)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		sessionID, payload)
	if err != nil {
		return fmt.Errorf("store report: %w", err)
	}
	return nil
}

// Get returns the session's report, or ErrNotFound.
func (s *PGStore) Get(ctx context.Context, sessionID string) (*report.Report, error) {
	var payload []byte
	err := s.db.QueryRow(ctx,
		`SELECT payload FROM session_reports WHERE session_id = $1`,
		sessionID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load report: %w", err)
	}

	var rep report.Report
	if err := json.Unmarshal(payload, &rep); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &rep, nil
}

// Delete removes the session's report.
func (s *PGStore) Delete(ctx context.Context, sessionID string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM session_reports WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	return nil
}

// Expire removes reports that have not been replaced within maxAge.
func (s *PGStore) Expire(ctx context.Context, maxAge time.Duration) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM session_reports WHERE updated_at < now() - make_interval(secs => $1)`,
		maxAge.Seconds())
	if err != nil {
		return 0, fmt.Errorf("expire reports: %w", err)
	}
	return tag.RowsAffected(), nil
}
