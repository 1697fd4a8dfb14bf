// Package session persists the most recent processed report per session.
// A new run for the same session fully replaces the prior result
// (single-writer-per-session); the core pipeline itself holds no state.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/restopsdev/platewatch/internal/report"
)

// ErrNotFound is returned by Get when the session has no stored report.
var ErrNotFound = errors.New("session: no report stored")

// Store is the session-scoped key-value store for processed reports.
type Store interface {
	// Put stores rep as the session's current report, replacing any prior one.
	Put(ctx context.Context, sessionID string, rep *report.Report) error

	// Get returns the session's current report, or ErrNotFound.
	Get(ctx context.Context, sessionID string) (*report.Report, error)

	// Delete removes the session's report. Deleting an absent report is not
	// an error.
	Delete(ctx context.Context, sessionID string) error

	// Expire removes reports older than maxAge and returns how many were
	// dropped.
	Expire(ctx context.Context, maxAge time.Duration) (int64, error)
}
