package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/restopsdev/platewatch/internal/report"
)

// MemStore keeps session reports in process memory. It is used when no
// database is configured and by tests. Reports are stored as encoded
// snapshots so concurrent sessions never share mutable state.
type MemStore struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	now     func() time.Time
}

type memEntry struct {
	payload   []byte
	updatedAt time.Time
}

// NewMemStore creates an empty in-memory session store.
func NewMemStore() *MemStore {
	return &MemStore{
		entries: make(map[string]memEntry),
		now:     time.Now,
	}
}

// Put stores an encoded snapshot of rep, replacing any prior report.
func (s *MemStore) Put(_ context.Context, sessionID string, rep *report.Report) error {
	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = memEntry{payload: payload, updatedAt: s.now()}
	return nil
}

// Get decodes and returns the session's report, or ErrNotFound.
func (s *MemStore) Get(_ context.Context, sessionID string) (*report.Report, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var rep report.Report
	if err := json.Unmarshal(entry.payload, &rep); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &rep, nil
}

// Delete removes the session's report.
func (s *MemStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}

// Expire removes reports older than maxAge.
func (s *MemStore) Expire(_ context.Context, maxAge time.Duration) (int64, error) {
	cutoff := s.now().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()
	var dropped int64
	for id, entry := range s.entries {
		if entry.updatedAt.Before(cutoff) {
			delete(s.entries, id)
			dropped++
		}
	}
	return dropped, nil
}
