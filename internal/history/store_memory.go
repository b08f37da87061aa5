// Package history provides ports.HistoryStore implementations used by
// the velocity limiter. Every implementation keeps Append and CountInWindow
// atomic per account key: concurrent validations of the same account would
// otherwise race on velocity counts.
package history

import (
	"context"
	"sync"
	"time"

	"riskgate/internal/validation/ports"
)

// DefaultRetention keeps one day of history, the largest velocity window.
const DefaultRetention = 24 * time.Hour

// MemoryStore implements ports.HistoryStore with per-account sliding windows.
// Suited to single-process deployments and tests; use RedisStore or
// PostgresStore when validations run on more than one host.
type MemoryStore struct {
	mu        sync.RWMutex
	accounts  map[string][]ports.HistoryEntry
	retention time.Duration
}

// NewMemoryStore creates an in-memory history store. A non-positive retention
// falls back to DefaultRetention.
func NewMemoryStore(retention time.Duration) *MemoryStore {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &MemoryStore{
		accounts:  make(map[string][]ports.HistoryEntry),
		retention: retention,
	}
}

// Append records a validated attempt and prunes entries past retention.
func (s *MemoryStore) Append(ctx context.Context, entry ports.HistoryEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append(s.accounts[entry.AccountID], entry)
	s.accounts[entry.AccountID] = prune(entries, time.Now().Add(-s.retention))
	return nil
}

// CountInWindow returns the number of attempts for the account newer than
// now-window.
func (s *MemoryStore) CountInWindow(ctx context.Context, accountID string, window time.Duration) (int, error) {
	cutoff := time.Now().Add(-window)

	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, entry := range s.accounts[accountID] {
		if entry.Timestamp.After(cutoff) {
			count++
		}
	}
	return count, nil
}

// prune drops entries at or before the cutoff. Entries arrive in time order,
// so the first retained index bounds the copy.
func prune(entries []ports.HistoryEntry, cutoff time.Time) []ports.HistoryEntry {
	i := 0
	for ; i < len(entries); i++ {
		if entries[i].Timestamp.After(cutoff) {
			break
		}
	}
	return entries[i:]
}
