package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/air-quality-dashboard/internal/airquality"
)

var (
	// ErrNotFound is returned when no dataset has been saved yet.
	ErrNotFound = errors.New("no dataset loaded")
)

// MemoryStore is a concurrency-safe in-memory holder of the current dataset
// snapshot and of the history of load attempts.
type MemoryStore struct {
	mu sync.RWMutex

	current *airquality.Dataset
	history []airquality.DatasetInfo

	// retention configuration for history
	maxHistory int           // max number of load records
	maxAge     time.Duration // optional max age for load records
}

// NewMemoryStore creates a new MemoryStore with optional history limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveDataset replaces the current snapshot.
func (s *MemoryStore) SaveDataset(ds airquality.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &ds
}

// Current returns the current snapshot.
func (s *MemoryStore) Current() (airquality.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return airquality.Dataset{}, ErrNotFound
	}
	return *s.current, nil
}

// RecordLoad appends a load record and enforces retention.
func (s *MemoryStore) RecordLoad(info airquality.DatasetInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, info)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.history) > s.maxHistory {
		over := len(s.history) - s.maxHistory
		s.history = s.history[over:]
	}

	// Enforce retention by age; the newest record is always kept.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.history)-1; i++ {
			if !s.history[i].LoadedAt.Before(cutoff) {
				break
			}
		}
		s.history = s.history[i:]
	}
}

// History returns a copy of the load records, oldest first.
func (s *MemoryStore) History() []airquality.DatasetInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]airquality.DatasetInfo, len(s.history))
	copy(out, s.history)
	return out
}
