package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]domain.RunReport
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]domain.RunReport),
	}
}

// SaveRun creates or updates a run report by ID.
func (s *RunStore) SaveRun(_ context.Context, report *domain.RunReport) error {
	if report == nil || report.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *report
	r.Errors = append([]string(nil), report.Errors...)
	s.runs[r.ID] = r
	return nil
}

// ListRuns returns recent runs, most recent first.
func (s *RunStore) ListRuns(_ context.Context, limit int) ([]domain.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.RunReport, 0, len(s.runs))
	for _, r := range s.runs {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.After(result[j].StartedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
