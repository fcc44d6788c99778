// Package memory provides an in-memory ingestion run store. It backs run
// history when the sqlite database cannot be opened, so the history lasts
// for the current process only.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.IngestRunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.IngestRunStore.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]domain.IngestRun
}

// NewRunStore creates an empty run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]domain.IngestRun),
	}
}

// Save stores or replaces a run.
func (s *RunStore) Save(_ context.Context, run domain.IngestRun) error {
	if run.ID == "" {
		return domain.NewValidationError("id", "run ID is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

// List returns runs newest first. A limit of 0 or less returns all runs.
func (s *RunStore) List(_ context.Context, limit int) ([]domain.IngestRun, error) {
	s.mu.RLock()
	runs := make([]domain.IngestRun, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	s.mu.RUnlock()

	// Same order as the sqlite store: started_at DESC, id DESC.
	slices.SortFunc(runs, func(a, b domain.IngestRun) int {
		if c := b.StartedAt.Compare(a.StartedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Get returns a run by ID.
func (s *RunStore) Get(_ context.Context, id string) (*domain.IngestRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}
