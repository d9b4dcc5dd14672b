// Package label persists person labels keyed by identifier.
package label

import (
	"context"
	"fmt"
	"sync"

	"swipetree/internal/annotation/models"
	"swipetree/pkg/platform/sentinel"
)

// InMemory is a process-local label store.
type InMemory struct {
	mu     sync.RWMutex
	labels map[string]models.Label
}

// NewInMemory creates an empty store.
func NewInMemory() *InMemory {
	return &InMemory{labels: make(map[string]models.Label)}
}

// FindByID returns the label for id or sentinel.ErrNotFound.
func (s *InMemory) FindByID(_ context.Context, id string) (*models.Label, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.labels[id]
	if !ok {
		return nil, fmt.Errorf("label %s: %w", id, sentinel.ErrNotFound)
	}
	return &l, nil
}

// FindMany returns the labels that exist among ids. Missing ids are skipped.
func (s *InMemory) FindMany(_ context.Context, ids []string) (map[string]models.Label, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.Label, len(ids))
	for _, id := range ids {
		if l, ok := s.labels[id]; ok {
			out[id] = l
		}
	}
	return out, nil
}

// Upsert writes the label, replacing any previous value.
func (s *InMemory) Upsert(_ context.Context, l *models.Label) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels[l.ID] = *l
	return nil
}
