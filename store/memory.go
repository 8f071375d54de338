package store

import (
	"context"
	"sync"

	"flavorgraph/models"

	"github.com/pkg/errors"
)

// MemoryStore keeps recipes in insertion order.
type MemoryStore struct {
	mu      sync.RWMutex
	order   []string
	recipes map[string]models.Recipe
}

func NewMemoryStore(seed []models.Recipe) (*MemoryStore, error) {
	s := &MemoryStore{recipes: make(map[string]models.Recipe, len(seed))}
	for _, r := range seed {
		if err := s.Create(context.Background(), r); err != nil {
			return nil, errors.Wrapf(err, "unable to seed recipe %q", r.Name)
		}
	}
	return s, nil
}

func (s *MemoryStore) List(_ context.Context) ([]models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Recipe, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.recipes[id])
	}
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		return models.Recipe{}, errors.Wrapf(ErrNotFound, "id %s", id)
	}
	return r, nil
}

func (s *MemoryStore) Create(_ context.Context, recipe models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[recipe.ID]; ok {
		return errors.Wrapf(ErrAlreadyExists, "id %s", recipe.ID)
	}
	s.recipes[recipe.ID] = recipe
	s.order = append(s.order, recipe.ID)
	return nil
}

func (s *MemoryStore) Update(_ context.Context, recipe models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[recipe.ID]; !ok {
		return errors.Wrapf(ErrNotFound, "id %s", recipe.ID)
	}
	s.recipes[recipe.ID] = recipe
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[id]; !ok {
		return errors.Wrapf(ErrNotFound, "id %s", id)
	}
	delete(s.recipes, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }
