package store

import (
	"context"
	"sort"
	"sync"

	"github.com/pageza/recipe-manager/backend/internal/filter"
	"github.com/pageza/recipe-manager/backend/internal/model"
)

// MemoryStore keeps recipes in a map. Used for local runs and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	recipes map[int]model.StoredRecipe
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recipes: make(map[int]model.StoredRecipe)}
}

func (s *MemoryStore) Get(ctx context.Context, id int) (*model.StoredRecipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipe, ok := s.recipes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &recipe, nil
}

func (s *MemoryStore) Insert(ctx context.Context, recipe *model.StoredRecipe) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[recipe.ID]; ok {
		return ErrAlreadyExists
	}
	s.recipes[recipe.ID] = *recipe
	return nil
}

func (s *MemoryStore) Save(ctx context.Context, recipe *model.StoredRecipe) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recipes[recipe.ID] = *recipe
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.recipes, id)
	return nil
}

// Find returns matching recipes ordered by id.
func (s *MemoryStore) Find(ctx context.Context, f filter.Filter) ([]*model.StoredRecipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.StoredRecipe, 0, len(s.recipes))
	for id := range s.recipes {
		recipe := s.recipes[id]
		if f.Match(&recipe) {
			result = append(result, &recipe)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}
