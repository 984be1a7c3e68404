package store

import (
	"context"
	"errors"

	"github.com/pageza/recipe-manager/backend/internal/filter"
	"github.com/pageza/recipe-manager/backend/internal/model"
)

var (
	// ErrNotFound is returned by Get when no row has the key.
	ErrNotFound = errors.New("recipe not found")
	// ErrAlreadyExists is returned by Insert when the key is taken.
	ErrAlreadyExists = errors.New("recipe already exists")
)

// RecipeStore is durable keyed storage for recipes.
type RecipeStore interface {
	Get(ctx context.Context, id int) (*model.StoredRecipe, error)
	Insert(ctx context.Context, recipe *model.StoredRecipe) error
	Save(ctx context.Context, recipe *model.StoredRecipe) error
	Delete(ctx context.Context, id int) error
	Find(ctx context.Context, f filter.Filter) ([]*model.StoredRecipe, error)
}
