package service

import (
	"context"

	"github.com/pageza/recipe-manager/backend/internal/filter"
	"github.com/pageza/recipe-manager/backend/internal/model"
	"github.com/pageza/recipe-manager/backend/internal/types"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, req *types.RecipeRequest) (*model.Recipe, error)
	GetRecipe(ctx context.Context, id int) (*model.Recipe, error)
	ListRecipes(ctx context.Context, params filter.Params) ([]*model.Recipe, error)
	UpdateRecipe(ctx context.Context, req *types.RecipeRequest) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id int) error
}
