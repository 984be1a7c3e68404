package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pageza/recipe-manager/backend/internal/apperror"
	"github.com/pageza/recipe-manager/backend/internal/filter"
	"github.com/pageza/recipe-manager/backend/internal/model"
	"github.com/pageza/recipe-manager/backend/internal/store"
	"github.com/pageza/recipe-manager/backend/internal/types"
)

// RecipeService handles recipe operations
type RecipeService struct {
	store  store.RecipeStore
	mapper *model.Mapper
	logger *slog.Logger
}

// NewRecipeService creates a new RecipeService instance. A nil logger uses slog.Default.
func NewRecipeService(s store.RecipeStore, mapper *model.Mapper, logger *slog.Logger) *RecipeService {
	if mapper == nil {
		mapper = model.NewMapper(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RecipeService{
		store:  s,
		mapper: mapper,
		logger: logger.With("component", "recipe_service"),
	}
}

// CreateRecipe stores a new recipe. An id that is already taken is a Conflict.
func (s *RecipeService) CreateRecipe(ctx context.Context, req *types.RecipeRequest) (*model.Recipe, error) {
	if !ValidateRecipe(req) {
		return nil, apperror.BadInput()
	}
	recipe := req.ToRecipe()

	exists, err := s.exists(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict()
	}

	stored := s.mapper.ToStored(recipe)
	if err := s.store.Insert(ctx, stored); err != nil {
		// lost a race with another create for the same id
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, apperror.Conflict()
		}
		return nil, s.storageFailure("insert", recipe.ID, err)
	}

	s.logger.Info("recipe created", "id", stored.ID)
	return s.mapper.ToDomain(stored), nil
}

// GetRecipe returns the recipe stored under id.
func (s *RecipeService) GetRecipe(ctx context.Context, id int) (*model.Recipe, error) {
	stored, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.RecipeNotFound()
		}
		return nil, s.storageFailure("get", id, err)
	}
	return s.mapper.ToDomain(stored), nil
}

// ListRecipes returns every recipe matching params, ordered by id. An empty
// result is reported as NotFound.
func (s *RecipeService) ListRecipes(ctx context.Context, params filter.Params) ([]*model.Recipe, error) {
	rows, err := s.store.Find(ctx, filter.Build(params))
	if err != nil {
		s.logger.Error("storage failure", "op", "find", "error", err)
		return nil, apperror.StorageFailure(err)
	}
	if len(rows) == 0 {
		return nil, apperror.RecipesNotFound()
	}

	recipes := make([]*model.Recipe, len(rows))
	for i, row := range rows {
		recipes[i] = s.mapper.ToDomain(row)
	}
	return recipes, nil
}

// UpdateRecipe replaces every field of an existing recipe. The original
// creation time is kept.
func (s *RecipeService) UpdateRecipe(ctx context.Context, req *types.RecipeRequest) (*model.Recipe, error) {
	if !ValidateRecipe(req) {
		return nil, apperror.BadInput()
	}
	recipe := req.ToRecipe()

	current, err := s.store.Get(ctx, recipe.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.RecipeNotFound()
		}
		return nil, s.storageFailure("get", recipe.ID, err)
	}
	createTime := current.CreateTime
	recipe.CreateTime = &createTime

	stored := s.mapper.ToStored(recipe)
	if err := s.store.Save(ctx, stored); err != nil {
		return nil, s.storageFailure("save", recipe.ID, err)
	}

	s.logger.Info("recipe updated", "id", stored.ID)
	return s.mapper.ToDomain(stored), nil
}

// DeleteRecipe removes the recipe stored under id.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id int) error {
	exists, err := s.exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.RecipeNotFound()
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return s.storageFailure("delete", id, err)
	}

	s.logger.Info("recipe deleted", "id", id)
	return nil
}

func (s *RecipeService) exists(ctx context.Context, id int) (bool, error) {
	_, err := s.store.Get(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	default:
		return false, s.storageFailure("get", id, err)
	}
}

func (s *RecipeService) storageFailure(op string, id int, err error) error {
	s.logger.Error("storage failure", "op", op, "id", id, "error", err)
	return apperror.StorageFailure(err)
}
