package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipe-manager/backend/internal/filter"
	"github.com/pageza/recipe-manager/backend/internal/model"
)

// GormStore persists recipes through gorm. The *gorm.DB must be opened with
// TranslateError so duplicate keys surface as gorm.ErrDuplicatedKey.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore instance
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, id int) (*model.StoredRecipe, error) {
	var recipe model.StoredRecipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe %d: %w", id, err)
	}
	return &recipe, nil
}

func (s *GormStore) Insert(ctx context.Context, recipe *model.StoredRecipe) error {
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert recipe %d: %w", recipe.ID, err)
	}
	return nil
}

// Save writes every column, inserting the row if it is missing.
func (s *GormStore) Save(ctx context.Context, recipe *model.StoredRecipe) error {
	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return fmt.Errorf("failed to save recipe %d: %w", recipe.ID, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id int) error {
	if err := s.db.WithContext(ctx).Delete(&model.StoredRecipe{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete recipe %d: %w", id, err)
	}
	return nil
}

// Find translates each predicate into a WHERE clause and returns rows ordered by id.
func (s *GormStore) Find(ctx context.Context, f filter.Filter) ([]*model.StoredRecipe, error) {
	query := s.db.WithContext(ctx).Model(&model.StoredRecipe{})
	for _, p := range f.Predicates {
		var err error
		if query, err = s.where(query, p); err != nil {
			return nil, err
		}
	}

	var recipes []*model.StoredRecipe
	if err := query.Order("id").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

func (s *GormStore) where(query *gorm.DB, p filter.Predicate) (*gorm.DB, error) {
	column, err := columnFor(p.Field)
	if err != nil {
		return nil, err
	}

	switch p.Op {
	case filter.OpNotNull:
		return query.Where(column + " IS NOT NULL"), nil
	case filter.OpContains:
		return query.Where(s.position(column)+" > 0", p.Text), nil
	case filter.OpNotContains:
		return query.Where(s.position(column)+" = 0", p.Text), nil
	case filter.OpEquals:
		return query.Where(column+" = ?", p.Text), nil
	case filter.OpAtLeast:
		return query.Where(column+" >= ?", p.Number), nil
	default:
		return nil, fmt.Errorf("unsupported filter operator %d", p.Op)
	}
}

// position is a case-sensitive substring search; LIKE is case-insensitive on SQLite.
func (s *GormStore) position(column string) string {
	if s.db.Dialector.Name() == "postgres" {
		return "strpos(" + column + ", ?)"
	}
	return "instr(" + column + ", ?)"
}

func columnFor(field filter.Field) (string, error) {
	switch field {
	case filter.FieldID, filter.FieldName, filter.FieldType, filter.FieldServing,
		filter.FieldIngredients, filter.FieldInstructions:
		return string(field), nil
	default:
		return "", fmt.Errorf("unknown filter field %q", field)
	}
}
