package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/pageza/recipe-manager/backend/internal/apperror"
	"github.com/pageza/recipe-manager/backend/internal/filter"
	"github.com/pageza/recipe-manager/backend/internal/mocks"
	"github.com/pageza/recipe-manager/backend/internal/model"
	"github.com/pageza/recipe-manager/backend/internal/service"
	"github.com/pageza/recipe-manager/backend/internal/store"
	"github.com/pageza/recipe-manager/backend/internal/types"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func biryani() *types.RecipeRequest {
	return &types.RecipeRequest{
		ID:           intPtr(1),
		Name:         "Chicken Biryani",
		Type:         "Indian",
		Serving:      intPtr(4),
		Ingredients:  []string{"Chicken", "Rice", "Spices"},
		Instructions: "Cook the chicken and rice together",
	}
}

func newService(t *testing.T) (*service.RecipeService, *testingclock.FakePassiveClock) {
	t.Helper()
	clk := testingclock.NewFakePassiveClock(t0)
	return service.NewRecipeService(store.NewMemoryStore(), model.NewMapper(clk), quietLogger()), clk
}

func TestValidateRecipe(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *types.RecipeRequest)
		nilReq bool
		want   bool
	}{
		{name: "complete", mutate: func(*types.RecipeRequest) {}, want: true},
		{name: "nil", nilReq: true, want: false},
		{name: "missing id", mutate: func(r *types.RecipeRequest) { r.ID = nil }, want: false},
		{name: "empty name", mutate: func(r *types.RecipeRequest) { r.Name = "" }, want: false},
		{name: "blank name", mutate: func(r *types.RecipeRequest) { r.Name = "     " }, want: false},
		{name: "blank type", mutate: func(r *types.RecipeRequest) { r.Type = " \t" }, want: false},
		{name: "missing serving", mutate: func(r *types.RecipeRequest) { r.Serving = nil }, want: false},
		{name: "empty ingredients still structural ok", mutate: func(r *types.RecipeRequest) { r.Ingredients = nil }, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.nilReq {
				assert.Equal(t, tt.want, service.ValidateRecipe(nil))
				return
			}
			req := biryani()
			tt.mutate(req)
			assert.Equal(t, tt.want, service.ValidateRecipe(req))
		})
	}
}

func TestCreateThenGet(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, biryani())
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Chicken Biryani", created.Name)
	assert.Equal(t, []string{"Chicken", "Rice", "Spices"}, created.Ingredients)
	require.NotNil(t, created.CreateTime)
	assert.Equal(t, t0, *created.CreateTime)
	assert.Equal(t, *created.CreateTime, *created.UpdateTime)

	got, err := svc.GetRecipe(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateRejectsInvalidAndDuplicate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	req := biryani()
	req.Type = ""
	_, err := svc.CreateRecipe(ctx, req)
	assert.ErrorIs(t, err, apperror.ErrBadInput)
	assert.Equal(t, apperror.MsgBadRequest, apperror.PublicMessage(err))

	_, err = svc.CreateRecipe(ctx, biryani())
	require.NoError(t, err)

	_, err = svc.CreateRecipe(ctx, biryani())
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, apperror.MsgConflict, apperror.PublicMessage(err))
}

func TestCreateLosingInsertRaceIsConflict(t *testing.T) {
	st := new(mocks.MockRecipeStore)
	st.On("Get", mock.Anything, 1).Return(nil, store.ErrNotFound)
	st.On("Insert", mock.Anything, mock.AnythingOfType("*model.StoredRecipe")).Return(store.ErrAlreadyExists)
	svc := service.NewRecipeService(st, nil, quietLogger())

	_, err := svc.CreateRecipe(context.Background(), biryani())
	assert.ErrorIs(t, err, apperror.ErrConflict)
	st.AssertExpectations(t)
}

func TestStorageFailuresAreGeneric(t *testing.T) {
	cause := errors.New("connection refused")
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(st *mocks.MockRecipeStore)
		call  func(svc *service.RecipeService) error
	}{
		{
			name:  "create lookup",
			setup: func(st *mocks.MockRecipeStore) { st.On("Get", mock.Anything, 1).Return(nil, cause) },
			call: func(svc *service.RecipeService) error {
				_, err := svc.CreateRecipe(ctx, biryani())
				return err
			},
		},
		{
			name: "create insert",
			setup: func(st *mocks.MockRecipeStore) {
				st.On("Get", mock.Anything, 1).Return(nil, store.ErrNotFound)
				st.On("Insert", mock.Anything, mock.Anything).Return(cause)
			},
			call: func(svc *service.RecipeService) error {
				_, err := svc.CreateRecipe(ctx, biryani())
				return err
			},
		},
		{
			name:  "get",
			setup: func(st *mocks.MockRecipeStore) { st.On("Get", mock.Anything, 1).Return(nil, cause) },
			call: func(svc *service.RecipeService) error {
				_, err := svc.GetRecipe(ctx, 1)
				return err
			},
		},
		{
			name:  "list",
			setup: func(st *mocks.MockRecipeStore) { st.On("Find", mock.Anything, mock.Anything).Return(nil, cause) },
			call: func(svc *service.RecipeService) error {
				_, err := svc.ListRecipes(ctx, filter.Params{})
				return err
			},
		},
		{
			name: "update save",
			setup: func(st *mocks.MockRecipeStore) {
				st.On("Get", mock.Anything, 1).Return(&model.StoredRecipe{ID: 1, CreateTime: t0}, nil)
				st.On("Save", mock.Anything, mock.Anything).Return(cause)
			},
			call: func(svc *service.RecipeService) error {
				_, err := svc.UpdateRecipe(ctx, biryani())
				return err
			},
		},
		{
			name: "delete",
			setup: func(st *mocks.MockRecipeStore) {
				st.On("Get", mock.Anything, 1).Return(&model.StoredRecipe{ID: 1}, nil)
				st.On("Delete", mock.Anything, 1).Return(cause)
			},
			call: func(svc *service.RecipeService) error {
				return svc.DeleteRecipe(ctx, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := new(mocks.MockRecipeStore)
			tt.setup(st)
			svc := service.NewRecipeService(st, nil, quietLogger())

			err := tt.call(svc)
			assert.ErrorIs(t, err, apperror.ErrStorageFailure)
			assert.ErrorIs(t, err, cause)
			assert.Equal(t, apperror.MsgInternal, apperror.PublicMessage(err))
			st.AssertExpectations(t)
		})
	}
}

func TestGetMissing(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.GetRecipe(context.Background(), 9999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, apperror.MsgRecipeNotFound, apperror.PublicMessage(err))
}

func TestListRecipes(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.ListRecipes(ctx, filter.Params{})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, apperror.MsgRecipesNotFound, apperror.PublicMessage(err))

	_, err = svc.CreateRecipe(ctx, biryani())
	require.NoError(t, err)
	salad := &types.RecipeRequest{
		ID:           intPtr(2),
		Name:         "Green Salad",
		Type:         "Vegetarian",
		Serving:      intPtr(1),
		Ingredients:  []string{"Lettuce", "Cucumber"},
		Instructions: "Toss everything",
	}
	_, err = svc.CreateRecipe(ctx, salad)
	require.NoError(t, err)

	all, err := svc.ListRecipes(ctx, filter.Params{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, 2, all[1].ID)

	filtered, err := svc.ListRecipes(ctx, filter.Params{IncludeIngredients: []string{"Chicken", "Rice"}, MinServing: 2})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Chicken Biryani", filtered[0].Name)

	_, err = svc.ListRecipes(ctx, filter.Params{Type: "Italian"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdatePreservesCreateTime(t *testing.T) {
	svc, clk := newService(t)
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, biryani())
	require.NoError(t, err)

	later := t0.Add(2 * time.Hour)
	clk.SetTime(later)

	req := biryani()
	req.Name = "Hyderabadi Biryani"
	req.Serving = intPtr(6)
	// a client supplied createTime is ignored
	bogus := t0.Add(-48 * time.Hour)
	req.CreateTime = &bogus

	updated, err := svc.UpdateRecipe(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Hyderabadi Biryani", updated.Name)
	assert.Equal(t, 6, updated.Serving)
	assert.Equal(t, t0, *updated.CreateTime)
	assert.Equal(t, later, *updated.UpdateTime)

	got, err := svc.GetRecipe(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateErrors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.UpdateRecipe(ctx, biryani())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, apperror.MsgRecipeNotFound, apperror.PublicMessage(err))

	req := biryani()
	req.Serving = nil
	_, err = svc.UpdateRecipe(ctx, req)
	assert.ErrorIs(t, err, apperror.ErrBadInput)
}

func TestDeleteThenGet(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, biryani())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecipe(ctx, 1))

	_, err = svc.GetRecipe(ctx, 1)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	err = svc.DeleteRecipe(ctx, 1)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
