package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipe-manager/backend/config"
	"github.com/pageza/recipe-manager/backend/internal/model"
	"github.com/pageza/recipe-manager/backend/internal/router"
	"github.com/pageza/recipe-manager/backend/internal/service"
	"github.com/pageza/recipe-manager/backend/internal/store"
	"github.com/pageza/recipe-manager/backend/internal/testhelpers"
)

func setupRouter(t *testing.T, db *gorm.DB, redisClient *redis.Client, rateLimit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		CORSOrigins:     []string{"http://localhost:5173"},
		RateLimit:       rateLimit,
		RateLimitWindow: time.Hour,
	}
	svc := service.NewRecipeService(store.NewGormStore(db), model.NewMapper(nil), logger)
	return router.SetupRouter(cfg, svc, router.WriteRateLimit(cfg, redisClient, logger), logger)
}

func send(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func recipeBody(id int, name, kind string, serving int, ingredients []string, instructions string) map[string]any {
	return map[string]any{
		"id":           id,
		"name":         name,
		"type":         kind,
		"serving":      serving,
		"ingredients":  ingredients,
		"instructions": instructions,
	}
}

// runLifecycle drives every endpoint against a real database.
func runLifecycle(t *testing.T, r *gin.Engine) {
	w := send(t, r, http.MethodGet, "/api/v1/recipes", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	biryani := recipeBody(1, "Chicken Biryani", "Indian", 4,
		[]string{"Chicken", "Rice", "Spices"}, "Cook the chicken and rice together")
	w = send(t, r, http.MethodPost, "/api/v1/recipe", biryani)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created model.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.CreateTime.Equal(*created.UpdateTime))

	w = send(t, r, http.MethodPost, "/api/v1/recipe", biryani)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"status":409,"message":"Recipe already present"}`, w.Body.String())

	salad := recipeBody(2, "Green Salad", "Vegetarian", 1,
		[]string{"Lettuce", "Cucumber"}, "Toss everything")
	require.Equal(t, http.StatusCreated, send(t, r, http.MethodPost, "/api/v1/recipe", salad).Code)

	w = send(t, r, http.MethodGet, "/api/v1/recipes?includeIngredients=Chicken,Rice&serving=2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var list []model.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].ID)
	assert.Equal(t, []string{"Chicken", "Rice", "Spices"}, list[0].Ingredients)

	w = send(t, r, http.MethodGet, "/api/v1/recipes?name=salad", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "name filter is case-sensitive")

	biryani["serving"] = 6
	w = send(t, r, http.MethodPut, "/api/v1/recipe", biryani)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated model.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 6, updated.Serving)
	assert.True(t, created.CreateTime.Equal(*updated.CreateTime))
	assert.False(t, updated.UpdateTime.Before(*created.UpdateTime))

	w = send(t, r, http.MethodDelete, "/api/v1/recipe/2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "requested recipe deleted", w.Body.String())

	w = send(t, r, http.MethodGet, "/api/v1/recipe/2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipeLifecycleSQLite(t *testing.T) {
	runLifecycle(t, setupRouter(t, testhelpers.SetupSQLiteDatabase(t), nil, 0))
}

func TestRecipeLifecyclePostgres(t *testing.T) {
	runLifecycle(t, setupRouter(t, testhelpers.SetupTestDatabase(t), nil, 0))
}

func TestWriteRateLimitSharedThroughRedis(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	redisClient := testhelpers.SetupTestRedis(t)

	// two routers sharing one Redis behave like two replicas
	first := setupRouter(t, db, redisClient, 2)
	second := setupRouter(t, db, redisClient, 2)

	body := func(id int) map[string]any {
		return recipeBody(id, "Egg Fried Rice", "Chinese", 2, []string{"Rice", "Egg"}, "Fry the rice")
	}

	assert.Equal(t, http.StatusCreated, send(t, first, http.MethodPost, "/api/v1/recipe", body(1)).Code)
	assert.Equal(t, http.StatusCreated, send(t, second, http.MethodPost, "/api/v1/recipe", body(2)).Code)

	w := send(t, first, http.MethodPost, "/api/v1/recipe", body(3))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	// reads are never limited
	assert.Equal(t, http.StatusOK, send(t, second, http.MethodGet, "/api/v1/recipe/1", nil).Code)
}
