package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pageza/recipe-manager/backend/config"
	"github.com/pageza/recipe-manager/backend/internal/store"
)

// NewRecipeStore opens the store selected by cfg.StoreDriver and brings its
// schema up to date. The returned close function releases the connection.
func NewRecipeStore(ctx context.Context, cfg *config.Config) (store.RecipeStore, func() error, error) {
	if cfg.StoreDriver == config.DriverMemory {
		slog.Warn("using in-memory recipe store; data is lost on exit")
		return store.NewMemoryStore(), func() error { return nil }, nil
	}

	db, err := Open(cfg)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("error getting database handle: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("error running migrations: %w", err)
	}

	return store.NewGormStore(db), sqlDB.Close, nil
}
