package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/pageza/recipe-manager/backend/internal/model"
	"github.com/pageza/recipe-manager/backend/migrations"
)

// RunMigrations brings the schema up to date. SQLite uses gorm's
// auto-migration; Postgres applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		slog.Info("using GORM auto-migration for SQLite")
		return db.WithContext(ctx).AutoMigrate(&model.StoredRecipe{})
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return Migrate(ctx, sqlDB, "postgres", "up")
}

// Migrate runs a goose command (up, down, status, version) against db.
func Migrate(ctx context.Context, db *sql.DB, dialect, command string) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, ".")
	case "down":
		err = goose.DownContext(ctx, db, ".")
	case "status":
		goose.SetLogger(slogLogger{})
		err = goose.StatusContext(ctx, db, ".")
	case "version":
		var version int64
		if version, err = goose.GetDBVersionContext(ctx, db); err == nil {
			slog.Info("current schema version", "version", version)
		}
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}

	slog.Info("migration command finished", "command", command)
	return nil
}

// slogLogger prints goose status output through slog.
type slogLogger struct{}

func (slogLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

func (slogLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}
