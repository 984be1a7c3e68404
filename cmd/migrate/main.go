package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pageza/recipe-manager/backend/config"
	"github.com/pageza/recipe-manager/backend/internal/database"
	"github.com/pageza/recipe-manager/backend/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:          "migrate",
	Short:        "Manage the recipe database schema",
	Long:         "Apply, roll back and inspect the Postgres schema migrations embedded in this binary.",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(
		migrationCmd("up", "Apply all pending migrations"),
		migrationCmd("down", "Roll back the most recent migration"),
		migrationCmd("status", "Print the state of every migration"),
		migrationCmd("version", "Print the current schema version"),
	)
}

func migrationCmd(command, short string) *cobra.Command {
	return &cobra.Command{
		Use:   command,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrate(cmd.Context(), command)
		},
	}
}

func migrate(ctx context.Context, command string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	slog.SetDefault(logging.New(os.Stderr, cfg.LogLevel, "text"))

	if cfg.StoreDriver != config.DriverPostgres {
		return fmt.Errorf("migrations apply to the postgres driver only, STORE_DRIVER is %q", cfg.StoreDriver)
	}

	db, err := database.NewSQL(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return database.Migrate(ctx, db, "postgres", command)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
