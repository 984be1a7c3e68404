package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin/binding"
	"github.com/spf13/cobra"

	"github.com/pageza/recipe-manager/backend/config"
	"github.com/pageza/recipe-manager/backend/internal/apperror"
	"github.com/pageza/recipe-manager/backend/internal/database"
	"github.com/pageza/recipe-manager/backend/internal/logging"
	"github.com/pageza/recipe-manager/backend/internal/model"
	"github.com/pageza/recipe-manager/backend/internal/service"
	"github.com/pageza/recipe-manager/backend/internal/types"
)

//go:embed recipes.json
var sampleRecipes []byte

var seedFile string

var rootCmd = &cobra.Command{
	Use:          "seed_recipes",
	Short:        "Load sample recipes into the configured store",
	Long:         "Reads recipes from a JSON array and creates each one through the recipe service. Recipes whose id is already taken are skipped.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&seedFile, "file", "f", "", "JSON file of recipes (defaults to the bundled samples)")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	data := sampleRecipes
	if seedFile != "" {
		if data, err = os.ReadFile(seedFile); err != nil {
			return fmt.Errorf("read seed file: %w", err)
		}
	}

	var requests []types.RecipeRequest
	if err := json.Unmarshal(data, &requests); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	recipeStore, closeStore, err := database.NewRecipeStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	svc := service.NewRecipeService(recipeStore, model.NewMapper(nil), logger)
	result, err := seed(cmd.Context(), svc, requests)
	logger.Info("seeding finished", "created", result.Created, "skipped", result.Skipped)
	return err
}

type seedResult struct {
	Created int
	Skipped int
}

// seed creates every request through svc. Existing ids are skipped; invalid
// recipes and storage failures stop the run.
func seed(ctx context.Context, svc service.IRecipeService, requests []types.RecipeRequest) (seedResult, error) {
	var result seedResult
	for i := range requests {
		req := &requests[i]
		if err := binding.Validator.ValidateStruct(req); err != nil {
			return result, fmt.Errorf("recipe %d: %w", i, err)
		}

		if _, err := svc.CreateRecipe(ctx, req); err != nil {
			if errors.Is(err, apperror.ErrConflict) {
				slog.Info("recipe already present, skipping", "id", *req.ID)
				result.Skipped++
				continue
			}
			return result, fmt.Errorf("recipe %d: %w", i, err)
		}
		result.Created++
	}
	return result, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
