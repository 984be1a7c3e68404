package service

import (
	"strings"

	"github.com/pageza/recipe-manager/backend/internal/types"
)

// ValidateRecipe reports whether req carries every field a stored recipe
// needs. Length and range limits are checked earlier, at binding.
func ValidateRecipe(req *types.RecipeRequest) bool {
	if req == nil || req.ID == nil || req.Serving == nil {
		return false
	}
	return strings.TrimSpace(req.Name) != "" && strings.TrimSpace(req.Type) != ""
}
