package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/pageza/recipe-manager/backend/internal/apperror"
	"github.com/pageza/recipe-manager/backend/internal/service"
	"github.com/pageza/recipe-manager/backend/internal/types"
)

// DeletedMessage is the plain text body of a successful delete.
const DeletedMessage = "requested recipe deleted"

type RecipeHandler struct {
	recipeService service.IRecipeService
}

func NewRecipeHandler(recipeService service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// RegisterRoutes mounts the recipe endpoints. writeLimit, when non-nil, guards
// the mutating routes.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, writeLimit gin.HandlerFunc) {
	write := []gin.HandlerFunc{}
	if writeLimit != nil {
		write = append(write, writeLimit)
	}

	router.GET("/recipes", h.ListRecipes)
	router.GET("/recipe/:id", h.GetRecipe)
	router.POST("/recipe", append(write, h.CreateRecipe)...)
	router.PUT("/recipe", append(write, h.UpdateRecipe)...)
	router.DELETE("/recipe/:id", append(write, h.DeleteRecipe)...)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		_ = c.Error(apperror.BadInput())
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var query types.RecipeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		_ = c.Error(apperror.BadInput())
		return
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), query.Params())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		_ = c.Error(apperror.BadInput())
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.String(http.StatusOK, DeletedMessage)
}

// bindError separates field constraint violations (422) from bodies that
// could not be decoded at all (400).
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperror.Unprocessable(verrs.Error())
	}
	return apperror.BadInput()
}
