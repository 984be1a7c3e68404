package types

import (
	"strings"
	"time"

	"github.com/pageza/recipe-manager/backend/internal/filter"
	"github.com/pageza/recipe-manager/backend/internal/model"
)

// RecipeRequest is the body of create and update requests.
//
// Binding tags enforce length and range limits on values that are present.
// Presence of id, name, type and serving is left to the structural check in
// the service so that a missing field is a 400 rather than a 422.
type RecipeRequest struct {
	ID           *int     `json:"id" binding:"omitempty,min=1,max=1000000"`
	Name         string   `json:"name" binding:"omitempty,min=5,max=100"`
	Type         string   `json:"type" binding:"omitempty,min=1,max=30"`
	Serving      *int     `json:"serving" binding:"omitempty,min=1,max=10"`
	Ingredients  []string `json:"ingredients" binding:"required,min=1"`
	Instructions string   `json:"instructions" binding:"required,min=1,max=500"`

	// Timestamps are accepted for round-tripping but ignored by the service.
	CreateTime *time.Time `json:"createTime,omitempty"`
	UpdateTime *time.Time `json:"updateTime,omitempty"`
}

// ToRecipe converts a request to the domain recipe. Absent id or serving
// become zero; timestamps are dropped so the mapper stamps them.
func (r *RecipeRequest) ToRecipe() *model.Recipe {
	recipe := &model.Recipe{
		Name:         r.Name,
		Type:         r.Type,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
	}
	if r.ID != nil {
		recipe.ID = *r.ID
	}
	if r.Serving != nil {
		recipe.Serving = *r.Serving
	}
	return recipe
}

// RecipeQuery holds the list query string.
type RecipeQuery struct {
	Name               string   `form:"name"`
	Serving            *int     `form:"serving"`
	IncludeIngredients []string `form:"includeIngredients"`
	ExcludeIngredients []string `form:"excludeIngredients"`
	Type               string   `form:"type"`
	Instructions       string   `form:"instructions"`
}

// Params converts the query to filter parameters. Ingredient lists accept
// both repeated parameters and comma separated values.
func (q *RecipeQuery) Params() filter.Params {
	p := filter.Params{
		Name:               q.Name,
		Type:               q.Type,
		Instructions:       q.Instructions,
		IncludeIngredients: splitList(q.IncludeIngredients),
		ExcludeIngredients: splitList(q.ExcludeIngredients),
	}
	if q.Serving != nil {
		p.MinServing = *q.Serving
	}
	return p
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
