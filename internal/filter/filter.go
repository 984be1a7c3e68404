// Package filter composes the optional list-query parameters into a single
// conjunction of predicates over stored recipes.
//
// The effect of each parameter:
//
//	Name                name contains the value
//	MinServing (> 0)    serving >= MinServing
//	Type                type equals the value exactly
//	Instructions        instructions contains the value
//	IncludeIngredients  stored ingredients contain the values joined by ", "
//	ExcludeIngredients  stored ingredients do not contain the values joined by ", "
//
// Empty parameters contribute nothing. All comparisons are case-sensitive.
// Ingredient filters match the joined string as one contiguous substring, so
// ["Rice", "Chicken"] does not match a recipe stored as "Chicken, Rice".
package filter

import (
	"strings"

	"github.com/pageza/recipe-manager/backend/internal/model"
)

// Field names a StoredRecipe column.
type Field string

const (
	FieldID           Field = "id"
	FieldName         Field = "name"
	FieldType         Field = "type"
	FieldServing      Field = "serving"
	FieldIngredients  Field = "ingredients"
	FieldInstructions Field = "instructions"
)

// Operator is the comparison a Predicate performs.
type Operator int

const (
	OpNotNull Operator = iota
	OpContains
	OpNotContains
	OpEquals
	OpAtLeast
)

// Predicate is one boolean test over a stored recipe. Text is used by the
// string operators, Number by OpAtLeast.
type Predicate struct {
	Field  Field
	Op     Operator
	Text   string
	Number int
}

// Params holds the optional list filters. The zero value matches everything.
type Params struct {
	Name               string
	MinServing         int
	IncludeIngredients []string
	ExcludeIngredients []string
	Type               string
	Instructions       string
}

// Filter is the AND of its predicates.
type Filter struct {
	Predicates []Predicate
}

// Build turns params into a Filter, starting from the always-true id check.
func Build(p Params) Filter {
	f := Filter{Predicates: []Predicate{{Field: FieldID, Op: OpNotNull}}}

	if p.Name != "" {
		f.add(Predicate{Field: FieldName, Op: OpContains, Text: p.Name})
	}
	if p.MinServing > 0 {
		f.add(Predicate{Field: FieldServing, Op: OpAtLeast, Number: p.MinServing})
	}
	if p.Type != "" {
		f.add(Predicate{Field: FieldType, Op: OpEquals, Text: p.Type})
	}
	if p.Instructions != "" {
		f.add(Predicate{Field: FieldInstructions, Op: OpContains, Text: p.Instructions})
	}
	if len(p.IncludeIngredients) > 0 {
		f.add(Predicate{Field: FieldIngredients, Op: OpContains, Text: model.JoinIngredients(p.IncludeIngredients)})
	}
	if len(p.ExcludeIngredients) > 0 {
		f.add(Predicate{Field: FieldIngredients, Op: OpNotContains, Text: model.JoinIngredients(p.ExcludeIngredients)})
	}
	return f
}

func (f *Filter) add(p Predicate) {
	f.Predicates = append(f.Predicates, p)
}

// Match reports whether r satisfies every predicate.
func (f Filter) Match(r *model.StoredRecipe) bool {
	for _, p := range f.Predicates {
		if !p.Match(r) {
			return false
		}
	}
	return true
}

// Match evaluates a single predicate against r.
func (p Predicate) Match(r *model.StoredRecipe) bool {
	if r == nil {
		return false
	}
	switch p.Op {
	case OpNotNull:
		// integer key is always present on a stored row
		return true
	case OpContains:
		return strings.Contains(textValue(r, p.Field), p.Text)
	case OpNotContains:
		return !strings.Contains(textValue(r, p.Field), p.Text)
	case OpEquals:
		return textValue(r, p.Field) == p.Text
	case OpAtLeast:
		return numberValue(r, p.Field) >= p.Number
	default:
		return false
	}
}

func textValue(r *model.StoredRecipe, field Field) string {
	switch field {
	case FieldName:
		return r.Name
	case FieldType:
		return r.Type
	case FieldIngredients:
		return r.Ingredients
	case FieldInstructions:
		return r.Instructions
	default:
		return ""
	}
}

func numberValue(r *model.StoredRecipe, field Field) int {
	switch field {
	case FieldID:
		return r.ID
	case FieldServing:
		return r.Serving
	default:
		return 0
	}
}
