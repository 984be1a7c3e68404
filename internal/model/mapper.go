package model

import (
	"regexp"
	"strings"
	"time"

	"k8s.io/utils/clock"
)

// IngredientSeparator joins ingredients in the stored representation.
const IngredientSeparator = ", "

var ingredientSplitter = regexp.MustCompile(`\s*,\s*`)

// Mapper converts between Recipe and StoredRecipe and stamps timestamps.
type Mapper struct {
	clock clock.PassiveClock
}

// NewMapper creates a Mapper reading time from c. A nil clock means the wall clock.
func NewMapper(c clock.PassiveClock) *Mapper {
	if c == nil {
		c = clock.RealClock{}
	}
	return &Mapper{clock: c}
}

// ToStored builds the persisted form. A recipe without CreateTime is new and
// gets both stamps from a single clock reading; otherwise CreateTime is kept
// and only UpdateTime moves.
func (m *Mapper) ToStored(r *Recipe) *StoredRecipe {
	now := m.now()
	stored := &StoredRecipe{
		ID:           r.ID,
		Name:         r.Name,
		Type:         r.Type,
		Serving:      r.Serving,
		Ingredients:  JoinIngredients(r.Ingredients),
		Instructions: r.Instructions,
		UpdateTime:   now,
	}
	if r.CreateTime == nil || r.CreateTime.IsZero() {
		stored.CreateTime = now
	} else {
		stored.CreateTime = *r.CreateTime
	}
	return stored
}

// ToDomain builds the wire form from a stored row.
func (m *Mapper) ToDomain(s *StoredRecipe) *Recipe {
	createTime := s.CreateTime
	updateTime := s.UpdateTime
	return &Recipe{
		ID:           s.ID,
		Name:         s.Name,
		Type:         s.Type,
		Serving:      s.Serving,
		Ingredients:  SplitIngredients(s.Ingredients),
		Instructions: s.Instructions,
		CreateTime:   &createTime,
		UpdateTime:   &updateTime,
	}
}

// now is truncated to microseconds in UTC, the precision Postgres keeps.
func (m *Mapper) now() time.Time {
	return m.clock.Now().UTC().Truncate(time.Microsecond)
}

// JoinIngredients produces the stored ingredient string.
func JoinIngredients(ingredients []string) string {
	return strings.Join(ingredients, IngredientSeparator)
}

// SplitIngredients reverses JoinIngredients. Ingredients that themselves
// contain a comma come back as several elements.
func SplitIngredients(stored string) []string {
	if stored == "" {
		return []string{}
	}
	return ingredientSplitter.Split(stored, -1)
}
