package model

import (
	"time"
)

// Recipe is the wire and domain shape of a recipe.
type Recipe struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Serving      int        `json:"serving"`
	Ingredients  []string   `json:"ingredients"`
	Instructions string     `json:"instructions"`
	CreateTime   *time.Time `json:"createTime,omitempty"`
	UpdateTime   *time.Time `json:"updateTime,omitempty"`
}

// StoredRecipe is the persisted row. Ingredients are held as one delimited string.
type StoredRecipe struct {
	ID           int       `gorm:"primaryKey;autoIncrement:false"`
	Name         string    `gorm:"size:100;not null"`
	Type         string    `gorm:"size:30;not null;index"`
	Serving      int       `gorm:"not null"`
	Ingredients  string    `gorm:"type:text;not null"`
	Instructions string    `gorm:"type:text;not null"`
	CreateTime   time.Time `gorm:"column:create_time;not null"`
	UpdateTime   time.Time `gorm:"column:update_time;not null"`
}

// TableName returns the table name for the StoredRecipe model
func (StoredRecipe) TableName() string {
	return "recipes"
}
