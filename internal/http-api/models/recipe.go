package models

import "time"

type Recipe struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	AuthorID    int64     `json:"author_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Image       string    `json:"image" gorm:"not null"` // opaque image reference
	Text        string    `json:"text" gorm:"type:text;not null"`
	CookingTime int       `json:"cooking_time" gorm:"not null;check:cooking_time >= 1"`
	PubDate     time.Time `json:"pub_date" gorm:"autoCreateTime;index"`

	// Associations
	Author      *User              `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Tags        []Tag              `json:"tags,omitempty" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE;"`
	Ingredients []IngredientAmount `json:"ingredients,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// explicit join model so the table carries its own id and cascade rule
type RecipeTag struct {
	ID       int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	RecipeID int64 `json:"recipe_id" gorm:"index;not null"`
	TagID    int64 `json:"tag_id" gorm:"index;not null"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}

// IngredientAmount binds one Recipe to one Ingredient with a quantity.
type IngredientAmount struct {
	ID           int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	RecipeID     int64 `json:"recipe_id" gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	IngredientID int64 `json:"ingredient_id" gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	Amount       int   `json:"amount" gorm:"not null;check:amount >= 1"`

	Ingredient *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID"`
}

func (IngredientAmount) TableName() string {
	return "ingredient_amounts"
}
