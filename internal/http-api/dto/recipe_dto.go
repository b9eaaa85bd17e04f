package dto

import (
	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/service"
)

// ViewerContext carries the acting user's relation sets so responses can be
// decorated without per-row queries. The zero value (or nil) means an
// anonymous viewer: every flag renders false.
type ViewerContext struct {
	FavoriteIDs   map[int64]bool
	CartIDs       map[int64]bool
	SubscribedIDs map[int64]bool
}

func (v *ViewerContext) Favorited(recipeID int64) bool {
	return v != nil && v.FavoriteIDs[recipeID]
}

func (v *ViewerContext) InCart(recipeID int64) bool {
	return v != nil && v.CartIDs[recipeID]
}

func (v *ViewerContext) SubscribedTo(authorID int64) bool {
	return v != nil && v.SubscribedIDs[authorID]
}

// IngredientPair is one (ingredient id, amount) entry of a recipe write.
type IngredientPair struct {
	ID     int64 `json:"id" binding:"required"`
	Amount int   `json:"amount" binding:"required,min=1"`
}

// WriteRecipeDTO used for POST /api/recipes and PATCH /api/recipes/:id
type WriteRecipeDTO struct {
	Name        string           `json:"name" binding:"required,max=200"`
	Image       string           `json:"image" binding:"required"`
	Text        string           `json:"text" binding:"required"`
	CookingTime int              `json:"cooking_time" binding:"required,min=1"`
	Tags        []int64          `json:"tags" binding:"required"`
	Ingredients []IngredientPair `json:"ingredients" binding:"required"`
}

func (d WriteRecipeDTO) ToInput() service.RecipeInput {
	ingredients := make([]service.IngredientInput, 0, len(d.Ingredients))
	for _, p := range d.Ingredients {
		ingredients = append(ingredients, service.IngredientInput{ID: p.ID, Amount: p.Amount})
	}
	return service.RecipeInput{
		Name:        d.Name,
		Image:       d.Image,
		Text:        d.Text,
		CookingTime: d.CookingTime,
		TagIDs:      d.Tags,
		Ingredients: ingredients,
	}
}

// IngredientAmountResponse: one ingredient line of a recipe
type IngredientAmountResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse: full recipe representation
type RecipeResponse struct {
	ID               int64                      `json:"id"`
	Tags             []TagResponse              `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []IngredientAmountResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

// ShortRecipeResponse: compact representation used by toggle responses and
// subscription embeds
type ShortRecipeResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeListResponse: paginated recipe listing
type RecipeListResponse struct {
	Items []RecipeResponse `json:"items"`
	Total int64            `json:"total"`
}

func RecipeFromModel(r models.Recipe, viewer *ViewerContext) RecipeResponse {
	tags := make([]TagResponse, 0, len(r.Tags))
	for _, t := range r.Tags {
		tags = append(tags, TagFromModel(t))
	}

	ingredients := make([]IngredientAmountResponse, 0, len(r.Ingredients))
	for _, ia := range r.Ingredients {
		line := IngredientAmountResponse{
			ID:     ia.IngredientID,
			Amount: ia.Amount,
		}
		if ia.Ingredient != nil {
			line.Name = ia.Ingredient.Name
			line.MeasurementUnit = ia.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, line)
	}

	var author UserResponse
	if r.Author != nil {
		author = UserFromModel(*r.Author, viewer)
	}

	return RecipeResponse{
		ID:               r.ID,
		Tags:             tags,
		Author:           author,
		Ingredients:      ingredients,
		IsFavorited:      viewer.Favorited(r.ID),
		IsInShoppingCart: viewer.InCart(r.ID),
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}

func ShortRecipeFromModel(r models.Recipe) ShortRecipeResponse {
	return ShortRecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}
