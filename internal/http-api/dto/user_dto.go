package dto

import "foodgram/internal/http-api/models"

// UserResponse: a user's public profile as seen by the requesting viewer
type UserResponse struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// SubscriptionResponse: one followed author with an embedded recipe sample
type SubscriptionResponse struct {
	ID           int64                 `json:"id"`
	Email        string                `json:"email"`
	Username     string                `json:"username"`
	FirstName    string                `json:"first_name"`
	LastName     string                `json:"last_name"`
	IsSubscribed bool                  `json:"is_subscribed"`
	Recipes      []ShortRecipeResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

func UserFromModel(u models.User, viewer *ViewerContext) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: viewer.SubscribedTo(u.ID),
	}
}

func SubscriptionFromModel(author models.User, recipes []models.Recipe, recipesCount int64) SubscriptionResponse {
	short := make([]ShortRecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		short = append(short, ShortRecipeFromModel(r))
	}
	return SubscriptionResponse{
		ID:           author.ID,
		Email:        author.Email,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		IsSubscribed: true, // by construction: the list holds followed authors
		Recipes:      short,
		RecipesCount: recipesCount,
	}
}
