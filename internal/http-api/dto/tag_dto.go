package dto

import "foodgram/internal/http-api/models"

type TagResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

func TagFromModel(t models.Tag) TagResponse {
	return TagResponse{
		ID:    t.ID,
		Name:  t.Name,
		Color: t.Color,
		Slug:  t.Slug,
	}
}
