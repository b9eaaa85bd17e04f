package dto

import "foodgram/internal/http-api/models"

type IngredientResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func IngredientFromModel(i models.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:              i.ID,
		Name:            i.Name,
		MeasurementUnit: i.MeasurementUnit,
	}
}
