package models

// Ingredient is reference data, seeded outside the user-facing API.
type Ingredient struct {
	ID              int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string `json:"name" gorm:"uniqueIndex:idx_ingredient_name_unit;size:200;not null"`
	MeasurementUnit string `json:"measurement_unit" gorm:"uniqueIndex:idx_ingredient_name_unit;size:200;not null"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
