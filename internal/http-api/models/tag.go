package models

// Tag is immutable reference data, seeded outside the user-facing API.
type Tag struct {
	ID    int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name  string `json:"name" gorm:"uniqueIndex;size:200;not null"`
	Color string `json:"color" gorm:"uniqueIndex;size:7;not null"` // hex display color, e.g. #49B64E
	Slug  string `json:"slug" gorm:"uniqueIndex;size:200;not null"`
}

func (Tag) TableName() string {
	return "tags"
}
