package models

import (
	"time"
)

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	Username  string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	FirstName string    `gorm:"size:150;not null" json:"first_name"`
	LastName  string    `gorm:"size:150;not null" json:"last_name"`
	Password  string    `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
