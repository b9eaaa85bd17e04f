package models

import "time"

// The three marker relations share one shape: a unique (user, target) pair.
// Uniqueness is enforced at the storage layer so concurrent duplicate adds
// lose the race to the constraint, not to application checks.

type Favorite struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   int64     `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID int64     `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"recipe_id"`
	AddedAt  time.Time `gorm:"autoCreateTime" json:"added_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;" json:"recipe,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}

type ShoppingCart struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   int64     `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"user_id"`
	RecipeID int64     `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"recipe_id"`
	AddedAt  time.Time `gorm:"autoCreateTime" json:"added_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;" json:"recipe,omitempty"`
}

func (ShoppingCart) TableName() string {
	return "shopping_carts"
}

type Subscription struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   int64     `gorm:"not null;uniqueIndex:idx_subscription_user_author" json:"user_id"`
	AuthorID int64     `gorm:"not null;uniqueIndex:idx_subscription_user_author" json:"author_id"`
	AddedAt  time.Time `gorm:"autoCreateTime" json:"added_at"`

	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;" json:"author,omitempty"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
