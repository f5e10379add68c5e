package models

import (
	"time"

	"github.com/google/uuid"
)

// Dish is a catalog entry; price is stored in the smallest currency unit.
type Dish struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:text;not null"`
	ImageURL *string   `gorm:"column:image_url"`
	Price    int64     `gorm:"column:price;not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
