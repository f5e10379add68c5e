package dishes

import (
	"time"

	"github.com/google/uuid"

	"github.com/knightmeat/taste-backend/pkg/db/models"
)

// DishDTO is the transport shape for catalog entries.
type DishDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ImageURL  *string   `json:"image_url"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateDishDTO holds the data required to persist a new dish.
type CreateDishDTO struct {
	Name     string
	ImageURL *string
	Price    int64
}

func FromModel(d *models.Dish) *DishDTO {
	if d == nil {
		return nil
	}
	return &DishDTO{
		ID:        d.ID,
		Name:      d.Name,
		ImageURL:  d.ImageURL,
		Price:     d.Price,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (c CreateDishDTO) ToModel() *models.Dish {
	return &models.Dish{
		ID:       uuid.New(),
		Name:     c.Name,
		ImageURL: c.ImageURL,
		Price:    c.Price,
	}
}
