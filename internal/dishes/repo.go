package dishes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knightmeat/taste-backend/pkg/db/models"
)

// Repository exposes dish persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a dishes repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new dish and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateDishDTO) (*models.Dish, error) {
	dish := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(dish).Error; err != nil {
		return nil, err
	}
	return dish, nil
}

// List returns all dishes ordered by creation time, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Dish, error) {
	var items []models.Dish
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID loads a dish by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Dish, error) {
	var dish models.Dish
	if err := r.db.WithContext(ctx).First(&dish, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}
