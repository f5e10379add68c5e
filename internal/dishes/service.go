package dishes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knightmeat/taste-backend/pkg/db/models"
	pkgerrors "github.com/knightmeat/taste-backend/pkg/errors"
)

// Service defines the behavior needed by the dishes controller.
type Service interface {
	Create(ctx context.Context, req CreateDishRequest) (*DishDTO, error)
	List(ctx context.Context) ([]DishDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*DishDTO, error)
}

// CreateDishRequest is the validated payload for creating a dish.
type CreateDishRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
	Price    int64   `json:"price" validate:"gte=0"`
}

type dishRepository interface {
	Create(ctx context.Context, dto CreateDishDTO) (*models.Dish, error)
	List(ctx context.Context) ([]models.Dish, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Dish, error)
}

type service struct {
	repo dishRepository
}

// NewService constructs a dish catalog service.
func NewService(repo dishRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dish repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, req CreateDishRequest) (*DishDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	dish, err := s.repo.Create(ctx, CreateDishDTO{
		Name:     name,
		ImageURL: req.ImageURL,
		Price:    req.Price,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create dish")
	}
	return FromModel(dish), nil
}

func (s *service) List(ctx context.Context) ([]DishDTO, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list dishes")
	}
	out := make([]DishDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*DishDTO, error) {
	dish, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "dish not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find dish")
	}
	return FromModel(dish), nil
}
