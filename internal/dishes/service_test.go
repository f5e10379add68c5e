package dishes

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knightmeat/taste-backend/pkg/db/models"
	pkgerrors "github.com/knightmeat/taste-backend/pkg/errors"
)

type stubDishRepo struct {
	created []CreateDishDTO
	items   []models.Dish
	findErr error
}

func (s *stubDishRepo) Create(ctx context.Context, dto CreateDishDTO) (*models.Dish, error) {
	s.created = append(s.created, dto)
	dish := dto.ToModel()
	s.items = append(s.items, *dish)
	return dish, nil
}

func (s *stubDishRepo) List(ctx context.Context) ([]models.Dish, error) {
	return s.items, nil
}

func (s *stubDishRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Dish, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func newDishService(t *testing.T, repo dishRepository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateTrimsAndRejectsEmptyName(t *testing.T) {
	repo := &stubDishRepo{}
	svc := newDishService(t, repo)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateDishRequest{Name: "  Smoked Brisket  ", Price: 1850})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Name != "Smoked Brisket" {
		t.Fatalf("expected trimmed name, got %q", dto.Name)
	}

	_, err = svc.Create(ctx, CreateDishRequest{Name: "   "})
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	svc := newDishService(t, &stubDishRepo{})

	_, err := svc.Get(context.Background(), uuid.New())
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestListMapsAllItems(t *testing.T) {
	repo := &stubDishRepo{}
	svc := newDishService(t, repo)
	ctx := context.Background()

	for _, name := range []string{"Brisket", "Ribs", "Pulled Pork"} {
		if _, err := svc.Create(ctx, CreateDishRequest{Name: name, Price: 1000}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
}
