package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/knightmeat/taste-backend/internal/dishes"
	pkgerrors "github.com/knightmeat/taste-backend/pkg/errors"
)

type stubDishService struct {
	createFn func(ctx context.Context, req dishes.CreateDishRequest) (*dishes.DishDTO, error)
	listFn   func(ctx context.Context) ([]dishes.DishDTO, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*dishes.DishDTO, error)
}

func (s *stubDishService) Create(ctx context.Context, req dishes.CreateDishRequest) (*dishes.DishDTO, error) {
	return s.createFn(ctx, req)
}

func (s *stubDishService) List(ctx context.Context) ([]dishes.DishDTO, error) {
	return s.listFn(ctx)
}

func (s *stubDishService) Get(ctx context.Context, id uuid.UUID) (*dishes.DishDTO, error) {
	return s.getFn(ctx, id)
}

func TestDishCreateCreated(t *testing.T) {
	svc := &stubDishService{
		createFn: func(_ context.Context, req dishes.CreateDishRequest) (*dishes.DishDTO, error) {
			return &dishes.DishDTO{ID: uuid.New(), Name: req.Name, Price: req.Price}, nil
		},
	}

	body := `{"name":"Karelian stew","price":1450}`
	req := httptest.NewRequest(http.MethodPost, "/api/dishes", strings.NewReader(body))
	rec := httptest.NewRecorder()

	DishCreate(svc, testLogger())(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var env struct {
		Data dishes.DishDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Data.Name != "Karelian stew" || env.Data.Price != 1450 {
		t.Fatalf("unexpected dish: %+v", env.Data)
	}
}

func TestDishCreateRejectsNegativePrice(t *testing.T) {
	svc := &stubDishService{
		createFn: func(context.Context, dishes.CreateDishRequest) (*dishes.DishDTO, error) {
			t.Fatal("service should not run for a negative price")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/dishes", strings.NewReader(`{"name":"Stew","price":-1}`))
	rec := httptest.NewRecorder()

	DishCreate(svc, testLogger())(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDishListEmpty(t *testing.T) {
	svc := &stubDishService{
		listFn: func(context.Context) ([]dishes.DishDTO, error) {
			return []dishes.DishDTO{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/dishes", nil)
	rec := httptest.NewRecorder()

	DishList(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"data":[]}` {
		t.Fatalf("body = %s", got)
	}
}

func TestDishGetMapsNotFound(t *testing.T) {
	svc := &stubDishService{
		getFn: func(context.Context, uuid.UUID) (*dishes.DishDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "dish not found")
		},
	}

	r := chi.NewRouter()
	r.Get("/api/dishes/{id}", DishGet(svc, testLogger()))

	req := httptest.NewRequest(http.MethodGet, "/api/dishes/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDishGetRejectsMalformedID(t *testing.T) {
	svc := &stubDishService{
		getFn: func(context.Context, uuid.UUID) (*dishes.DishDTO, error) {
			t.Fatal("service should not run for a malformed id")
			return nil, nil
		},
	}

	r := chi.NewRouter()
	r.Get("/api/dishes/{id}", DishGet(svc, testLogger()))

	req := httptest.NewRequest(http.MethodGet, "/api/dishes/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
