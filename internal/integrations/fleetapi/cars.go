package fleetapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
)

// CarsService CRUD автомобилей
type CarsService struct {
	client *Client
}

// List GET /api/cars - автомобили текущего клиента
func (s *CarsService) List(ctx context.Context) ([]domain.Car, error) {
	return s.list(ctx, "/api/cars")
}

// ListAll GET /api/cars/all - все автомобили (администратор)
func (s *CarsService) ListAll(ctx context.Context) ([]domain.Car, error) {
	return s.list(ctx, "/api/cars/all")
}

// Get GET /api/cars/:id
func (s *CarsService) Get(ctx context.Context, id string) (*domain.Car, error) {
	var dto carDTO
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		route:  "/api/cars/:id",
		path:   "/api/cars/" + url.PathEscape(id),
		out:    &dto,
	})
	if err != nil {
		return nil, err
	}
	car := dto.toDomain()
	return &car, nil
}

// Create POST /api/cars
func (s *CarsService) Create(ctx context.Context, input CarInput) (*domain.Car, error) {
	var dto carDTO
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/cars",
		path:   "/api/cars",
		body:   input,
		out:    &dto,
	})
	if err != nil {
		return nil, err
	}
	car := dto.toDomain()
	return &car, nil
}

// Update PUT /api/cars/:id
func (s *CarsService) Update(ctx context.Context, id string, input CarInput) (*domain.Car, error) {
	var dto carDTO
	err := s.client.do(ctx, request{
		method: http.MethodPut,
		route:  "/api/cars/:id",
		path:   "/api/cars/" + url.PathEscape(id),
		body:   input,
		out:    &dto,
	})
	if err != nil {
		return nil, err
	}
	car := dto.toDomain()
	return &car, nil
}

// Delete DELETE /api/cars/:id
func (s *CarsService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, request{
		method: http.MethodDelete,
		route:  "/api/cars/:id",
		path:   "/api/cars/" + url.PathEscape(id),
	})
}

func (s *CarsService) list(ctx context.Context, path string) ([]domain.Car, error) {
	var dtos []carDTO
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		route:  path,
		path:   path,
		out:    &dtos,
	})
	if err != nil {
		return nil, err
	}
	return convertList(dtos, carDTO.toDomain), nil
}
