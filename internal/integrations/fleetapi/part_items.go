package fleetapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
)

// PartItemsService склад запчастей
type PartItemsService struct {
	client *Client
}

// List GET /api/part-items
func (s *PartItemsService) List(ctx context.Context) ([]domain.PartItem, error) {
	return s.list(ctx, "/api/part-items", "/api/part-items")
}

// GoldInStockForCar GET /api/part-items/car/:id/gold-in-stock
func (s *PartItemsService) GoldInStockForCar(ctx context.Context, carID string) ([]domain.PartItem, error) {
	return s.list(ctx, "/api/part-items/car/:id/gold-in-stock",
		"/api/part-items/car/"+url.PathEscape(carID)+"/gold-in-stock")
}

// Create POST /api/part-items
func (s *PartItemsService) Create(ctx context.Context, input PartItemInput) (*domain.PartItem, error) {
	var dto partItemDTO
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/part-items",
		path:   "/api/part-items",
		body:   input,
		out:    &dto,
	})
	if err != nil {
		return nil, err
	}
	item := dto.toDomain()
	return &item, nil
}

// Delete DELETE /api/part-items/:id
func (s *PartItemsService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, request{
		method: http.MethodDelete,
		route:  "/api/part-items/:id",
		path:   "/api/part-items/" + url.PathEscape(id),
	})
}

// ImportGSF POST /api/part-items/import/gsf/:carNumber - запускает асинхронный импорт,
// прогресс отражается в importStatus автомобиля
func (s *PartItemsService) ImportGSF(ctx context.Context, carNumber string) error {
	return s.client.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/part-items/import/gsf/:carNumber",
		path:   "/api/part-items/import/gsf/" + url.PathEscape(carNumber),
	})
}

func (s *PartItemsService) list(ctx context.Context, route, path string) ([]domain.PartItem, error) {
	var dtos []partItemDTO
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		route:  route,
		path:   path,
		out:    &dtos,
	})
	if err != nil {
		return nil, err
	}
	return convertList(dtos, partItemDTO.toDomain), nil
}
