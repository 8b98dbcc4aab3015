package fleetapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
)

// BookingsService бронирования
type BookingsService struct {
	client *Client
}

// List GET /api/bookings - бронирования текущего клиента
func (s *BookingsService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.list(ctx, "/api/bookings")
}

// ListAll GET /api/bookings/all - все бронирования (администратор)
func (s *BookingsService) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return s.list(ctx, "/api/bookings/all")
}

// Create POST /api/bookings - единственный запрос, частичного создания нет
func (s *BookingsService) Create(ctx context.Context, req *CreateBookingRequest) (*domain.Booking, error) {
	var dto bookingDTO
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/bookings",
		path:   "/api/bookings",
		body:   newCreateBookingDTO(req),
		out:    &dto,
	})
	if err != nil {
		return nil, err
	}
	booking := dto.toDomain()
	return &booking, nil
}

// Delete DELETE /api/bookings/:id
func (s *BookingsService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, request{
		method: http.MethodDelete,
		route:  "/api/bookings/:id",
		path:   "/api/bookings/" + url.PathEscape(id),
	})
}

// Pay POST /api/bookings/:id/pay
func (s *BookingsService) Pay(ctx context.Context, id string) (*domain.Booking, error) {
	var dto bookingDTO
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/bookings/:id/pay",
		path:   "/api/bookings/" + url.PathEscape(id) + "/pay",
		out:    &dto,
	})
	if err != nil {
		return nil, err
	}
	booking := dto.toDomain()
	return &booking, nil
}

func (s *BookingsService) list(ctx context.Context, path string) ([]domain.Booking, error) {
	var dtos []bookingDTO
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		route:  path,
		path:   path,
		out:    &dtos,
	})
	if err != nil {
		return nil, err
	}
	return convertList(dtos, bookingDTO.toDomain), nil
}
