package fleetapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
)

// UsersService профиль пользователя
type UsersService struct {
	client *Client
}

// Get GET /api/users/:id
func (s *UsersService) Get(ctx context.Context, id string) (*domain.User, error) {
	var dto userDTO
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		route:  "/api/users/:id",
		path:   "/api/users/" + url.PathEscape(id),
		out:    &dto,
	})
	if err != nil {
		return nil, err
	}
	user := dto.toDomain()
	return &user, nil
}

// Update PUT /api/users/:id
func (s *UsersService) Update(ctx context.Context, id string, input ProfileInput) (*domain.User, error) {
	var dto userDTO
	err := s.client.do(ctx, request{
		method: http.MethodPut,
		route:  "/api/users/:id",
		path:   "/api/users/" + url.PathEscape(id),
		body:   input,
		out:    &dto,
	})
	if err != nil {
		return nil, err
	}
	user := dto.toDomain()
	return &user, nil
}
