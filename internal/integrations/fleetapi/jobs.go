package fleetapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
)

// JobsService справочник работ
type JobsService struct {
	client *Client
}

// List GET /api/jobs
func (s *JobsService) List(ctx context.Context) ([]domain.Job, error) {
	var dtos []jobDTO
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		route:  "/api/jobs",
		path:   "/api/jobs",
		out:    &dtos,
	})
	if err != nil {
		return nil, err
	}
	return convertList(dtos, jobDTO.toDomain), nil
}

// Create POST /api/jobs (администратор)
func (s *JobsService) Create(ctx context.Context, input JobInput) (*domain.Job, error) {
	var dto jobDTO
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/jobs",
		path:   "/api/jobs",
		body:   input,
		out:    &dto,
	})
	if err != nil {
		return nil, err
	}
	job := dto.toDomain()
	return &job, nil
}

// Delete DELETE /api/jobs/:id (администратор)
func (s *JobsService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, request{
		method: http.MethodDelete,
		route:  "/api/jobs/:id",
		path:   "/api/jobs/" + url.PathEscape(id),
	})
}
