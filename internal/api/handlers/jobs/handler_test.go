package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetDesk/internal/api/handlers"
	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
	"github.com/m04kA/SMC-FleetDesk/internal/store"
	"github.com/m04kA/SMC-FleetDesk/pkg/logger"
)

type MockJobsCollection struct {
	mock.Mock
}

func (m *MockJobsCollection) Load(ctx context.Context) store.Snapshot[domain.Job] {
	return m.Called(ctx).Get(0).(store.Snapshot[domain.Job])
}

func (m *MockJobsCollection) Retry(ctx context.Context) store.Snapshot[domain.Job] {
	return m.Called(ctx).Get(0).(store.Snapshot[domain.Job])
}

type MockJobsService struct {
	mock.Mock
}

func (m *MockJobsService) CreateJob(ctx context.Context, input fleetapi.JobInput) (*domain.Job, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobsService) DeleteJob(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestHandler_ListReturnsSnapshot(t *testing.T) {
	jobs := &MockJobsCollection{}
	jobs.On("Load", mock.Anything).Return(store.Snapshot[domain.Job]{
		Items:     []domain.Job{{ID: "j1", Name: "Oil change", Duration: 60, PricePerHour: 50}},
		Loaded:    true,
		FetchedAt: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
	})
	h := NewHandler(jobs, &MockJobsService{}, logger.Nop())

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp handlers.CollectionResponse[handlers.JobResponse]
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Loaded)
	assert.Nil(t, resp.Error)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Oil change", resp.Items[0].Name)
}

func TestHandler_ListKeepsCacheOnError(t *testing.T) {
	jobs := &MockJobsCollection{}
	jobs.On("Load", mock.Anything).Return(store.Snapshot[domain.Job]{
		Items:  []domain.Job{{ID: "j1"}},
		Loaded: true,
		Err:    &fleetapi.APIError{StatusCode: 500, Message: "DB down"},
	})
	h := NewHandler(jobs, &MockJobsService{}, logger.Nop())

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp handlers.CollectionResponse[handlers.JobResponse]
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Items, 1)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DB down", *resp.Error)
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(m *MockJobsService)
		wantStatus int
	}{
		{
			name: "success",
			body: `{"name":" Brakes ","duration":90,"pricePerHour":40}`,
			setup: func(m *MockJobsService) {
				m.On("CreateJob", mock.Anything, fleetapi.JobInput{Name: "Brakes", Duration: 90, PricePerHour: 40}).
					Return(&domain.Job{ID: "j2", Name: "Brakes", Duration: 90, PricePerHour: 40}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "zero duration",
			body:       `{"name":"Brakes","duration":0,"pricePerHour":40}`,
			setup:      func(m *MockJobsService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "forbidden",
			body: `{"name":"Brakes","duration":30,"pricePerHour":40}`,
			setup: func(m *MockJobsService) {
				m.On("CreateJob", mock.Anything, mock.Anything).Return(nil, &fleetapi.APIError{StatusCode: 403})
			},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockJobsService{}
			tt.setup(svc)
			h := NewHandler(&MockJobsCollection{}, svc, logger.Nop())

			w := httptest.NewRecorder()
			h.Create(w, httptest.NewRequest(http.MethodPost, "/api/v1/jobs", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	svc := &MockJobsService{}
	svc.On("DeleteJob", mock.Anything, "j1").Return(nil).Once()
	svc.On("DeleteJob", mock.Anything, "j404").Return(&fleetapi.APIError{StatusCode: 404}).Once()
	h := NewHandler(&MockJobsCollection{}, svc, logger.Nop())

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/jobs/{jobId}", h.Delete).Methods(http.MethodDelete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/jobs/j1", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/jobs/j404", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	svc.AssertExpectations(t)
}

