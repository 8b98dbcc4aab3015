package profile

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
	"github.com/m04kA/SMC-FleetDesk/pkg/logger"
	"github.com/m04kA/SMC-FleetDesk/pkg/ptr"
)

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Profile(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, input fleetapi.ProfileInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestHandler_UpdatePostalCode(t *testing.T) {
	svc := &MockProfileService{}
	svc.On("UpdateProfile", mock.Anything, fleetapi.ProfileInput{PostalCode: ptr.Ptr("AB1 2CD")}).
		Return(&domain.User{ID: "u1", PostalCode: ptr.Ptr("AB1 2CD")}, nil)
	h := NewHandler(svc, logger.Nop())

	w := httptest.NewRecorder()
	h.Update(w, httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(`{"postalCode":" ab1 2cd "}`)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"postalCode":"AB1 2CD"`)
	svc.AssertExpectations(t)
}

func TestHandler_UpdateErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "empty update", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "too long", body: `{"postalCode":"12345678901"}`, wantStatus: http.StatusBadRequest},
		{
			name:       "invalid postal code",
			body:       `{"postalCode":"#1"}`,
			err:        fmt.Errorf("%w: %q", domain.ErrInvalidPostalCode, "#1"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "server rejects",
			body:       `{"name":"Ann"}`,
			err:        &fleetapi.APIError{StatusCode: 422, Message: "Name taken"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockProfileService{}
			if tt.err != nil {
				svc.On("UpdateProfile", mock.Anything, mock.Anything).Return(nil, tt.err)
			}
			h := NewHandler(svc, logger.Nop())

			w := httptest.NewRecorder()
			h.Update(w, httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
