package session

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-FleetDesk/internal/api/handlers"
	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
)

// LoginRequest HTTP request model
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest HTTP request model
type RegisterRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=6"`
	Name       string  `json:"name" validate:"required,max=100"`
	PostalCode *string `json:"postalCode,omitempty" validate:"omitempty,max=10"`
}

// SessionResponse HTTP response model. Токен клиенту не отдается.
type SessionResponse struct {
	Authenticated bool                   `json:"authenticated"`
	User          *handlers.UserResponse `json:"user,omitempty"`
	ExpiresAt     *string                `json:"expiresAt,omitempty"`
}

func (r *LoginRequest) toAPI() fleetapi.LoginRequest {
	return fleetapi.LoginRequest{
		Email:    strings.TrimSpace(r.Email),
		Password: r.Password,
	}
}

func (r *RegisterRequest) toAPI() fleetapi.RegisterRequest {
	req := fleetapi.RegisterRequest{
		Email:    strings.TrimSpace(r.Email),
		Password: r.Password,
		Name:     strings.TrimSpace(r.Name),
	}
	if r.PostalCode != nil && strings.TrimSpace(*r.PostalCode) != "" {
		code := strings.ToUpper(strings.TrimSpace(*r.PostalCode))
		req.PostalCode = &code
	}
	return req
}

func newSessionResponse(user *domain.User, expiresAt time.Time) SessionResponse {
	if user == nil {
		return SessionResponse{}
	}

	u := handlers.NewUserResponse(*user)
	resp := SessionResponse{Authenticated: true, User: &u}
	if !expiresAt.IsZero() {
		at := expiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &at
	}
	return resp
}
