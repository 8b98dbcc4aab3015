package session

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
)

type AuthService interface {
	Login(ctx context.Context, req fleetapi.LoginRequest) (*domain.User, error)
	Register(ctx context.Context, req fleetapi.RegisterRequest) (*domain.User, error)
	RegisterMechanic(ctx context.Context, req fleetapi.RegisterRequest) (*domain.User, error)
	Logout(ctx context.Context) error
}

type SessionState interface {
	User() (domain.User, bool)
	ExpiresAt() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
