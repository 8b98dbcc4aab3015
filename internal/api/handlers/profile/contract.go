package profile

import (
	"context"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
)

type ProfileService interface {
	Profile(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, input fleetapi.ProfileInput) (*domain.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
