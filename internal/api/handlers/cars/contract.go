package cars

import (
	"context"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
	"github.com/m04kA/SMC-FleetDesk/internal/store"
)

type CarsCollection interface {
	Load(ctx context.Context) store.Snapshot[domain.Car]
	Retry(ctx context.Context) store.Snapshot[domain.Car]
}

type CarsService interface {
	CreateCar(ctx context.Context, input fleetapi.CarInput) (*domain.Car, error)
	UpdateCar(ctx context.Context, id string, input fleetapi.CarInput) (*domain.Car, error)
	DeleteCar(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
