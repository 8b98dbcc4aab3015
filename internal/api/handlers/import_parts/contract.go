package import_parts

import (
	"context"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
)

type ImportPartsUseCase interface {
	Start(ctx context.Context, carID string) (*domain.Car, error)
	Wait(ctx context.Context, carID string) (*domain.Car, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
