package import_parts

import (
	"context"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
)

// CarsStore кэш автомобилей
type CarsStore interface {
	FindCar(ctx context.Context, id string) (*domain.Car, error)
	FetchCar(ctx context.Context, id string) (*domain.Car, error)
}

// PartsImporter запуск импорта запчастей в fleet API
type PartsImporter interface {
	ImportGSF(ctx context.Context, carNumber string) error
}

// PartsCache кэш запчастей по автомобилям
type PartsCache interface {
	CleanCar(carID string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
