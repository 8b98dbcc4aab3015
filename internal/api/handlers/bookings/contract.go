package bookings

import (
	"context"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/store"
)

type BookingsCollection interface {
	Load(ctx context.Context) store.Snapshot[domain.Booking]
	Retry(ctx context.Context) store.Snapshot[domain.Booking]
}

type BookingsService interface {
	DeleteBooking(ctx context.Context, id string) error
	PayBooking(ctx context.Context, id string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
