package create_booking

import (
	"context"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
	"github.com/m04kA/SMC-FleetDesk/internal/service/drafts"
)

// DraftRegistry реестр открытых черновиков
type DraftRegistry interface {
	BeginSubmit(id string) (*domain.Draft, error)
	AbortSubmit(id string)
	Lines(ctx context.Context, draft *domain.Draft) drafts.Lines
	Complete(id string) error
}

// BookingsClient клиент fleet API для создания бронирований
type BookingsClient interface {
	Create(ctx context.Context, req *fleetapi.CreateBookingRequest) (*domain.Booking, error)
}

// BookingsStore кэш бронирований клиента
type BookingsStore interface {
	AppendBooking(booking domain.Booking)
}

// SessionProvider текущий пользователь
type SessionProvider interface {
	User() (domain.User, bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
