package store

import (
	"context"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
)

// AuthAPI операции авторизации fleet API
type AuthAPI interface {
	Login(ctx context.Context, req fleetapi.LoginRequest) (*fleetapi.AuthResult, error)
	Register(ctx context.Context, req fleetapi.RegisterRequest) (*fleetapi.AuthResult, error)
	RegisterMechanic(ctx context.Context, req fleetapi.RegisterRequest) (*domain.User, error)
	Logout(ctx context.Context) error
	Check(ctx context.Context) (*domain.User, error)
}

// CarsAPI операции с автомобилями
type CarsAPI interface {
	List(ctx context.Context) ([]domain.Car, error)
	ListAll(ctx context.Context) ([]domain.Car, error)
	Get(ctx context.Context, id string) (*domain.Car, error)
	Create(ctx context.Context, input fleetapi.CarInput) (*domain.Car, error)
	Update(ctx context.Context, id string, input fleetapi.CarInput) (*domain.Car, error)
	Delete(ctx context.Context, id string) error
}

// JobsAPI операции со справочником работ
type JobsAPI interface {
	List(ctx context.Context) ([]domain.Job, error)
	Create(ctx context.Context, input fleetapi.JobInput) (*domain.Job, error)
	Delete(ctx context.Context, id string) error
}

// PartItemsAPI операции со складом запчастей
type PartItemsAPI interface {
	List(ctx context.Context) ([]domain.PartItem, error)
	GoldInStockForCar(ctx context.Context, carID string) ([]domain.PartItem, error)
	Create(ctx context.Context, input fleetapi.PartItemInput) (*domain.PartItem, error)
	Delete(ctx context.Context, id string) error
}

// BookingsAPI операции с бронированиями
type BookingsAPI interface {
	List(ctx context.Context) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	Delete(ctx context.Context, id string) error
	Pay(ctx context.Context, id string) (*domain.Booking, error)
}

// UsersAPI операции с профилем
type UsersAPI interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, input fleetapi.ProfileInput) (*domain.User, error)
}

// API набор ресурсных клиентов, с которыми работает контейнер
type API struct {
	Auth      AuthAPI
	Cars      CarsAPI
	Jobs      JobsAPI
	PartItems PartItemsAPI
	Bookings  BookingsAPI
	Users     UsersAPI
}

// TokenRepository постоянное хранилище токена сессии
type TokenRepository interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, error)
	Delete(ctx context.Context) error
}

// FetchObserver сборщик метрик загрузок коллекций
type FetchObserver interface {
	IncStoreFetch(collection, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
