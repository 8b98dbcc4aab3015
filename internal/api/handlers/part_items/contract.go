package part_items

import (
	"context"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
	"github.com/m04kA/SMC-FleetDesk/internal/store"
)

// CarPartsCollection запчасти в наличии для выбранного автомобиля
type CarPartsCollection interface {
	ForCar(ctx context.Context, carID string) store.Snapshot[domain.PartItem]
	RetryForCar(ctx context.Context, carID string) store.Snapshot[domain.PartItem]
	Clean()
}

// PartsCollection полный склад (для администратора)
type PartsCollection interface {
	Load(ctx context.Context) store.Snapshot[domain.PartItem]
	Retry(ctx context.Context) store.Snapshot[domain.PartItem]
}

type PartItemsService interface {
	CreatePartItem(ctx context.Context, input fleetapi.PartItemInput) (*domain.PartItem, error)
	DeletePartItem(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
