package drafts

import (
	"context"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/store"
)

// JobsCatalog справочник работ с однократной загрузкой
type JobsCatalog interface {
	Load(ctx context.Context) store.Snapshot[domain.Job]
}

// PartsCatalog запчасти в наличии для автомобиля
type PartsCatalog interface {
	ForCar(ctx context.Context, carID string) store.Snapshot[domain.PartItem]
}

// CarFinder поиск автомобиля пользователя
type CarFinder interface {
	FindCar(ctx context.Context, id string) (*domain.Car, error)
}

// DraftsObserver сборщик метрик открытых черновиков
type DraftsObserver interface {
	SetOpenDrafts(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
