package import_parts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
	"github.com/m04kA/SMC-FleetDesk/pkg/ptr"
)

// UseCase use case для импорта запчастей автомобиля из GSF
type UseCase struct {
	cars         CarsStore
	importer     PartsImporter
	parts        PartsCache
	pollInterval time.Duration
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(cars CarsStore, importer PartsImporter, parts PartsCache, pollInterval time.Duration, logger Logger) *UseCase {
	return &UseCase{
		cars:         cars,
		importer:     importer,
		parts:        parts,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

// Execute запускает импорт и опрашивает автомобиль, пока импорт не закончится
// или не будет отменен ctx. Каждый опрос обновляет автомобиль в кэше.
func (uc *UseCase) Execute(ctx context.Context, carID string) (*domain.Car, error) {
	car, err := uc.Start(ctx, carID)
	if err != nil {
		return car, err
	}
	return uc.Wait(ctx, car.ID)
}

// Start проверяет автомобиль и запускает импорт на сервере, не дожидаясь его окончания
func (uc *UseCase) Start(ctx context.Context, carID string) (*domain.Car, error) {
	carID = strings.TrimSpace(carID)
	if carID == "" {
		return nil, fmt.Errorf("%w: carId is required", ErrInvalidInput)
	}

	car, err := uc.cars.FindCar(ctx, carID)
	if err != nil {
		if errors.Is(err, fleetapi.ErrNotFound) {
			uc.logger.Warn("ImportParts: car id=%s not found", carID)
			return nil, ErrCarNotFound
		}
		uc.logger.Error("ImportParts: failed to get car id=%s: %v", carID, err)
		return nil, fmt.Errorf("%w: failed to get car: %w", ErrInternal, err)
	}

	// кэш мог застрять в состоянии importing после прерванного опроса, сверяемся с сервером
	if car.Import.InProgress() {
		car, err = uc.cars.FetchCar(ctx, car.ID)
		if err != nil {
			uc.logger.Error("ImportParts: failed to refresh car id=%s: %v", carID, err)
			return nil, fmt.Errorf("%w: failed to refresh car: %w", ErrInternal, err)
		}
		if car.Import.InProgress() {
			uc.logger.Warn("ImportParts: car id=%s is already importing", carID)
			return car, ErrAlreadyImporting
		}
	}

	uc.logger.Info("ImportParts: starting GSF import for car id=%s number=%s", car.ID, car.RegistrationNumber)

	if err := uc.importer.ImportGSF(ctx, car.RegistrationNumber); err != nil {
		uc.logger.Error("ImportParts: failed to start import for car id=%s: %v", car.ID, err)
		return nil, err
	}

	// после импорта запчасти автомобиля нужно загрузить заново
	uc.parts.CleanCar(car.ID)

	return car, nil
}

// Wait опрашивает автомобиль, пока импорт не закончится или не будет отменен ctx
func (uc *UseCase) Wait(ctx context.Context, carID string) (*domain.Car, error) {
	ticker := time.NewTicker(uc.pollInterval)
	defer ticker.Stop()

	for {
		car, err := uc.cars.FetchCar(ctx, carID)
		if err != nil {
			uc.logger.Error("ImportParts: failed to poll car id=%s: %v", carID, err)
			return nil, err
		}

		switch car.Import.State {
		case domain.ImportFailed:
			msg := ptr.Value(car.Import.Error)
			uc.logger.Warn("ImportParts: import for car id=%s failed: %s", carID, msg)
			return car, fmt.Errorf("%w: %s", ErrImportFailed, msg)
		case domain.ImportImporting:
			uc.logger.Info("ImportParts: car id=%s progress %d/%d", carID, car.Import.Processed, car.Import.Total)
		default:
			uc.logger.Info("ImportParts: import for car id=%s finished, %d items", carID, car.Import.Processed)
			return car, nil
		}

		select {
		case <-ctx.Done():
			return car, ctx.Err()
		case <-ticker.C:
		}
	}
}
