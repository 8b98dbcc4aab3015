package import_parts

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FleetDesk/internal/api/handlers"
	importParts "github.com/m04kA/SMC-FleetDesk/internal/usecase/import_parts"
)

const (
	msgInvalidCarID     = "некорректный ID автомобиля"
	msgInvalidWait      = "параметр wait должен быть true или false"
	msgCarNotFound      = "автомобиль не найден"
	msgAlreadyImporting = "импорт запчастей для автомобиля уже идет"
	msgImportFailed     = "импорт запчастей завершился с ошибкой"
	msgImportTimeout    = "импорт не завершился за отведенное время"
)

type Handler struct {
	useCase ImportPartsUseCase
	// baseCtx ограничивает фоновый опрос временем жизни сервиса
	baseCtx     context.Context
	waitTimeout time.Duration
	logger      Logger
}

func NewHandler(baseCtx context.Context, useCase ImportPartsUseCase, waitTimeout time.Duration, logger Logger) *Handler {
	return &Handler{
		useCase:     useCase,
		baseCtx:     baseCtx,
		waitTimeout: waitTimeout,
		logger:      logger,
	}
}

// Handle POST /api/v1/cars/{carId}/import-parts?wait=true
//
// Без wait импорт запускается, а прогресс опрашивается в фоне и обновляет кэш автомобилей.
// С wait=true ответ приходит после окончания импорта.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["carId"]
	if carID == "" {
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	wait := false
	if raw := r.URL.Query().Get("wait"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidWait)
			return
		}
		wait = parsed
	}

	car, err := h.useCase.Start(r.Context(), carID)
	if err != nil {
		h.respondError(w, carID, err)
		return
	}

	if !wait {
		go h.waitInBackground(car.ID)

		h.logger.Info("POST /cars/{carId}/import-parts - Import started: car_id=%s", car.ID)
		handlers.RespondJSON(w, http.StatusAccepted, handlers.NewCarResponse(*car))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.waitTimeout)
	defer cancel()

	car, err = h.useCase.Wait(ctx, car.ID)
	if err != nil {
		h.respondError(w, carID, err)
		return
	}

	h.logger.Info("POST /cars/{carId}/import-parts - Import finished: car_id=%s, processed=%d", car.ID, car.Import.Processed)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewCarResponse(*car))
}

func (h *Handler) waitInBackground(carID string) {
	ctx, cancel := context.WithTimeout(h.baseCtx, h.waitTimeout)
	defer cancel()

	if _, err := h.useCase.Wait(ctx, carID); err != nil && !errors.Is(err, context.Canceled) {
		h.logger.Warn("POST /cars/{carId}/import-parts - Background import did not finish: car_id=%s, error=%v", carID, err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, carID string, err error) {
	switch {
	case errors.Is(err, importParts.ErrInvalidInput):
		h.logger.Warn("POST /cars/{carId}/import-parts - Invalid car ID: %q", carID)
		handlers.RespondBadRequest(w, msgInvalidCarID)

	case errors.Is(err, importParts.ErrCarNotFound):
		h.logger.Warn("POST /cars/{carId}/import-parts - Car not found: car_id=%s", carID)
		handlers.RespondNotFound(w, msgCarNotFound)

	case errors.Is(err, importParts.ErrAlreadyImporting):
		h.logger.Warn("POST /cars/{carId}/import-parts - Already importing: car_id=%s", carID)
		handlers.RespondConflict(w, msgAlreadyImporting)

	case errors.Is(err, importParts.ErrImportFailed):
		h.logger.Warn("POST /cars/{carId}/import-parts - Import failed: car_id=%s, error=%v", carID, err)
		handlers.RespondError(w, http.StatusBadGateway, msgImportFailed)

	case errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("POST /cars/{carId}/import-parts - Import timed out: car_id=%s", carID)
		handlers.RespondError(w, http.StatusGatewayTimeout, msgImportTimeout)

	default:
		h.logger.Error("POST /cars/{carId}/import-parts - Failed: car_id=%s, error=%v", carID, err)
		handlers.RespondAPIError(w, err)
	}
}
