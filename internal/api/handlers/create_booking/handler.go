package create_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FleetDesk/internal/api/handlers"
	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
	createBooking "github.com/m04kA/SMC-FleetDesk/internal/usecase/create_booking"
)

const (
	msgInvalidDraftID     = "некорректный ID черновика"
	msgDraftNotFound      = "черновик не найден"
	msgNotAuthenticated   = "требуется вход в систему"
	msgNoJobsSelected     = "выберите хотя бы одну работу"
	msgNoTimeSlots        = "добавьте хотя бы один временной слот"
	msgInvalidPostalCode  = "укажите корректный почтовый индекс"
	msgStaleSelection     = "часть выбранных позиций больше недоступна, обновите выбор"
	msgSubmitInProgress   = "бронирование уже отправляется"
	msgCatalogUnavailable = "не удалось загрузить справочники, повторите попытку"
	msgBookingRejected    = "бронирование отклонено"
	msgBookingUnavailable = "не удалось создать бронирование, попробуйте еще раз"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/drafts/{draftId}/submit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]
	if draftID == "" {
		handlers.RespondBadRequest(w, msgInvalidDraftID)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &createBooking.Request{DraftID: draftID})
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /drafts/{draftId}/submit - Invalid draft ID: %q", draftID)
			handlers.RespondBadRequest(w, msgInvalidDraftID)

		case errors.Is(err, createBooking.ErrDraftNotFound):
			h.logger.Warn("POST /drafts/{draftId}/submit - Draft not found: draft_id=%s", draftID)
			handlers.RespondNotFound(w, msgDraftNotFound)

		case errors.Is(err, createBooking.ErrNotAuthenticated), errors.Is(err, fleetapi.ErrUnauthorized):
			h.logger.Warn("POST /drafts/{draftId}/submit - Not authenticated: draft_id=%s", draftID)
			handlers.RespondUnauthorized(w, msgNotAuthenticated)

		case errors.Is(err, createBooking.ErrNoJobsSelected):
			h.logger.Warn("POST /drafts/{draftId}/submit - No jobs selected: draft_id=%s", draftID)
			handlers.RespondBadRequest(w, msgNoJobsSelected)

		case errors.Is(err, createBooking.ErrNoTimeSlots):
			h.logger.Warn("POST /drafts/{draftId}/submit - No time slots: draft_id=%s", draftID)
			handlers.RespondBadRequest(w, msgNoTimeSlots)

		case errors.Is(err, createBooking.ErrInvalidPostalCode):
			h.logger.Warn("POST /drafts/{draftId}/submit - Invalid postal code: draft_id=%s", draftID)
			handlers.RespondBadRequest(w, msgInvalidPostalCode)

		case errors.Is(err, createBooking.ErrSubmitInProgress):
			h.logger.Warn("POST /drafts/{draftId}/submit - Submit in progress: draft_id=%s", draftID)
			handlers.RespondConflict(w, msgSubmitInProgress)

		case errors.Is(err, createBooking.ErrCatalogUnavailable):
			h.logger.Error("POST /drafts/{draftId}/submit - Catalog unavailable: draft_id=%s, error=%v", draftID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCatalogUnavailable)

		case errors.Is(err, createBooking.ErrStaleSelection):
			h.logger.Warn("POST /drafts/{draftId}/submit - Stale selection: draft_id=%s, error=%v", draftID, err)
			handlers.RespondConflict(w, msgStaleSelection)

		case errors.Is(err, createBooking.ErrRejected):
			h.logger.Warn("POST /drafts/{draftId}/submit - Rejected by fleet API: draft_id=%s, error=%v", draftID, err)
			msg := msgBookingRejected
			if apiMsg, ok := fleetapi.UserMessage(err); ok {
				msg = apiMsg
			}
			status := http.StatusBadRequest
			if errors.Is(err, fleetapi.ErrConflict) {
				status = http.StatusConflict
			}
			handlers.RespondError(w, status, msg)

		case errors.Is(err, fleetapi.ErrUnavailable):
			h.logger.Error("POST /drafts/{draftId}/submit - Fleet API unavailable: draft_id=%s, error=%v", draftID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgBookingUnavailable)

		default:
			h.logger.Error("POST /drafts/{draftId}/submit - Failed to create booking: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /drafts/{draftId}/submit - Booking created successfully: booking_id=%s, draft_id=%s, total=%.2f",
		result.Booking.ID, draftID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
