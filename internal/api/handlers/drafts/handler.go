package drafts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FleetDesk/internal/api/handlers"
	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	draftsService "github.com/m04kA/SMC-FleetDesk/internal/service/drafts"
	"github.com/m04kA/SMC-FleetDesk/internal/service/pricing"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidVAT         = "параметр vat должен быть true или false"
	msgDraftNotFound      = "черновик не найден"
	msgCarNotFound        = "автомобиль не найден"
	msgDraftSubmitted     = "бронирование уже отправлено"
	msgSubmitInProgress   = "черновик отправляется, изменения недоступны"
	msgNoJobsSelected     = "выберите хотя бы одну работу"
	msgNoTimeSlots        = "добавьте хотя бы один временной слот"
	msgNotSelected        = "позиция не выбрана"
	msgInvalidOverride    = "цена не может быть отрицательной, длительность должна быть положительной"
	msgInvalidTimeSlot    = "некорректный слот, ожидается дата YYYY-MM-DD и время HH:MM"
	msgTooManySlots       = "слишком много временных слотов"
	msgInvalidTransition  = "переход на этот шаг недоступен"
	msgInvalidPostalCode  = "некорректный почтовый индекс"
)

type Handler struct {
	service DraftsService
	logger  Logger
}

func NewHandler(service DraftsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Open POST /api/v1/drafts
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	var req OpenDraftRequest
	if !h.decode(w, r, "POST /drafts", &req) {
		return
	}

	view, err := h.service.Open(r.Context(), req.CarID)
	if err != nil {
		h.respondError(w, "POST /drafts", err)
		return
	}

	h.logger.Info("POST /drafts - Draft opened: draft_id=%s, car_id=%s", view.Draft.ID, req.CarID)
	handlers.RespondJSON(w, http.StatusCreated, FromView(view))
}

// Get GET /api/v1/drafts/{draftId}?vat=true
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	var (
		view *draftsService.View
		err  error
	)
	if raw := r.URL.Query().Get("vat"); raw != "" {
		includeVAT, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			handlers.RespondBadRequest(w, msgInvalidVAT)
			return
		}
		mode := pricing.ExcludeVAT
		if includeVAT {
			mode = pricing.IncludeVAT
		}
		view, err = h.service.View(r.Context(), draftID, mode)
	} else {
		view, err = h.service.ViewCurrent(r.Context(), draftID)
	}
	if err != nil {
		h.respondError(w, "GET /drafts/{draftId}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}

// Discard DELETE /api/v1/drafts/{draftId}
func (h *Handler) Discard(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	if err := h.service.Discard(draftID); err != nil {
		h.respondError(w, "DELETE /drafts/{draftId}", err)
		return
	}

	h.logger.Info("DELETE /drafts/{draftId} - Draft discarded: draft_id=%s", draftID)
	handlers.RespondNoContent(w)
}

// ToggleJob POST /api/v1/drafts/{draftId}/jobs/{jobId}/toggle
func (h *Handler) ToggleJob(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	view, err := h.service.ToggleJob(r.Context(), vars["draftId"], vars["jobId"])
	h.respondView(w, "POST /drafts/{draftId}/jobs/{jobId}/toggle", view, err)
}

// OverrideJob PUT /api/v1/drafts/{draftId}/jobs/{jobId}
func (h *Handler) OverrideJob(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /drafts/{draftId}/jobs/{jobId}"

	var req JobOverrideRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	vars := mux.Vars(r)
	view, err := h.service.OverrideJob(r.Context(), vars["draftId"], vars["jobId"], req.toDomain())
	h.respondView(w, route, view, err)
}

// TogglePart POST /api/v1/drafts/{draftId}/parts/{partId}/toggle
func (h *Handler) TogglePart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	view, err := h.service.TogglePart(r.Context(), vars["draftId"], vars["partId"])
	h.respondView(w, "POST /drafts/{draftId}/parts/{partId}/toggle", view, err)
}

// OverridePart PUT /api/v1/drafts/{draftId}/parts/{partId}
func (h *Handler) OverridePart(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /drafts/{draftId}/parts/{partId}"

	var req PartOverrideRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	vars := mux.Vars(r)
	view, err := h.service.OverridePart(r.Context(), vars["draftId"], vars["partId"], req.toDomain())
	h.respondView(w, route, view, err)
}

// AddSlot POST /api/v1/drafts/{draftId}/slots
func (h *Handler) AddSlot(w http.ResponseWriter, r *http.Request) {
	const route = "POST /drafts/{draftId}/slots"

	var req SlotRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	view, err := h.service.AddSlot(r.Context(), mux.Vars(r)["draftId"], req.Date, req.Time)
	h.respondView(w, route, view, err)
}

// RemoveSlot DELETE /api/v1/drafts/{draftId}/slots
func (h *Handler) RemoveSlot(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /drafts/{draftId}/slots"

	var req SlotRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	view, err := h.service.RemoveSlot(r.Context(), mux.Vars(r)["draftId"], req.Date, req.Time)
	h.respondView(w, route, view, err)
}

// SetPostalCode PUT /api/v1/drafts/{draftId}/postal-code
func (h *Handler) SetPostalCode(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /drafts/{draftId}/postal-code"

	var req PostalCodeRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	view, err := h.service.SetPostalCode(r.Context(), mux.Vars(r)["draftId"], req.PostalCode)
	h.respondView(w, route, view, err)
}

// Next POST /api/v1/drafts/{draftId}/next
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Next(r.Context(), mux.Vars(r)["draftId"])
	h.respondView(w, "POST /drafts/{draftId}/next", view, err)
}

// Back POST /api/v1/drafts/{draftId}/back
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Back(r.Context(), mux.Vars(r)["draftId"])
	h.respondView(w, "POST /drafts/{draftId}/back", view, err)
}

// GoTo POST /api/v1/drafts/{draftId}/goto
func (h *Handler) GoTo(w http.ResponseWriter, r *http.Request) {
	const route = "POST /drafts/{draftId}/goto"

	var req GoToRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	view, err := h.service.GoTo(r.Context(), mux.Vars(r)["draftId"], domain.DraftState(req.State))
	h.respondView(w, route, view, err)
}

func (h *Handler) respondView(w http.ResponseWriter, route string, view *draftsService.View, err error) {
	if err != nil {
		h.respondError(w, route, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string, dst interface{}) bool {
	if err := handlers.DecodeAndValidate(r, dst); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		if msg, ok := handlers.ValidationMessage(err); ok {
			handlers.RespondBadRequest(w, msg)
			return false
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return false
	}
	return true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, draftsService.ErrDraftNotFound):
		h.logger.Warn("%s - Draft not found", route)
		handlers.RespondNotFound(w, msgDraftNotFound)

	case errors.Is(err, draftsService.ErrCarNotFound):
		h.logger.Warn("%s - Car not found", route)
		handlers.RespondNotFound(w, msgCarNotFound)

	case errors.Is(err, draftsService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	case errors.Is(err, draftsService.ErrSubmitInProgress):
		h.logger.Warn("%s - Draft is being submitted", route)
		handlers.RespondConflict(w, msgSubmitInProgress)

	case errors.Is(err, domain.ErrDraftSubmitted):
		h.logger.Warn("%s - Draft already submitted", route)
		handlers.RespondConflict(w, msgDraftSubmitted)

	case errors.Is(err, domain.ErrNoJobsSelected):
		h.logger.Warn("%s - No jobs selected", route)
		handlers.RespondBadRequest(w, msgNoJobsSelected)

	case errors.Is(err, domain.ErrNoTimeSlots):
		h.logger.Warn("%s - No time slots", route)
		handlers.RespondBadRequest(w, msgNoTimeSlots)

	case errors.Is(err, domain.ErrNotSelected):
		h.logger.Warn("%s - Item not selected: %v", route, err)
		handlers.RespondBadRequest(w, msgNotSelected)

	case errors.Is(err, domain.ErrInvalidOverride):
		h.logger.Warn("%s - Invalid override: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidOverride)

	case errors.Is(err, domain.ErrInvalidTimeSlot):
		h.logger.Warn("%s - Invalid time slot: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTimeSlot)

	case errors.Is(err, domain.ErrTooManySlots):
		h.logger.Warn("%s - Too many slots", route)
		handlers.RespondBadRequest(w, msgTooManySlots)

	case errors.Is(err, domain.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: %v", route, err)
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, domain.ErrInvalidPostalCode):
		h.logger.Warn("%s - Invalid postal code: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPostalCode)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondAPIError(w, err)
	}
}
