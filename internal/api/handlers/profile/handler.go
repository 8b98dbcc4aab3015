package profile

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FleetDesk/internal/api/handlers"
	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/store"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmptyUpdate        = "нет полей для изменения"
	msgInvalidPostalCode  = "некорректный почтовый индекс"
)

type Handler struct {
	service ProfileService
	logger  Logger
}

func NewHandler(service ProfileService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/profile
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Profile(r.Context())
	if err != nil {
		h.respondError(w, "GET /profile", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewUserResponse(*user))
}

// Update PUT /api/v1/profile
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /profile - Invalid request body: %v", err)
		if msg, ok := handlers.ValidationMessage(err); ok {
			handlers.RespondBadRequest(w, msg)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Name == nil && req.PostalCode == nil {
		handlers.RespondBadRequest(w, msgEmptyUpdate)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), req.toAPI())
	if err != nil {
		h.respondError(w, "PUT /profile", err)
		return
	}

	h.logger.Info("PUT /profile - Profile updated: user_id=%s", user.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewUserResponse(*user))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, store.ErrNotAuthenticated):
		h.logger.Warn("%s - Not authenticated", route)
		handlers.RespondUnauthorized(w, "")
	case errors.Is(err, domain.ErrInvalidPostalCode):
		h.logger.Warn("%s - Invalid postal code: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPostalCode)
	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondAPIError(w, err)
	}
}
