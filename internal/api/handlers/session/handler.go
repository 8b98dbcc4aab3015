package session

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-FleetDesk/internal/api/handlers"
	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
	"github.com/m04kA/SMC-FleetDesk/internal/store"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCredentials = "неверный email или пароль"
	msgInvalidPostalCode  = "некорректный почтовый индекс"
	msgAdminOnly          = "регистрировать механиков может только администратор"
)

type Handler struct {
	auth    AuthService
	session SessionState
	logger  Logger
}

func NewHandler(auth AuthService, session SessionState, logger Logger) *Handler {
	return &Handler{
		auth:    auth,
		session: session,
		logger:  logger,
	}
}

// Get GET /api/v1/session
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := h.session.User()
	if !ok {
		handlers.RespondJSON(w, http.StatusOK, SessionResponse{})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, newSessionResponse(&user, h.session.ExpiresAt()))
}

// Login POST /api/v1/session/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decode(w, r, "POST /session/login", &req) {
		return
	}

	user, err := h.auth.Login(r.Context(), req.toAPI())
	if err != nil {
		switch {
		case errors.Is(err, fleetapi.ErrUnauthorized), errors.Is(err, fleetapi.ErrValidation):
			h.logger.Warn("POST /session/login - Invalid credentials: email=%s", req.Email)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)
		default:
			h.logger.Error("POST /session/login - Failed to sign in: email=%s, error=%v", req.Email, err)
			handlers.RespondAPIError(w, err)
		}
		return
	}

	h.logger.Info("POST /session/login - Signed in: user_id=%s, role=%s", user.ID, user.Role)
	handlers.RespondJSON(w, http.StatusOK, newSessionResponse(user, h.session.ExpiresAt()))
}

// Register POST /api/v1/session/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decode(w, r, "POST /session/register", &req) {
		return
	}
	if !h.checkPostalCode(w, "POST /session/register", req.PostalCode) {
		return
	}

	user, err := h.auth.Register(r.Context(), req.toAPI())
	if err != nil {
		h.logger.Warn("POST /session/register - Failed to register: email=%s, error=%v", req.Email, err)
		handlers.RespondAPIError(w, err)
		return
	}

	h.logger.Info("POST /session/register - Registered: user_id=%s", user.ID)
	handlers.RespondJSON(w, http.StatusCreated, newSessionResponse(user, h.session.ExpiresAt()))
}

// RegisterMechanic POST /api/v1/session/register-mechanic
func (h *Handler) RegisterMechanic(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decode(w, r, "POST /session/register-mechanic", &req) {
		return
	}
	if !h.checkPostalCode(w, "POST /session/register-mechanic", req.PostalCode) {
		return
	}

	user, err := h.auth.RegisterMechanic(r.Context(), req.toAPI())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrForbidden):
			h.logger.Warn("POST /session/register-mechanic - Not an admin")
			handlers.RespondForbidden(w, msgAdminOnly)
		default:
			h.logger.Warn("POST /session/register-mechanic - Failed to register: email=%s, error=%v", req.Email, err)
			handlers.RespondAPIError(w, err)
		}
		return
	}

	h.logger.Info("POST /session/register-mechanic - Mechanic registered: user_id=%s", user.ID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.NewUserResponse(*user))
}

// Logout POST /api/v1/session/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		h.logger.Error("POST /session/logout - Failed to clear session: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /session/logout - Signed out")
	handlers.RespondNoContent(w)
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

func (h *Handler) checkPostalCode(w http.ResponseWriter, route string, code *string) bool {
	if code == nil || strings.TrimSpace(*code) == "" {
		return true
	}
	if err := domain.ValidatePostalCode(strings.TrimSpace(*code)); err != nil {
		h.logger.Warn("%s - Invalid postal code: %q", route, *code)
		handlers.RespondBadRequest(w, msgInvalidPostalCode)
		return false
	}
	return true
}
