package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
)

const (
	msgUpstreamUnavailable = "fleet API недоступен"
	msgUpstreamError       = "ошибка fleet API"
	msgSessionExpired      = "сессия истекла, войдите снова"
	msgNotFound            = "ресурс не найден"
	msgRejected            = "запрос отклонен"
)

// RespondAPIError отвечает на ошибку fleet API, сохраняя сообщение сервера, если оно есть
func RespondAPIError(w http.ResponseWriter, err error) {
	msg, hasMsg := fleetapi.UserMessage(err)
	pick := func(fallback string) string {
		if hasMsg {
			return msg
		}
		return fallback
	}

	switch {
	case errors.Is(err, fleetapi.ErrUnauthorized):
		RespondUnauthorized(w, msgSessionExpired)
	case errors.Is(err, fleetapi.ErrForbidden):
		RespondForbidden(w, pick(msgForbidden))
	case errors.Is(err, fleetapi.ErrNotFound):
		RespondNotFound(w, pick(msgNotFound))
	case errors.Is(err, fleetapi.ErrValidation):
		RespondBadRequest(w, pick(msgRejected))
	case errors.Is(err, fleetapi.ErrConflict):
		RespondConflict(w, pick(msgRejected))
	case errors.Is(err, fleetapi.ErrUnavailable):
		RespondError(w, http.StatusServiceUnavailable, msgUpstreamUnavailable)
	case errors.Is(err, fleetapi.ErrServer), errors.Is(err, fleetapi.ErrInvalidResponse):
		RespondError(w, http.StatusBadGateway, pick(msgUpstreamError))
	default:
		RespondInternalError(w)
	}
}
