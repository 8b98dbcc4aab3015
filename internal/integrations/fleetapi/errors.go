package fleetapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized возвращается при 401, токен недействителен или отсутствует
	ErrUnauthorized = errors.New("fleetapi: unauthorized")

	// ErrForbidden возвращается при 403
	ErrForbidden = errors.New("fleetapi: forbidden")

	// ErrNotFound возвращается при 404
	ErrNotFound = errors.New("fleetapi: not found")

	// ErrValidation возвращается при 400/422, сервер отклонил данные
	ErrValidation = errors.New("fleetapi: validation failed")

	// ErrConflict возвращается при 409
	ErrConflict = errors.New("fleetapi: conflict")

	// ErrServer возвращается при 5xx
	ErrServer = errors.New("fleetapi: server error")

	// ErrUnavailable возвращается при сетевых ошибках и таймаутах
	ErrUnavailable = errors.New("fleetapi: service unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("fleetapi: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("fleetapi: invalid response")
)

// APIError нормализованная ошибка ответа API.
// Message извлекается из тела ответа, если это возможно.
type APIError struct {
	StatusCode int
	Message    string
	Method     string
	Path       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fleetapi: %s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Unwrap позволяет проверять категорию ошибки через errors.Is
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity:
		return ErrValidation
	case e.StatusCode == http.StatusConflict:
		return ErrConflict
	case e.StatusCode >= http.StatusInternalServerError:
		return ErrServer
	default:
		return ErrInvalidResponse
	}
}

// UserMessage возвращает человекочитаемое сообщение ошибки API, если оно есть
func UserMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
