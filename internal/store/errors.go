package store

import "errors"

var (
	// ErrNotAuthenticated возвращается, если действие требует активной сессии
	ErrNotAuthenticated = errors.New("store: not authenticated")

	// ErrForbidden возвращается, если действие доступно только администратору
	ErrForbidden = errors.New("store: admin role required")

	// ErrSessionExpired возвращается, если сохраненный токен истек
	ErrSessionExpired = errors.New("store: session expired")

	// ErrNoStoredSession возвращается, если сохраненного токена нет
	ErrNoStoredSession = errors.New("store: no stored session")

	// ErrInternal возвращается при ошибках хранилища сессии
	ErrInternal = errors.New("store: internal error")
)
