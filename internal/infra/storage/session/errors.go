package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сохраненной сессии нет
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("session.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("session.repository: failed to execute query")

	// ErrUnsupportedDriver возвращается для неизвестного драйвера БД
	ErrUnsupportedDriver = errors.New("session.repository: unsupported driver")

	// ErrRedis возвращается при ошибках Redis
	ErrRedis = errors.New("session.repository: redis error")
)
