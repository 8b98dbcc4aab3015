package middleware

import "time"

// HTTPObserver сборщик метрик HTTP запросов
type HTTPObserver interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// SessionChecker состояние текущей сессии
type SessionChecker interface {
	Authenticated() bool
	IsAdmin() bool
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
