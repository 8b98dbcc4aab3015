package fleetapi

import "time"

// TokenSource источник текущего bearer токена, пустая строка - без авторизации
type TokenSource interface {
	Token() string
}

// Observer сборщик метрик запросов к API
type Observer interface {
	ObserveUpstream(method, endpoint string, status int, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
