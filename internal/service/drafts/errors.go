package drafts

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик не найден (закрыт или отправлен)
	ErrDraftNotFound = errors.New("drafts: draft not found")

	// ErrCarNotFound возвращается, когда автомобиль для черновика не найден
	ErrCarNotFound = errors.New("drafts: car not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("drafts: invalid input data")

	// ErrSubmitInProgress возвращается, пока черновик отправляется
	ErrSubmitInProgress = errors.New("drafts: draft submission in progress")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("drafts: internal error")
)
