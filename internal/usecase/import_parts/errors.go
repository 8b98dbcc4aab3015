package import_parts

import "errors"

var (
	// ErrCarNotFound возвращается, когда автомобиль не найден
	ErrCarNotFound = errors.New("import_parts: car not found")

	// ErrAlreadyImporting возвращается, когда импорт для автомобиля уже идет
	ErrAlreadyImporting = errors.New("import_parts: import already in progress")

	// ErrImportFailed возвращается, когда сервер завершил импорт с ошибкой
	ErrImportFailed = errors.New("import_parts: import failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("import_parts: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("import_parts: internal error")
)
