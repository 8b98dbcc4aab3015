package create_booking

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик не найден
	ErrDraftNotFound = errors.New("create_booking: draft not found")

	// ErrNotAuthenticated возвращается без активной сессии
	ErrNotAuthenticated = errors.New("create_booking: not authenticated")

	// ErrNoJobsSelected возвращается, когда не выбрана ни одна работа
	ErrNoJobsSelected = errors.New("create_booking: at least one job must be selected")

	// ErrNoTimeSlots возвращается, когда не выбран ни один слот
	ErrNoTimeSlots = errors.New("create_booking: at least one time slot is required")

	// ErrInvalidPostalCode возвращается при отсутствующем или некорректном почтовом индексе
	ErrInvalidPostalCode = errors.New("create_booking: invalid postal code")

	// ErrStaleSelection возвращается, когда выбранные работы или запчасти пропали из справочника
	ErrStaleSelection = errors.New("create_booking: selected items are no longer available")

	// ErrSubmitInProgress возвращается, пока тот же черновик уже отправляется
	ErrSubmitInProgress = errors.New("create_booking: draft submission in progress")

	// ErrCatalogUnavailable возвращается, когда справочник работ или запчастей не загрузился
	ErrCatalogUnavailable = errors.New("create_booking: catalog unavailable")

	// ErrRejected возвращается, когда fleet API отклонил бронирование
	ErrRejected = errors.New("create_booking: booking rejected")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
