package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
	"github.com/m04kA/SMC-FleetDesk/internal/service/drafts"
	"github.com/m04kA/SMC-FleetDesk/internal/service/pricing"
)

// UseCase use case для отправки черновика как бронирования
type UseCase struct {
	registry DraftRegistry
	client   BookingsClient
	bookings BookingsStore
	session  SessionProvider
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	registry DraftRegistry,
	client BookingsClient,
	bookings BookingsStore,
	session SessionProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		registry: registry,
		client:   client,
		bookings: bookings,
		session:  session,
		logger:   logger,
	}
}

// Execute отправляет черновик одним запросом POST /api/bookings.
// Цены копируются в запрос, итог передается без НДС.
// На время отправки черновик захвачен: повторная отправка и изменения отклоняются.
// При ошибке черновик остается открытым и отправку можно повторить.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: submitting draft id=%s", req.DraftID)

	// 2. Захватываем черновик до конца отправки
	draft, err := uc.registry.BeginSubmit(req.DraftID)
	if err != nil {
		switch {
		case errors.Is(err, drafts.ErrDraftNotFound):
			uc.logger.Warn("CreateBooking: draft id=%s not found", req.DraftID)
			return nil, ErrDraftNotFound
		case errors.Is(err, drafts.ErrSubmitInProgress):
			uc.logger.Warn("CreateBooking: draft id=%s is already being submitted", req.DraftID)
			return nil, ErrSubmitInProgress
		default:
			uc.logger.Error("CreateBooking: failed to get draft id=%s: %v", req.DraftID, err)
			return nil, fmt.Errorf("%w: failed to get draft: %v", ErrInternal, err)
		}
	}

	completed := false
	defer func() {
		if !completed {
			uc.registry.AbortSubmit(draft.ID)
		}
	}()

	// 3. Проверяем выбор до любых запросов к API
	if err := validateDraft(draft); err != nil {
		uc.logger.Warn("CreateBooking: draft id=%s is not ready: %v", draft.ID, err)
		return nil, err
	}

	// 4. Текущий пользователь и почтовый индекс
	user, ok := uc.session.User()
	if !ok {
		uc.logger.Warn("CreateBooking: no active session")
		return nil, ErrNotAuthenticated
	}

	postalCode, err := resolvePostalCode(draft, user)
	if err != nil {
		uc.logger.Warn("CreateBooking: draft id=%s: %v", draft.ID, err)
		return nil, err
	}

	// 5. Строки цен по текущим справочникам
	lines := uc.registry.Lines(ctx, draft)
	if err := validateLines(draft, lines); err != nil {
		if errors.Is(err, ErrCatalogUnavailable) {
			uc.logger.Error("CreateBooking: draft id=%s: %v", draft.ID, err)
		} else {
			uc.logger.Warn("CreateBooking: draft id=%s: %v", draft.ID, err)
		}
		return nil, err
	}

	total := pricing.Total(lines.Jobs, lines.Parts)

	// 6. Отправляем снимок цен одним запросом
	booking, err := uc.client.Create(ctx, &fleetapi.CreateBookingRequest{
		CarID:      draft.CarID,
		Jobs:       pricing.ToBookedJobs(lines.Jobs),
		Parts:      pricing.ToBookedParts(lines.Parts),
		Schedule:   draft.Slots,
		PostalCode: postalCode,
		TotalPrice: total,
	})
	if err != nil {
		switch {
		case errors.Is(err, fleetapi.ErrUnauthorized):
			uc.logger.Warn("CreateBooking: session rejected by fleet API")
			return nil, err
		case errors.Is(err, fleetapi.ErrValidation), errors.Is(err, fleetapi.ErrConflict):
			uc.logger.Warn("CreateBooking: fleet API rejected draft id=%s: %v", draft.ID, err)
			return nil, fmt.Errorf("%w: %w", ErrRejected, err)
		default:
			uc.logger.Error("CreateBooking: failed to create booking for draft id=%s: %v", draft.ID, err)
			return nil, fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}
	}

	// 7. Закрываем черновик и добавляем бронирование в кэш
	completed = true
	if err := uc.registry.Complete(draft.ID); err != nil {
		// бронирование уже создано, сессия могла смениться во время отправки
		uc.logger.Warn("CreateBooking: failed to complete draft id=%s: %v", draft.ID, err)
	}
	uc.bookings.AppendBooking(*booking)

	uc.logger.Info("CreateBooking: booking id=%s created from draft id=%s, total=%.2f",
		booking.ID, draft.ID, total)

	return &Response{
		Booking:    *booking,
		TotalPrice: total,
	}, nil
}
