package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/service/drafts"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil || strings.TrimSpace(req.DraftID) == "" {
		return fmt.Errorf("%w: draftId is required", ErrInvalidInput)
	}
	return nil
}

// validateDraft проверяет, что черновик готов к отправке.
// Работы проверяются раньше слотов.
func validateDraft(draft *domain.Draft) error {
	if len(draft.JobIDs) == 0 {
		return ErrNoJobsSelected
	}

	if len(draft.Slots) == 0 {
		return ErrNoTimeSlots
	}

	return nil
}

// resolvePostalCode индекс черновика, иначе индекс из профиля
func resolvePostalCode(draft *domain.Draft, user domain.User) (string, error) {
	code := strings.TrimSpace(draft.PostalCode)
	if code == "" && user.PostalCode != nil {
		code = strings.ToUpper(strings.TrimSpace(*user.PostalCode))
	}

	if code == "" {
		return "", fmt.Errorf("%w: postal code is required", ErrInvalidPostalCode)
	}

	if err := domain.ValidatePostalCode(code); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPostalCode, err)
	}

	return code, nil
}

// validateLines проверяет, что каждая выбранная позиция нашлась в справочнике.
// Если справочник не загрузился, позиции не устарели: это ошибка загрузки.
func validateLines(draft *domain.Draft, lines drafts.Lines) error {
	if len(lines.Jobs) != len(draft.JobIDs) {
		if lines.JobsErr != nil {
			return fmt.Errorf("%w: jobs: %w", ErrCatalogUnavailable, lines.JobsErr)
		}
		return fmt.Errorf("%w: %d of %d jobs resolved", ErrStaleSelection, len(lines.Jobs), len(draft.JobIDs))
	}

	if len(lines.Parts) != len(draft.PartIDs) {
		if lines.PartsErr != nil {
			return fmt.Errorf("%w: parts: %w", ErrCatalogUnavailable, lines.PartsErr)
		}
		return fmt.Errorf("%w: %d of %d parts resolved", ErrStaleSelection, len(lines.Parts), len(draft.PartIDs))
	}

	return nil
}
