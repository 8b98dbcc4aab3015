package drafts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
	"github.com/m04kA/SMC-FleetDesk/internal/service/pricing"
)

// Service реестр открытых черновиков бронирования.
// Черновик живет от открытия диалога до его закрытия или отправки.
type Service struct {
	jobs    JobsCatalog
	parts   PartsCatalog
	cars    CarFinder
	vatRate float64
	metrics DraftsObserver
	logger  Logger

	newID func() string
	now   func() time.Time

	mu         sync.Mutex
	drafts     map[string]*domain.Draft
	submitting map[string]struct{}
}

// Option настройка сервиса
type Option func(*Service)

// WithObserver задает сборщик метрик
func WithObserver(observer DraftsObserver) Option {
	return func(s *Service) {
		s.metrics = observer
	}
}

// WithClock подменяет часы (используется в тестах)
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator подменяет генератор ID черновиков (используется в тестах)
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// NewService создает новый экземпляр реестра черновиков
func NewService(jobs JobsCatalog, parts PartsCatalog, cars CarFinder, vatRate float64, logger Logger, opts ...Option) *Service {
	s := &Service{
		jobs:       jobs,
		parts:      parts,
		cars:       cars,
		vatRate:    vatRate,
		logger:     logger,
		newID:      uuid.NewString,
		now:        time.Now,
		drafts:     make(map[string]*domain.Draft),
		submitting: make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Open открывает черновик для автомобиля и запускает загрузку справочников
func (s *Service) Open(ctx context.Context, carID string) (*View, error) {
	carID = strings.TrimSpace(carID)
	if carID == "" {
		return nil, fmt.Errorf("%w: carId is required", ErrInvalidInput)
	}

	if _, err := s.cars.FindCar(ctx, carID); err != nil {
		if errors.Is(err, fleetapi.ErrNotFound) {
			s.logger.Warn("Open: car id=%s not found", carID)
			return nil, ErrCarNotFound
		}
		s.logger.Error("Open: failed to get car id=%s: %v", carID, err)
		return nil, err
	}

	draft := domain.NewDraft(s.newID(), carID, s.now())

	s.mu.Lock()
	s.drafts[draft.ID] = draft
	s.reportLocked()
	s.mu.Unlock()

	s.logger.Info("Open: draft id=%s opened for car id=%s", draft.ID, carID)
	return s.buildView(ctx, draft.Clone(), pricing.ExcludeVAT), nil
}

// Get возвращает копию черновика
func (s *Service) Get(id string) (*domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return draft.Clone(), nil
}

// View черновик с ценами в указанном режиме НДС
func (s *Service) View(ctx context.Context, id string, mode pricing.VATMode) (*View, error) {
	draft, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, draft, mode), nil
}

// ViewCurrent черновик с режимом НДС по текущему шагу мастера
func (s *Service) ViewCurrent(ctx context.Context, id string) (*View, error) {
	draft, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, draft, DefaultVATMode(draft.State)), nil
}

// Discard закрывает черновик без отправки
func (s *Service) Discard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drafts[id]; !ok {
		return ErrDraftNotFound
	}
	if _, busy := s.submitting[id]; busy {
		return ErrSubmitInProgress
	}
	delete(s.drafts, id)
	s.reportLocked()

	s.logger.Info("Discard: draft id=%s discarded", id)
	return nil
}

// Reset закрывает все черновики (смена или завершение сессии)
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.drafts)
	s.drafts = make(map[string]*domain.Draft)
	s.submitting = make(map[string]struct{})
	s.reportLocked()

	if n > 0 {
		s.logger.Info("Reset: %d open drafts discarded", n)
	}
}

// Count количество открытых черновиков
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.drafts)
}

// ToggleJob выбирает или снимает выбор работы
func (s *Service) ToggleJob(ctx context.Context, id, jobID string) (*View, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) error {
		_, err := d.ToggleJob(jobID)
		return err
	})
}

// OverrideJob задает цену и/или длительность выбранной работы
func (s *Service) OverrideJob(ctx context.Context, id, jobID string, override domain.JobOverride) (*View, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) error {
		return d.OverrideJob(jobID, override)
	})
}

// TogglePart выбирает или снимает выбор запчасти
func (s *Service) TogglePart(ctx context.Context, id, partID string) (*View, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) error {
		_, err := d.TogglePart(partID)
		return err
	})
}

// OverridePart задает цену выбранной запчасти
func (s *Service) OverridePart(ctx context.Context, id, partID string, override domain.PartOverride) (*View, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) error {
		return d.OverridePart(partID, override)
	})
}

// AddSlot добавляет слот, дубликаты игнорируются
func (s *Service) AddSlot(ctx context.Context, id, date, startTime string) (*View, error) {
	slot, err := domain.NewTimeSlot(date, startTime)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(d *domain.Draft) error {
		_, err := d.AddSlot(slot)
		return err
	})
}

// RemoveSlot удаляет слот
func (s *Service) RemoveSlot(ctx context.Context, id, date, startTime string) (*View, error) {
	slot, err := domain.NewTimeSlot(date, startTime)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(d *domain.Draft) error {
		_, err := d.RemoveSlot(slot)
		return err
	})
}

// SetPostalCode задает почтовый индекс, пустое значение - индекс из профиля
func (s *Service) SetPostalCode(ctx context.Context, id, code string) (*View, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) error {
		return d.SetPostalCode(code)
	})
}

// Next переход на следующий шаг мастера
func (s *Service) Next(ctx context.Context, id string) (*View, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) error {
		return d.Next()
	})
}

// Back возврат на предыдущий шаг мастера
func (s *Service) Back(ctx context.Context, id string) (*View, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) error {
		return d.Back()
	})
}

// GoTo переход на один из предыдущих шагов
func (s *Service) GoTo(ctx context.Context, id string, state domain.DraftState) (*View, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) error {
		return d.GoTo(state)
	})
}

// Lines строки цен черновика по текущим справочникам
func (s *Service) Lines(ctx context.Context, draft *domain.Draft) Lines {
	jobs := s.jobs.Load(ctx)
	parts := s.parts.ForCar(ctx, draft.CarID)

	return Lines{
		Jobs:     pricing.JobLines(draft.JobIDs, jobs.Items, draft.JobOverrides),
		Parts:    pricing.PartLines(draft.PartIDs, parts.Items, draft.PartOverrides),
		JobsErr:  jobs.Err,
		PartsErr: parts.Err,
	}
}

// BeginSubmit захватывает черновик для отправки и возвращает его копию.
// Пока отправка не завершена, черновик нельзя менять, закрывать и отправлять повторно.
func (s *Service) BeginSubmit(id string) (*domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	if _, busy := s.submitting[id]; busy {
		return nil, ErrSubmitInProgress
	}
	if draft.State == domain.StateSubmitted {
		return nil, domain.ErrDraftSubmitted
	}

	s.submitting[id] = struct{}{}
	return draft.Clone(), nil
}

// AbortSubmit снимает захват после неудачной отправки, черновик снова можно менять
func (s *Service) AbortSubmit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.submitting, id)
}

// Complete помечает захваченный черновик отправленным и удаляет его из реестра
func (s *Service) Complete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.submitting, id)

	draft, ok := s.drafts[id]
	if !ok {
		return ErrDraftNotFound
	}
	if err := draft.MarkSubmitted(); err != nil {
		return err
	}
	delete(s.drafts, id)
	s.reportLocked()

	s.logger.Info("Complete: draft id=%s submitted", id)
	return nil
}

// mutate применяет изменение к черновику под блокировкой реестра
func (s *Service) mutate(ctx context.Context, id string, fn func(d *domain.Draft) error) (*View, error) {
	s.mu.Lock()
	draft, ok := s.drafts[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrDraftNotFound
	}
	if _, busy := s.submitting[id]; busy {
		s.mu.Unlock()
		s.logger.Warn("mutate: draft id=%s is being submitted", id)
		return nil, ErrSubmitInProgress
	}

	// при ошибке черновик в реестре не меняется
	updated := draft.Clone()
	if err := fn(updated); err != nil {
		s.mu.Unlock()
		s.logger.Warn("mutate: draft id=%s rejected change: %v", id, err)
		return nil, err
	}
	s.drafts[id] = updated
	snapshot := updated.Clone()
	s.mu.Unlock()

	return s.buildView(ctx, snapshot, DefaultVATMode(snapshot.State)), nil
}

func (s *Service) buildView(ctx context.Context, draft *domain.Draft, mode pricing.VATMode) *View {
	jobs := s.jobs.Load(ctx)
	parts := s.parts.ForCar(ctx, draft.CarID)

	jobLines := pricing.JobLines(draft.JobIDs, jobs.Items, draft.JobOverrides)
	partLines := pricing.PartLines(draft.PartIDs, parts.Items, draft.PartOverrides)

	return &View{
		Draft:         draft,
		Jobs:          jobLines,
		Parts:         partLines,
		Totals:        pricing.Summarize(jobLines, partLines, mode, s.vatRate),
		CanConfirm:    draft.CanConfirm(),
		JobsFetching:  jobs.Fetching,
		PartsFetching: parts.Fetching,
		JobsError:     jobs.Err,
		PartsError:    parts.Err,
	}
}

func (s *Service) reportLocked() {
	if s.metrics != nil {
		s.metrics.SetOpenDrafts(len(s.drafts))
	}
}
