package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
	"github.com/m04kA/SMC-FleetDesk/internal/service/drafts"
	"github.com/m04kA/SMC-FleetDesk/internal/service/pricing"
	"github.com/m04kA/SMC-FleetDesk/internal/store"
	"github.com/m04kA/SMC-FleetDesk/pkg/logger"
	"github.com/m04kA/SMC-FleetDesk/pkg/ptr"
)

type MockDraftRegistry struct {
	mock.Mock
}

func (m *MockDraftRegistry) BeginSubmit(id string) (*domain.Draft, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Draft), args.Error(1)
}

func (m *MockDraftRegistry) AbortSubmit(id string) {
	m.Called(id)
}

func (m *MockDraftRegistry) Lines(ctx context.Context, draft *domain.Draft) drafts.Lines {
	args := m.Called(ctx, draft)
	return args.Get(0).(drafts.Lines)
}

func (m *MockDraftRegistry) Complete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockBookingsClient struct {
	mock.Mock
}

func (m *MockBookingsClient) Create(ctx context.Context, req *fleetapi.CreateBookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockBookingsStore struct {
	mock.Mock
}

func (m *MockBookingsStore) AppendBooking(booking domain.Booking) {
	m.Called(booking)
}

type MockSession struct {
	mock.Mock
}

func (m *MockSession) User() (domain.User, bool) {
	args := m.Called()
	return args.Get(0).(domain.User), args.Bool(1)
}

type testDeps struct {
	registry *MockDraftRegistry
	client   *MockBookingsClient
	bookings *MockBookingsStore
	session  *MockSession
}

func newTestUseCase() (*UseCase, *testDeps) {
	d := &testDeps{
		registry: &MockDraftRegistry{},
		client:   &MockBookingsClient{},
		bookings: &MockBookingsStore{},
		session:  &MockSession{},
	}
	d.registry.On("AbortSubmit", mock.Anything).Return().Maybe()
	return NewUseCase(d.registry, d.client, d.bookings, d.session, logger.Nop()), d
}

func readyDraft(t *testing.T) *domain.Draft {
	t.Helper()
	d := domain.NewDraft("d1", "c1", time.Now())
	require.NoError(t, d.SelectJob("j1"))
	require.NoError(t, d.SelectPart("p1"))
	slot, err := domain.NewTimeSlot("2025-12-12", "12:00")
	require.NoError(t, err)
	_, err = d.AddSlot(slot)
	require.NoError(t, err)
	return d
}

var readyLines = drafts.Lines{
	Jobs:  []pricing.JobLine{{ID: "j1", Name: "Oil change", Price: 30, Duration: 30}},
	Parts: []pricing.PartLine{{ID: "p1", Title: "Oil filter", Price: 20}},
}

var clientUser = domain.User{ID: "u1", Role: domain.RoleClient, PostalCode: ptr.Ptr("sw1a 1aa")}

func TestCreateBooking_NoJobsBlocksWithoutAPICall(t *testing.T) {
	uc, d := newTestUseCase()
	d.registry.On("BeginSubmit", "d1").Return(domain.NewDraft("d1", "c1", time.Now()), nil)

	_, err := uc.Execute(context.Background(), &Request{DraftID: "d1"})

	assert.ErrorIs(t, err, ErrNoJobsSelected)
	d.client.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	d.registry.AssertNotCalled(t, "Complete", mock.Anything)
	d.registry.AssertCalled(t, "AbortSubmit", "d1")
}

func TestCreateBooking_NoSlotsBlocksWithoutAPICall(t *testing.T) {
	uc, d := newTestUseCase()
	draft := domain.NewDraft("d1", "c1", time.Now())
	require.NoError(t, draft.SelectJob("j1"))
	d.registry.On("BeginSubmit", "d1").Return(draft, nil)

	_, err := uc.Execute(context.Background(), &Request{DraftID: "d1"})

	assert.ErrorIs(t, err, ErrNoTimeSlots)
	d.client.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_EmptyDraftID(t *testing.T) {
	uc, d := newTestUseCase()

	_, err := uc.Execute(context.Background(), &Request{DraftID: " "})

	assert.ErrorIs(t, err, ErrInvalidInput)
	d.registry.AssertNotCalled(t, "BeginSubmit", mock.Anything)
}

func TestCreateBooking_DraftNotFound(t *testing.T) {
	uc, d := newTestUseCase()
	d.registry.On("BeginSubmit", "d1").Return(nil, drafts.ErrDraftNotFound)

	_, err := uc.Execute(context.Background(), &Request{DraftID: "d1"})

	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestCreateBooking_PostalCodeFromProfile(t *testing.T) {
	uc, d := newTestUseCase()
	draft := readyDraft(t)
	created := &domain.Booking{ID: "b1", CarID: "c1", Status: domain.StatusPending, TotalPrice: 50}

	d.registry.On("BeginSubmit", "d1").Return(draft, nil)
	d.registry.On("Lines", mock.Anything, draft).Return(readyLines)
	d.registry.On("Complete", "d1").Return(nil)
	d.session.On("User").Return(clientUser, true)
	d.client.On("Create", mock.Anything, mock.MatchedBy(func(req *fleetapi.CreateBookingRequest) bool {
		return req.CarID == "c1" &&
			req.PostalCode == "SW1A 1AA" &&
			req.TotalPrice == 50 &&
			len(req.Jobs) == 1 && req.Jobs[0] == domain.BookedJob{JobID: "j1", Name: "Oil change", Price: 30, Duration: 30} &&
			len(req.Parts) == 1 && req.Parts[0].Price == 20 &&
			len(req.Schedule) == 1 && req.Schedule[0].String() == "2025-12-12 12:00"
	})).Return(created, nil)
	d.bookings.On("AppendBooking", *created).Return()

	resp, err := uc.Execute(context.Background(), &Request{DraftID: "d1"})

	require.NoError(t, err)
	assert.Equal(t, "b1", resp.Booking.ID)
	assert.Equal(t, 50.0, resp.TotalPrice)
	d.registry.AssertCalled(t, "Complete", "d1")
	d.registry.AssertNotCalled(t, "AbortSubmit", mock.Anything)
	d.bookings.AssertCalled(t, "AppendBooking", *created)
}

func TestCreateBooking_DraftPostalCodeWins(t *testing.T) {
	uc, d := newTestUseCase()
	draft := readyDraft(t)
	require.NoError(t, draft.SetPostalCode("e1 6an"))

	d.registry.On("BeginSubmit", "d1").Return(draft, nil)
	d.registry.On("Lines", mock.Anything, draft).Return(readyLines)
	d.registry.On("Complete", "d1").Return(nil)
	d.session.On("User").Return(clientUser, true)
	d.client.On("Create", mock.Anything, mock.MatchedBy(func(req *fleetapi.CreateBookingRequest) bool {
		return req.PostalCode == "E1 6AN"
	})).Return(&domain.Booking{ID: "b1"}, nil)
	d.bookings.On("AppendBooking", mock.Anything).Return()

	_, err := uc.Execute(context.Background(), &Request{DraftID: "d1"})

	require.NoError(t, err)
}

func TestCreateBooking_MissingPostalCode(t *testing.T) {
	uc, d := newTestUseCase()
	d.registry.On("BeginSubmit", "d1").Return(readyDraft(t), nil)
	d.session.On("User").Return(domain.User{ID: "u1"}, true)

	_, err := uc.Execute(context.Background(), &Request{DraftID: "d1"})

	assert.ErrorIs(t, err, ErrInvalidPostalCode)
	d.client.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_StaleSelection(t *testing.T) {
	uc, d := newTestUseCase()
	draft := readyDraft(t)
	d.registry.On("BeginSubmit", "d1").Return(draft, nil)
	d.registry.On("Lines", mock.Anything, draft).Return(drafts.Lines{Jobs: readyLines.Jobs})
	d.session.On("User").Return(clientUser, true)

	_, err := uc.Execute(context.Background(), &Request{DraftID: "d1"})

	assert.ErrorIs(t, err, ErrStaleSelection)
	d.client.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_RejectedKeepsDraftOpen(t *testing.T) {
	uc, d := newTestUseCase()
	draft := readyDraft(t)
	d.registry.On("BeginSubmit", "d1").Return(draft, nil)
	d.registry.On("Lines", mock.Anything, draft).Return(readyLines)
	d.session.On("User").Return(clientUser, true)
	d.client.On("Create", mock.Anything, mock.Anything).
		Return(nil, &fleetapi.APIError{StatusCode: 400, Message: "Slot is in the past"})

	_, err := uc.Execute(context.Background(), &Request{DraftID: "d1"})

	assert.ErrorIs(t, err, ErrRejected)
	msg, ok := fleetapi.UserMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Slot is in the past", msg)
	d.registry.AssertNotCalled(t, "Complete", mock.Anything)
	d.registry.AssertCalled(t, "AbortSubmit", "d1")
	d.bookings.AssertNotCalled(t, "AppendBooking", mock.Anything)
}

func TestCreateBooking_UnavailableIsInternal(t *testing.T) {
	uc, d := newTestUseCase()
	draft := readyDraft(t)
	d.registry.On("BeginSubmit", "d1").Return(draft, nil)
	d.registry.On("Lines", mock.Anything, draft).Return(readyLines)
	d.session.On("User").Return(clientUser, true)
	d.client.On("Create", mock.Anything, mock.Anything).Return(nil, fleetapi.ErrUnavailable)

	_, err := uc.Execute(context.Background(), &Request{DraftID: "d1"})

	assert.ErrorIs(t, err, ErrInternal)
	assert.True(t, errors.Is(err, fleetapi.ErrUnavailable))
}

func TestCreateBooking_SubmitInProgress(t *testing.T) {
	uc, d := newTestUseCase()
	d.registry.On("BeginSubmit", "d1").Return(nil, drafts.ErrSubmitInProgress)

	_, err := uc.Execute(context.Background(), &Request{DraftID: "d1"})

	assert.ErrorIs(t, err, ErrSubmitInProgress)
	d.registry.AssertNotCalled(t, "AbortSubmit", mock.Anything)
	d.client.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_CatalogErrorIsNotStaleSelection(t *testing.T) {
	uc, d := newTestUseCase()
	draft := readyDraft(t)
	d.registry.On("BeginSubmit", "d1").Return(draft, nil)
	d.registry.On("Lines", mock.Anything, draft).Return(drafts.Lines{
		Jobs:     readyLines.Jobs,
		PartsErr: fleetapi.ErrUnavailable,
	})
	d.session.On("User").Return(clientUser, true)

	_, err := uc.Execute(context.Background(), &Request{DraftID: "d1"})

	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.ErrorIs(t, err, fleetapi.ErrUnavailable)
	assert.NotErrorIs(t, err, ErrStaleSelection)
	d.client.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

type catalogJobs struct{}

func (catalogJobs) Load(context.Context) store.Snapshot[domain.Job] {
	return store.Snapshot[domain.Job]{
		Items:  []domain.Job{{ID: "j1", Name: "Oil change", PricePerHour: 60, Duration: 30}},
		Loaded: true,
	}
}

type catalogParts struct{}

func (catalogParts) ForCar(context.Context, string) store.Snapshot[domain.PartItem] {
	return store.Snapshot[domain.PartItem]{Loaded: true}
}

type knownCars struct{}

func (knownCars) FindCar(_ context.Context, id string) (*domain.Car, error) {
	return &domain.Car{ID: id}, nil
}

// blockingClient держит первый Create, пока тест не отпустит его
type blockingClient struct {
	mu      sync.Mutex
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (c *blockingClient) Create(ctx context.Context, req *fleetapi.CreateBookingRequest) (*domain.Booking, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	close(c.entered)
	<-c.release
	return &domain.Booking{ID: "b1", CarID: req.CarID, TotalPrice: req.TotalPrice}, nil
}

func TestCreateBooking_ConcurrentSubmitCreatesOneBooking(t *testing.T) {
	registry := drafts.NewService(catalogJobs{}, catalogParts{}, knownCars{}, domain.DefaultVATRate, logger.Nop())
	view, err := registry.Open(context.Background(), "c1")
	require.NoError(t, err)
	id := view.Draft.ID
	_, err = registry.ToggleJob(context.Background(), id, "j1")
	require.NoError(t, err)
	_, err = registry.AddSlot(context.Background(), id, "2025-12-12", "12:00")
	require.NoError(t, err)

	client := &blockingClient{entered: make(chan struct{}), release: make(chan struct{})}
	bookings := &MockBookingsStore{}
	bookings.On("AppendBooking", mock.Anything).Return().Once()
	session := &MockSession{}
	session.On("User").Return(clientUser, true)
	uc := NewUseCase(registry, client, bookings, session, logger.Nop())

	type result struct {
		resp *Response
		err  error
	}
	first := make(chan result, 1)
	go func() {
		resp, err := uc.Execute(context.Background(), &Request{DraftID: id})
		first <- result{resp: resp, err: err}
	}()
	<-client.entered

	_, err = uc.Execute(context.Background(), &Request{DraftID: id})
	assert.ErrorIs(t, err, ErrSubmitInProgress)
	_, err = registry.ToggleJob(context.Background(), id, "j1")
	assert.ErrorIs(t, err, drafts.ErrSubmitInProgress)

	close(client.release)
	res := <-first

	require.NoError(t, res.err)
	assert.Equal(t, "b1", res.resp.Booking.ID)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, 0, registry.Count())
	bookings.AssertExpectations(t)
}
