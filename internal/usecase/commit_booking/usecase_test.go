package commit_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pethotel/PHM-BookingWorkflow/internal/domain"
	"github.com/pethotel/PHM-BookingWorkflow/internal/infra/storage/reservation"
	"github.com/pethotel/PHM-BookingWorkflow/internal/integrations/availability"
	"github.com/pethotel/PHM-BookingWorkflow/internal/integrations/clientdirectory"
	"github.com/pethotel/PHM-BookingWorkflow/internal/service/wizardsessions"
	"github.com/pethotel/PHM-BookingWorkflow/internal/workflow/wizard"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeRegistry struct {
	wizards map[string]*wizard.Wizard
}

func (f *fakeRegistry) Get(id string) (*wizard.Wizard, error) {
	w, ok := f.wizards[id]
	if !ok {
		return nil, wizardsessions.ErrSessionNotFound
	}
	return w, nil
}

type fakeRepo struct {
	created domain.SubmissionPayload
	err     error
}

func (f *fakeRepo) Create(ctx context.Context, payload domain.SubmissionPayload) (*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = payload
	return &domain.Reservation{
		ID:        100,
		ClientID:  payload.PayloadClientID(),
		Status:    domain.ReservationConfirmed,
		CreatedAt: time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC),
	}, nil
}

type fakeClients struct {
	client *clientdirectory.Client
	err    error
}

func (f *fakeClients) GetClient(ctx context.Context, clientID int64) (*clientdirectory.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.client, nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedResolver struct {
	set *domain.OptionSet
}

func (r *fixedResolver) FindOptions(ctx context.Context, req availability.FindOptionsRequest) (*domain.OptionSet, error) {
	return r.set, nil
}

type fixedInventory struct {
	rooms []*domain.RoomCandidate
}

func (f *fixedInventory) FindAvailableRooms(ctx context.Context, roomTypeID int64, checkIn, checkOut time.Time) ([]*domain.RoomCandidate, error) {
	return f.rooms, nil
}

func stayDates() *domain.DateRange {
	return &domain.DateRange{
		CheckIn:  time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC),
	}
}

func resultSet(includeSingle bool) *domain.OptionSet {
	mid := time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC)
	set := &domain.OptionSet{
		SameTypeTransfer: []*domain.Option{
			{
				Kind: domain.KindSameTypeTransfer,
				Segments: []domain.Segment{
					{CheckIn: stayDates().CheckIn, CheckOut: mid, RoomTypeID: 7},
					{CheckIn: mid, CheckOut: stayDates().CheckOut, RoomTypeID: 8},
				},
				TotalPrice: 300,
			},
		},
	}
	if includeSingle {
		set.SingleRoom = []*domain.Option{
			{
				Kind: domain.KindSingle,
				Segments: []domain.Segment{
					{CheckIn: stayDates().CheckIn, CheckOut: stayDates().CheckOut, RoomTypeID: 7},
				},
				TotalPrice: 400,
			},
		}
	}
	return set
}

// readyWizard собирает мастер с завершенным поиском и выбранным по умолчанию вариантом
func readyWizard(t *testing.T, set *domain.OptionSet, rooms []*domain.RoomCandidate) *wizard.Wizard {
	t.Helper()
	w := wizard.New(
		&fixedResolver{set: set},
		&fixedInventory{rooms: rooms},
		time.Millisecond,
		2,
		noopLogger{},
		nil,
	)
	t.Cleanup(w.Close)

	clientID := int64(42)
	require.NoError(t, w.SetDates(stayDates()))
	require.NoError(t, w.SetClient(&clientID))
	require.NoError(t, w.SetPets([]int64{1, 2}))

	require.Eventually(t, func() bool {
		return w.View().SearchStatus == wizard.SearchReady
	}, 2*time.Second, time.Millisecond, "search did not settle")

	return w
}

func ownerClient() *clientdirectory.Client {
	return &clientdirectory.Client{
		ID:       42,
		FullName: "Анна Петрова",
		PetIDs:   []int64{1, 2, 3},
	}
}

func newTestUseCase(registry *fakeRegistry, repo *fakeRepo, clients *fakeClients, tx *fakeTxManager) *UseCase {
	return NewUseCase(registry, repo, clients, tx, noopLogger{})
}

func TestExecute_SimpleBookingCommitAndReset(t *testing.T) {
	w := readyWizard(t, resultSet(true), []*domain.RoomCandidate{{ID: 11, RoomNumber: "101"}})
	require.Eventually(t, func() bool {
		return w.View().RoomStatus == wizard.RoomReady
	}, 2*time.Second, time.Millisecond)

	roomID := int64(11)
	require.NoError(t, w.AssignRoom(&roomID))

	repo := &fakeRepo{}
	tx := &fakeTxManager{}
	uc := newTestUseCase(
		&fakeRegistry{wizards: map[string]*wizard.Wizard{"s1": w}},
		repo,
		&fakeClients{client: ownerClient()},
		tx,
	)

	resp, err := uc.Execute(context.Background(), &Request{SessionID: "s1", OperatorID: 7})
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.BookingID)
	assert.Equal(t, int64(42), resp.ClientID)
	assert.False(t, resp.Composite)
	assert.Equal(t, 1, tx.calls)

	// Простая форма: тип номера и даты на верхнем уровне, закрепленный номер
	payload, ok := repo.created.(domain.SimpleBookingPayload)
	require.True(t, ok, "expected simple payload, got %T", repo.created)
	assert.Equal(t, int64(42), payload.ClientID)
	assert.Equal(t, []int64{1, 2}, payload.PetIDs)
	assert.Equal(t, int64(7), payload.RoomTypeID)
	require.NotNil(t, payload.AssignedRoomID)
	assert.Equal(t, int64(11), *payload.AssignedRoomID)

	// После успешного коммита мастер полностью сброшен
	view := w.View()
	assert.Equal(t, domain.StepDates, view.Step)
	assert.Nil(t, view.State.Dates)
}

func TestExecute_SimpleBookingWithoutRoom(t *testing.T) {
	w := readyWizard(t, resultSet(true), nil)

	repo := &fakeRepo{}
	uc := newTestUseCase(
		&fakeRegistry{wizards: map[string]*wizard.Wizard{"s1": w}},
		repo,
		&fakeClients{client: ownerClient()},
		&fakeTxManager{},
	)

	_, err := uc.Execute(context.Background(), &Request{SessionID: "s1"})
	require.NoError(t, err)

	payload, ok := repo.created.(domain.SimpleBookingPayload)
	require.True(t, ok)
	// "Назначить позже": номер отсутствует, форма остается простой
	assert.Nil(t, payload.AssignedRoomID)
}

func TestExecute_CompositeBookingKeepsSegmentOrder(t *testing.T) {
	w := readyWizard(t, resultSet(false), nil)

	repo := &fakeRepo{}
	uc := newTestUseCase(
		&fakeRegistry{wizards: map[string]*wizard.Wizard{"s1": w}},
		repo,
		&fakeClients{client: ownerClient()},
		&fakeTxManager{},
	)

	resp, err := uc.Execute(context.Background(), &Request{SessionID: "s1"})
	require.NoError(t, err)
	assert.True(t, resp.Composite)

	payload, ok := repo.created.(domain.CompositeBookingPayload)
	require.True(t, ok, "expected composite payload, got %T", repo.created)
	require.Len(t, payload.Segments, 2)
	assert.Equal(t, int64(7), payload.Segments[0].RoomTypeID)
	assert.Equal(t, int64(8), payload.Segments[1].RoomTypeID)
	assert.True(t, payload.Segments[0].CheckOutDate.Equal(payload.Segments[1].CheckInDate))
}

func TestExecute_NotReadyStateFailsValidation(t *testing.T) {
	w := wizard.New(
		&fixedResolver{set: resultSet(true)},
		&fixedInventory{},
		time.Millisecond,
		2,
		noopLogger{},
		nil,
	)
	t.Cleanup(w.Close)
	require.NoError(t, w.SetDates(stayDates())) // только даты - вариант не выбран

	uc := newTestUseCase(
		&fakeRegistry{wizards: map[string]*wizard.Wizard{"s1": w}},
		&fakeRepo{},
		&fakeClients{client: ownerClient()},
		&fakeTxManager{},
	)

	_, err := uc.Execute(context.Background(), &Request{SessionID: "s1"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExecute_SessionNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeRegistry{wizards: map[string]*wizard.Wizard{}},
		&fakeRepo{},
		&fakeClients{client: ownerClient()},
		&fakeTxManager{},
	)

	_, err := uc.Execute(context.Background(), &Request{SessionID: "missing"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExecute_EmptySessionIDRejected(t *testing.T) {
	uc := newTestUseCase(
		&fakeRegistry{wizards: map[string]*wizard.Wizard{}},
		&fakeRepo{},
		&fakeClients{client: ownerClient()},
		&fakeTxManager{},
	)

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ClientNotFound(t *testing.T) {
	w := readyWizard(t, resultSet(true), nil)

	uc := newTestUseCase(
		&fakeRegistry{wizards: map[string]*wizard.Wizard{"s1": w}},
		&fakeRepo{},
		&fakeClients{err: clientdirectory.ErrClientNotFound},
		&fakeTxManager{},
	)

	_, err := uc.Execute(context.Background(), &Request{SessionID: "s1"})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestExecute_PetNotOwned(t *testing.T) {
	w := readyWizard(t, resultSet(true), nil)

	stranger := &clientdirectory.Client{ID: 42, FullName: "Иван Сидоров", PetIDs: []int64{9}}
	uc := newTestUseCase(
		&fakeRegistry{wizards: map[string]*wizard.Wizard{"s1": w}},
		&fakeRepo{},
		&fakeClients{client: stranger},
		&fakeTxManager{},
	)

	_, err := uc.Execute(context.Background(), &Request{SessionID: "s1"})
	assert.ErrorIs(t, err, ErrPetNotOwned)
}

func TestExecute_RoomConflictPreservesWizardState(t *testing.T) {
	w := readyWizard(t, resultSet(true), nil)

	conflictErr := reservation.ErrRoomConflict
	uc := newTestUseCase(
		&fakeRegistry{wizards: map[string]*wizard.Wizard{"s1": w}},
		&fakeRepo{err: conflictErr},
		&fakeClients{client: ownerClient()},
		&fakeTxManager{},
	)

	_, err := uc.Execute(context.Background(), &Request{SessionID: "s1"})
	assert.ErrorIs(t, err, ErrRoomConflict)

	// Состояние мастера не тронуто: оператор меняет вариант и повторяет
	view := w.View()
	assert.NotNil(t, view.State.Dates)
	assert.NotNil(t, view.State.SelectedOption)
	assert.True(t, view.Ready)
}

func TestExecute_StorageFailurePreservesWizardState(t *testing.T) {
	w := readyWizard(t, resultSet(true), nil)

	uc := newTestUseCase(
		&fakeRegistry{wizards: map[string]*wizard.Wizard{"s1": w}},
		&fakeRepo{err: errors.New("connection reset")},
		&fakeClients{client: ownerClient()},
		&fakeTxManager{},
	)

	_, err := uc.Execute(context.Background(), &Request{SessionID: "s1"})
	assert.ErrorIs(t, err, ErrCommitFailed)
	assert.True(t, w.View().Ready)
}
