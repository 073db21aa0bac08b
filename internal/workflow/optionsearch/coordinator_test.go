package optionsearch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pethotel/PHM-BookingWorkflow/internal/domain"
	"github.com/pethotel/PHM-BookingWorkflow/internal/integrations/availability"
)

const testDebounce = 20 * time.Millisecond

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// fakeResolver управляемый резолвер: отвечает из очереди ответов
// или блокируется до отмены контекста
type fakeResolver struct {
	mu       sync.Mutex
	calls    int32
	requests []availability.FindOptionsRequest

	respond func(ctx context.Context, req availability.FindOptionsRequest) (*domain.OptionSet, error)
}

func (f *fakeResolver) FindOptions(ctx context.Context, req availability.FindOptionsRequest) (*domain.OptionSet, error) {
	atomic.AddInt32(&f.calls, 1)
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.respond(ctx, req)
}

func (f *fakeResolver) callCount() int {
	return int(atomic.LoadInt32(&f.calls))
}

func completeTrigger(petCount int) Trigger {
	clientID := int64(42)
	return Trigger{
		Dates: &domain.DateRange{
			CheckIn:  time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC),
		},
		PetCount: petCount,
		ClientID: &clientID,
	}
}

func nonEmptySet() *domain.OptionSet {
	return &domain.OptionSet{
		SingleRoom: []*domain.Option{
			{
				Kind: domain.KindSingle,
				Segments: []domain.Segment{
					{RoomTypeID: 1},
				},
			},
		},
	}
}

func TestCoordinator_BurstCollapsesToOneRequest(t *testing.T) {
	resolver := &fakeResolver{
		respond: func(ctx context.Context, req availability.FindOptionsRequest) (*domain.OptionSet, error) {
			return nonEmptySet(), nil
		},
	}

	settledCh := make(chan Settled, 10)
	c := NewCoordinator(resolver, testDebounce, func(s Settled) { settledCh <- s }, noopLogger{}, nil)
	defer c.Close()

	// Шквал изменений внутри окна debounce
	var lastGen uint64
	for pets := 1; pets <= 5; pets++ {
		lastGen = c.Trigger(completeTrigger(pets))
	}

	select {
	case s := <-settledCh:
		assert.Equal(t, lastGen, s.Gen)
		assert.Equal(t, OutcomeResult, s.Outcome)
	case <-time.After(time.Second):
		t.Fatal("settle was not delivered")
	}

	assert.Equal(t, 1, resolver.callCount())
	require.Len(t, resolver.requests, 1)
	assert.Equal(t, 5, resolver.requests[0].NumberOfPets)

	// Других доставок быть не должно
	select {
	case s := <-settledCh:
		t.Fatalf("unexpected extra settle: %+v", s)
	case <-time.After(3 * testDebounce):
	}
}

func TestCoordinator_IncompleteTriggerSettlesNoSearch(t *testing.T) {
	resolver := &fakeResolver{
		respond: func(ctx context.Context, req availability.FindOptionsRequest) (*domain.OptionSet, error) {
			return nonEmptySet(), nil
		},
	}

	settledCh := make(chan Settled, 1)
	c := NewCoordinator(resolver, testDebounce, func(s Settled) { settledCh <- s }, noopLogger{}, nil)
	defer c.Close()

	gen := c.Trigger(Trigger{PetCount: 2}) // нет дат и клиента

	select {
	case s := <-settledCh:
		assert.Equal(t, gen, s.Gen)
		assert.Equal(t, OutcomeNoSearch, s.Outcome)
		assert.Nil(t, s.OptionSet)
	case <-time.After(time.Second):
		t.Fatal("no-search settle was not delivered")
	}

	assert.Equal(t, 0, resolver.callCount())
}

func TestCoordinator_StaleInFlightResultNeverDelivered(t *testing.T) {
	firstStarted := make(chan struct{})
	release := make(chan struct{})

	resolver := &fakeResolver{}
	resolver.respond = func(ctx context.Context, req availability.FindOptionsRequest) (*domain.OptionSet, error) {
		if req.NumberOfPets == 1 {
			close(firstStarted)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-release:
				// Медленный ответ устаревшего поколения
				return nonEmptySet(), nil
			}
		}
		return &domain.OptionSet{}, nil
	}

	settledCh := make(chan Settled, 10)
	c := NewCoordinator(resolver, testDebounce, func(s Settled) { settledCh <- s }, noopLogger{}, nil)
	defer c.Close()

	c.Trigger(completeTrigger(1))

	// Дожидаемся, пока первый запрос уйдет в полет, и вытесняем его
	select {
	case <-firstStarted:
	case <-time.After(time.Second):
		t.Fatal("first request did not start")
	}
	lastGen := c.Trigger(completeTrigger(2))
	close(release)

	select {
	case s := <-settledCh:
		assert.Equal(t, lastGen, s.Gen)
		assert.Equal(t, OutcomeEmpty, s.Outcome)
	case <-time.After(time.Second):
		t.Fatal("settle was not delivered")
	}

	// Результат первого (устаревшего) поколения не доставляется
	select {
	case s := <-settledCh:
		t.Fatalf("stale settle delivered: %+v", s)
	case <-time.After(3 * testDebounce):
	}
}

func TestCoordinator_ResolverErrorSettlesFailed(t *testing.T) {
	resolverErr := errors.New("boom")
	resolver := &fakeResolver{
		respond: func(ctx context.Context, req availability.FindOptionsRequest) (*domain.OptionSet, error) {
			return nil, resolverErr
		},
	}

	settledCh := make(chan Settled, 1)
	c := NewCoordinator(resolver, testDebounce, func(s Settled) { settledCh <- s }, noopLogger{}, nil)
	defer c.Close()

	gen := c.Trigger(completeTrigger(2))

	select {
	case s := <-settledCh:
		assert.Equal(t, gen, s.Gen)
		assert.Equal(t, OutcomeFailed, s.Outcome)
		assert.ErrorIs(t, s.Err, resolverErr)
	case <-time.After(time.Second):
		t.Fatal("failed settle was not delivered")
	}
}

func TestCoordinator_EmptySetSettlesEmpty(t *testing.T) {
	resolver := &fakeResolver{
		respond: func(ctx context.Context, req availability.FindOptionsRequest) (*domain.OptionSet, error) {
			return &domain.OptionSet{}, nil
		},
	}

	settledCh := make(chan Settled, 1)
	c := NewCoordinator(resolver, testDebounce, func(s Settled) { settledCh <- s }, noopLogger{}, nil)
	defer c.Close()

	c.Trigger(completeTrigger(2))

	select {
	case s := <-settledCh:
		assert.Equal(t, OutcomeEmpty, s.Outcome)
		assert.NotNil(t, s.OptionSet)
	case <-time.After(time.Second):
		t.Fatal("empty settle was not delivered")
	}
}

func TestCoordinator_CloseCancelsPendingWork(t *testing.T) {
	resolver := &fakeResolver{
		respond: func(ctx context.Context, req availability.FindOptionsRequest) (*domain.OptionSet, error) {
			return nonEmptySet(), nil
		},
	}

	settledCh := make(chan Settled, 1)
	c := NewCoordinator(resolver, testDebounce, func(s Settled) { settledCh <- s }, noopLogger{}, nil)

	c.Trigger(completeTrigger(2))
	c.Close()

	select {
	case s := <-settledCh:
		t.Fatalf("settle delivered after close: %+v", s)
	case <-time.After(3 * testDebounce):
	}
	assert.Equal(t, 0, resolver.callCount())
}
