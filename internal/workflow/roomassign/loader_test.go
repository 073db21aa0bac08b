package roomassign

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pethotel/PHM-BookingWorkflow/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeInventory struct {
	calls   int32
	respond func(ctx context.Context, roomTypeID int64) ([]*domain.RoomCandidate, error)
}

func (f *fakeInventory) FindAvailableRooms(ctx context.Context, roomTypeID int64, checkIn, checkOut time.Time) ([]*domain.RoomCandidate, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.respond(ctx, roomTypeID)
}

func singleSelection(roomTypeID int64) *domain.Option {
	return &domain.Option{
		Kind: domain.KindSingle,
		Segments: []domain.Segment{
			{
				CheckIn:    time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
				CheckOut:   time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC),
				RoomTypeID: roomTypeID,
			},
		},
	}
}

func compositeSelection() *domain.Option {
	mid := time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC)
	return &domain.Option{
		Kind: domain.KindSameTypeTransfer,
		Segments: []domain.Segment{
			{CheckIn: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), CheckOut: mid, RoomTypeID: 1},
			{CheckIn: mid, CheckOut: time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC), RoomTypeID: 1},
		},
	}
}

func TestLoader_SingleSelectionLoadsRooms(t *testing.T) {
	rooms := []*domain.RoomCandidate{{ID: 1, RoomNumber: "101"}, {ID: 2, RoomNumber: "102"}}
	inventory := &fakeInventory{
		respond: func(ctx context.Context, roomTypeID int64) ([]*domain.RoomCandidate, error) {
			return rooms, nil
		},
	}

	loadedCh := make(chan Loaded, 1)
	l := NewLoader(inventory, func(ld Loaded) { loadedCh <- ld }, noopLogger{})
	defer l.Close()

	gen := l.Load(singleSelection(7))

	select {
	case ld := <-loadedCh:
		assert.Equal(t, gen, ld.Gen)
		assert.Equal(t, StatusReady, ld.Status)
		assert.Equal(t, rooms, ld.Rooms)
	case <-time.After(time.Second):
		t.Fatal("load result was not delivered")
	}
}

func TestLoader_EmptyListIsReadyNotFailed(t *testing.T) {
	inventory := &fakeInventory{
		respond: func(ctx context.Context, roomTypeID int64) ([]*domain.RoomCandidate, error) {
			return []*domain.RoomCandidate{}, nil
		},
	}

	loadedCh := make(chan Loaded, 1)
	l := NewLoader(inventory, func(ld Loaded) { loadedCh <- ld }, noopLogger{})
	defer l.Close()

	l.Load(singleSelection(7))

	select {
	case ld := <-loadedCh:
		assert.Equal(t, StatusReady, ld.Status)
		assert.Empty(t, ld.Rooms)
		assert.NoError(t, ld.Err)
	case <-time.After(time.Second):
		t.Fatal("load result was not delivered")
	}
}

func TestLoader_CompositeSelectionClearsWithoutFetch(t *testing.T) {
	inventory := &fakeInventory{
		respond: func(ctx context.Context, roomTypeID int64) ([]*domain.RoomCandidate, error) {
			return nil, nil
		},
	}

	loadedCh := make(chan Loaded, 1)
	l := NewLoader(inventory, func(ld Loaded) { loadedCh <- ld }, noopLogger{})
	defer l.Close()

	l.Load(compositeSelection())

	select {
	case ld := <-loadedCh:
		assert.Equal(t, StatusCleared, ld.Status)
	case <-time.After(time.Second):
		t.Fatal("cleared state was not delivered")
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&inventory.calls))
}

func TestLoader_StaleLoadNeverDelivered(t *testing.T) {
	firstStarted := make(chan struct{})
	release := make(chan struct{})

	staleRooms := []*domain.RoomCandidate{{ID: 99, RoomNumber: "999"}}
	freshRooms := []*domain.RoomCandidate{{ID: 1, RoomNumber: "101"}}

	inventory := &fakeInventory{}
	inventory.respond = func(ctx context.Context, roomTypeID int64) ([]*domain.RoomCandidate, error) {
		if roomTypeID == 1 {
			close(firstStarted)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-release:
				return staleRooms, nil
			}
		}
		return freshRooms, nil
	}

	loadedCh := make(chan Loaded, 10)
	l := NewLoader(inventory, func(ld Loaded) { loadedCh <- ld }, noopLogger{})
	defer l.Close()

	l.Load(singleSelection(1))
	select {
	case <-firstStarted:
	case <-time.After(time.Second):
		t.Fatal("first load did not start")
	}

	lastGen := l.Load(singleSelection(2))
	close(release)

	select {
	case ld := <-loadedCh:
		require.Equal(t, lastGen, ld.Gen)
		assert.Equal(t, freshRooms, ld.Rooms)
	case <-time.After(time.Second):
		t.Fatal("fresh load was not delivered")
	}

	select {
	case ld := <-loadedCh:
		t.Fatalf("stale load delivered: %+v", ld)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLoader_FailureDeliveredAsFailed(t *testing.T) {
	loadErr := errors.New("inventory down")
	inventory := &fakeInventory{
		respond: func(ctx context.Context, roomTypeID int64) ([]*domain.RoomCandidate, error) {
			return nil, loadErr
		},
	}

	loadedCh := make(chan Loaded, 1)
	l := NewLoader(inventory, func(ld Loaded) { loadedCh <- ld }, noopLogger{})
	defer l.Close()

	l.Load(singleSelection(7))

	select {
	case ld := <-loadedCh:
		assert.Equal(t, StatusFailed, ld.Status)
		assert.ErrorIs(t, ld.Err, loadErr)
	case <-time.After(time.Second):
		t.Fatal("failed state was not delivered")
	}
}
