package roomassign

import (
	"context"
	"errors"
	"sync"

	"github.com/pethotel/PHM-BookingWorkflow/internal/domain"
)

// Status состояние загрузки списка номеров
type Status string

const (
	// StatusCleared список номеров не применим (вариант составной или не выбран)
	StatusCleared Status = "cleared"
	// StatusReady список номеров загружен (возможно пустой - это не ошибка)
	StatusReady Status = "ready"
	// StatusFailed загрузка завершилась ошибкой (не фатальной)
	StatusFailed Status = "failed"
)

// Loaded результат одной загрузки списка номеров
type Loaded struct {
	Gen    uint64
	Status Status
	Rooms  []*domain.RoomCandidate
	Err    error
}

// Loader загружает конкретные свободные номера для выбранного
// одно-сегментного варианта
//
// Дисциплина та же, что у поиска вариантов: последний выбор побеждает,
// предыдущая незавершенная загрузка отменяется, ее результат никогда
// не применяется - устаревший список номеров не должен показываться
// для уже не выбранного варианта
type Loader struct {
	client   RoomInventoryClient
	onLoaded func(Loaded)
	logger   Logger

	mu             sync.Mutex
	gen            uint64
	cancelInFlight context.CancelFunc
	closed         bool
}

// NewLoader создает загрузчик номеров
// onLoaded вызывается из горутин загрузчика, не под его мьютексом
func NewLoader(client RoomInventoryClient, onLoaded func(Loaded), logger Logger) *Loader {
	return &Loader{
		client:   client,
		onLoaded: onLoaded,
		logger:   logger,
	}
}

// Load запускает загрузку номеров для выбранного варианта
// Для nil или составного варианта загрузка не выполняется: in-flight
// запрос отменяется и доставляется очищенное состояние - назначение
// номера для составных бронирований не определено
func (l *Loader) Load(selection *domain.Option) uint64 {
	l.mu.Lock()
	if l.closed {
		gen := l.gen
		l.mu.Unlock()
		return gen
	}

	l.gen++
	gen := l.gen
	if l.cancelInFlight != nil {
		l.cancelInFlight()
		l.cancelInFlight = nil
	}

	if selection == nil || !selection.IsSingle() {
		l.mu.Unlock()
		go l.deliver(gen, Loaded{Gen: gen, Status: StatusCleared})
		return gen
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancelInFlight = cancel
	segment := selection.Segments[0]
	l.mu.Unlock()

	go l.fetch(ctx, cancel, gen, segment)

	return gen
}

func (l *Loader) fetch(ctx context.Context, cancel context.CancelFunc, gen uint64, segment domain.Segment) {
	rooms, err := l.client.FindAvailableRooms(ctx, segment.RoomTypeID, segment.CheckIn, segment.CheckOut)

	l.mu.Lock()
	if l.closed || gen != l.gen {
		l.mu.Unlock()
		cancel()
		return
	}
	l.cancelInFlight = nil
	l.mu.Unlock()
	cancel()

	switch {
	case err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
		// Вытеснен новым выбором - молча отбрасываем
		return
	case err != nil:
		l.logger.Warn("RoomAssign: failed to load rooms for room_type=%d: %v", segment.RoomTypeID, err)
		l.deliver(gen, Loaded{Gen: gen, Status: StatusFailed, Err: err})
	default:
		// Пустой список - отдельное видимое состояние "нет номеров на эти даты"
		l.deliver(gen, Loaded{Gen: gen, Status: StatusReady, Rooms: rooms})
	}
}

func (l *Loader) deliver(gen uint64, loaded Loaded) {
	l.mu.Lock()
	if l.closed || gen != l.gen {
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()

	l.onLoaded(loaded)
}

// Close отменяет in-flight загрузку и запрещает новые
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	if l.cancelInFlight != nil {
		l.cancelInFlight()
		l.cancelInFlight = nil
	}
}
