package optionsearch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pethotel/PHM-BookingWorkflow/internal/domain"
	"github.com/pethotel/PHM-BookingWorkflow/internal/integrations/availability"
)

// Outcome исход одного логического поиска
type Outcome string

const (
	// OutcomeNoSearch триггер неполный, поиск не выполнялся, прежние варианты сброшены
	OutcomeNoSearch Outcome = "no_search"
	// OutcomeResult резолвер вернул хотя бы один вариант
	OutcomeResult Outcome = "result"
	// OutcomeEmpty резолвер отработал, но вариантов ноль
	OutcomeEmpty Outcome = "empty"
	// OutcomeFailed сетевая ошибка или ошибка резолвера (не фатальная)
	OutcomeFailed Outcome = "failed"
)

// Trigger входные данные поиска
// Поиск запускается только когда заполнены все три поля
type Trigger struct {
	Dates    *domain.DateRange
	PetCount int
	ClientID *int64
}

// Complete возвращает true, когда триггер содержит все данные для поиска
func (t Trigger) Complete() bool {
	return t.Dates != nil && t.PetCount > 0 && t.ClientID != nil
}

// Settled результат одного логического поиска
// Доставляется ровно один раз на поиск; устаревшие (superseded) запросы
// не доставляются вовсе
type Settled struct {
	Gen       uint64
	Outcome   Outcome
	OptionSet *domain.OptionSet
	Err       error
}

// Coordinator владеет жизненным циклом debounce + cancel для поиска вариантов
//
// Модель: "последний пишет" с явной отменой. Каждый новый триггер сначала
// останавливает запланированный таймер и отменяет in-flight запрос на уровне
// транспорта, затем планирует новый отложенный запуск. Применен может быть
// результат только самого свежего поколения
type Coordinator struct {
	resolver  OptionsResolver
	debounce  time.Duration
	onSettled func(Settled)
	logger    Logger
	metrics   Metrics

	mu             sync.Mutex
	gen            uint64
	timer          *time.Timer
	cancelInFlight context.CancelFunc
	closed         bool
}

// NewCoordinator создает координатор поиска
// onSettled вызывается из горутин координатора, не под его мьютексом
func NewCoordinator(
	resolver OptionsResolver,
	debounce time.Duration,
	onSettled func(Settled),
	logger Logger,
	metrics Metrics,
) *Coordinator {
	if debounce <= 0 {
		debounce = domain.DefaultDebounceWindow
	}
	return &Coordinator{
		resolver:  resolver,
		debounce:  debounce,
		onSettled: onSettled,
		logger:    logger,
		metrics:   metrics,
	}
}

// Trigger регистрирует изменение входных данных поиска
// Возвращает поколение, которому будет принадлежать результат этого триггера;
// потребитель сверяет поколение в Settled с последним полученным от Trigger,
// это делает last-write-wins свойством потребителя, а не только координатора
func (c *Coordinator) Trigger(t Trigger) uint64 {
	c.mu.Lock()
	if c.closed {
		gen := c.gen
		c.mu.Unlock()
		return gen
	}

	c.gen++
	gen := c.gen
	c.supersedeLocked()

	if !t.Complete() {
		c.mu.Unlock()
		// Неполный триггер: поиска нет, прежний OptionSet подлежит сбросу
		go c.settle(gen, Settled{Gen: gen, Outcome: OutcomeNoSearch})
		return gen
	}

	trigger := t
	c.timer = time.AfterFunc(c.debounce, func() {
		c.issue(gen, trigger)
	})
	c.mu.Unlock()

	return gen
}

// supersedeLocked останавливает запланированный таймер и отменяет in-flight запрос
// Вызывается под c.mu
func (c *Coordinator) supersedeLocked() {
	superseded := false
	if c.timer != nil {
		if c.timer.Stop() {
			superseded = true
		}
		c.timer = nil
	}
	if c.cancelInFlight != nil {
		c.cancelInFlight()
		c.cancelInFlight = nil
		superseded = true
	}
	if superseded && c.metrics != nil {
		c.metrics.IncSearchSuperseded()
	}
}

// issue выполняет отложенный запрос к резолверу, если его поколение все еще актуально
func (c *Coordinator) issue(gen uint64, t Trigger) {
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancelInFlight = cancel
	c.timer = nil
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.IncSearchIssued()
	}

	set, err := c.resolver.FindOptions(ctx, availability.FindOptionsRequest{
		CheckInDate:  t.Dates.CheckIn,
		CheckOutDate: t.Dates.CheckOut,
		NumberOfPets: t.PetCount,
		ClientID:     *t.ClientID,
	})

	c.mu.Lock()
	if c.closed || gen != c.gen {
		// Запрос был вытеснен более новым триггером - результат молча отбрасывается,
		// независимо от порядка завершения запросов
		c.mu.Unlock()
		cancel()
		return
	}
	c.cancelInFlight = nil
	c.mu.Unlock()
	cancel()

	switch {
	case err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
		// Отмена - ожидаемый исход supersession, не ошибка и не событие
		return
	case err != nil:
		c.logger.Warn("OptionSearch: resolver request failed: %v", err)
		c.settle(gen, Settled{Gen: gen, Outcome: OutcomeFailed, Err: err})
	case set.TotalOptions() == 0:
		c.settle(gen, Settled{Gen: gen, Outcome: OutcomeEmpty, OptionSet: set})
	default:
		c.settle(gen, Settled{Gen: gen, Outcome: OutcomeResult, OptionSet: set})
	}
}

func (c *Coordinator) settle(gen uint64, s Settled) {
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.IncSearchSettled(string(s.Outcome))
	}
	c.onSettled(s)
}

// Close отменяет запланированный и in-flight поиск и запрещает новые триггеры
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancelInFlight != nil {
		c.cancelInFlight()
		c.cancelInFlight = nil
	}
}
