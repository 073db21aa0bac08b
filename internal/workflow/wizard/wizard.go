package wizard

import (
	"sync"
	"time"

	"github.com/pethotel/PHM-BookingWorkflow/internal/domain"
	"github.com/pethotel/PHM-BookingWorkflow/internal/workflow/optionrank"
	"github.com/pethotel/PHM-BookingWorkflow/internal/workflow/optionsearch"
	"github.com/pethotel/PHM-BookingWorkflow/internal/workflow/roomassign"
)

// Wizard мастер составления бронирования
//
// Единственный владелец WizardState. Шаги мастера - строгая цепочка
// Dates → Client → Pets → Option → Room(необязательный) → Ready;
// текущий шаг не хранится, а выводится из состояния (domain.WizardState).
// Инвалидация каскадная: очистка верхнего поля немедленно сбрасывает
// все нижележащие выборы, чтобы устаревший выбор (например, вариант,
// посчитанный для уже измененных дат) никогда не дошел до коммита
type Wizard struct {
	coordinator *optionsearch.Coordinator
	roomLoader  *roomassign.Loader
	transferCap int
	logger      Logger

	mu    sync.Mutex
	state domain.WizardState

	searchGen     uint64
	searchStatus  SearchStatus
	optionSet     *domain.OptionSet
	ranked        optionrank.RankedOptions
	selectedIndex int

	roomGen        uint64
	roomStatus     RoomLoadStatus
	roomCandidates []*domain.RoomCandidate

	lastActive time.Time
}

// New создает мастер, подключенный к резолверу доступности и инвентарю номеров
func New(
	resolver optionsearch.OptionsResolver,
	roomClient roomassign.RoomInventoryClient,
	debounce time.Duration,
	transferCap int,
	logger Logger,
	metrics optionsearch.Metrics,
) *Wizard {
	w := &Wizard{
		transferCap:   transferCap,
		logger:        logger,
		searchStatus:  SearchNone,
		roomStatus:    RoomIdle,
		selectedIndex: -1,
		lastActive:    time.Now(),
		ranked:        optionrank.RankedOptions{Options: []*domain.Option{}, DefaultIndex: -1},
	}
	w.coordinator = optionsearch.NewCoordinator(resolver, debounce, w.onSearchSettled, logger, metrics)
	w.roomLoader = roomassign.NewLoader(roomClient, w.onRoomLoaded, logger)
	return w
}

// SetDates устанавливает или очищает период проживания
// Очистка дат сбрасывает всю цепочку ниже (клиента, питомцев, вариант, номер);
// изменение дат сохраняет клиента и питомцев, но сбрасывает посчитанные для
// старых дат выборы и перезапускает поиск
func (w *Wizard) SetDates(dates *domain.DateRange) error {
	if dates != nil {
		if err := dates.Validate(); err != nil {
			return ErrInvalidDates
		}
		if dates.Nights() > domain.MaxStayNights {
			return ErrStayTooLong
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.touchLocked()

	if dates == nil {
		w.state.Dates = nil
		w.state.ClientID = nil
		w.state.PetIDs = nil
	} else {
		d := *dates
		w.state.Dates = &d
	}
	w.invalidateSelectionsLocked()
	w.retriggerLocked()
	return nil
}

// SetClient устанавливает или очищает клиента
// Смена клиента инвалидирует питомцев (они принадлежат прежнему клиенту)
// и все нижележащие выборы
func (w *Wizard) SetClient(clientID *int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touchLocked()

	if clientID == nil {
		w.state.ClientID = nil
	} else {
		id := *clientID
		w.state.ClientID = &id
	}
	w.state.PetIDs = nil
	w.invalidateSelectionsLocked()
	w.retriggerLocked()
	return nil
}

// SetPets устанавливает набор питомцев (пустой набор очищает шаг)
func (w *Wizard) SetPets(petIDs []int64) error {
	if len(petIDs) > domain.MaxPetsPerStay {
		return ErrTooManyPets
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.touchLocked()

	if len(petIDs) == 0 {
		w.state.PetIDs = nil
	} else {
		w.state.PetIDs = append([]int64(nil), petIDs...)
	}
	w.invalidateSelectionsLocked()
	w.retriggerLocked()
	return nil
}

// SetSpecialRequests устанавливает пожелания к проживанию
// Пожелания не участвуют в цепочке шагов и ничего не инвалидируют
func (w *Wizard) SetSpecialRequests(text *string) error {
	if text != nil && len(*text) > domain.MaxSpecialRequestsLength {
		return ErrSpecialRequestsTooLong
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.touchLocked()

	if text == nil {
		w.state.SpecialRequests = nil
	} else {
		t := *text
		w.state.SpecialRequests = &t
	}
	return nil
}

// SelectOption выбирает вариант по индексу в показанном списке
// Выбирать можно только показанные варианты. Выбор одно-сегментного
// варианта запускает загрузку свободных номеров; выбор составного
// очищает список номеров и назначенный номер - назначение номера
// для составных бронирований не определено
func (w *Wizard) SelectOption(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touchLocked()

	if w.searchStatus != SearchReady {
		return ErrSearchNotReady
	}
	if index < 0 || index >= len(w.ranked.Options) {
		return ErrOptionIndexOutOfRange
	}

	w.selectedIndex = index
	w.state.SelectedOption = w.ranked.Options[index]
	w.state.AssignedRoomID = nil
	w.fireRoomLoadLocked()
	return nil
}

// AssignRoom закрепляет конкретный номер за одно-сегментным вариантом
// nil - явный выбор "назначить позже": всегда валиден для простых
// бронирований и не считается незавершенностью
func (w *Wizard) AssignRoom(roomID *int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touchLocked()

	if w.state.SelectedOption == nil {
		return ErrNoOptionSelected
	}
	if !w.state.SelectedOption.IsSingle() {
		return ErrRoomNotApplicable
	}

	if roomID == nil {
		w.state.AssignedRoomID = nil
		return nil
	}

	// Закрепить можно только номер из загруженного списка кандидатов
	found := false
	for _, room := range w.roomCandidates {
		if room.ID == *roomID {
			found = true
			break
		}
	}
	if !found {
		return ErrRoomNotCandidate
	}

	id := *roomID
	w.state.AssignedRoomID = &id
	return nil
}

// Snapshot возвращает копию текущего состояния для построения payload
func (w *Wizard) Snapshot() domain.WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.copyStateLocked()
}

// Reset полностью сбрасывает состояние мастера
// Политика после успешного коммита - полный сброс, чтобы устаревшие
// выборы не протекали в следующее бронирование
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touchLocked()

	w.state = domain.WizardState{}
	w.invalidateSelectionsLocked()
	w.retriggerLocked()
}

// View возвращает снимок мастера для host UI
func (w *Wizard) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	options := append([]*domain.Option(nil), w.ranked.Options...)
	rooms := append([]*domain.RoomCandidate(nil), w.roomCandidates...)

	hasPerfect := false
	if w.optionSet != nil {
		hasPerfect = w.optionSet.HasPerfectOptions
	}

	roomStatus := w.roomStatus
	if roomStatus == RoomReady && len(rooms) == 0 {
		roomStatus = RoomEmpty
	}

	state := w.copyStateLocked()
	return View{
		State:             state,
		Step:              state.CurrentStep(),
		Ready:             state.IsReady(),
		SearchStatus:      w.searchStatus,
		HasPerfectOptions: hasPerfect,
		Options:           options,
		SelectedIndex:     w.selectedIndex,
		RoomStatus:        roomStatus,
		RoomCandidates:    rooms,
	}
}

// LastActive возвращает время последнего обращения к мастеру
func (w *Wizard) LastActive() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastActive
}

// Close отменяет все асинхронные операции мастера
func (w *Wizard) Close() {
	w.coordinator.Close()
	w.roomLoader.Close()
}

// invalidateSelectionsLocked сбрасывает выбор варианта, номер и результаты
// поиска - все, что посчитано от уже измененных верхних полей
func (w *Wizard) invalidateSelectionsLocked() {
	w.state.SelectedOption = nil
	w.state.AssignedRoomID = nil
	w.optionSet = nil
	w.ranked = optionrank.RankedOptions{Options: []*domain.Option{}, DefaultIndex: -1}
	w.selectedIndex = -1
	w.roomCandidates = nil
	w.roomStatus = RoomIdle
	w.roomGen = w.roomLoader.Load(nil)
}

// retriggerLocked перезапускает поиск с текущими входными данными
func (w *Wizard) retriggerLocked() {
	trigger := optionsearch.Trigger{
		Dates:    w.state.Dates,
		PetCount: len(w.state.PetIDs),
		ClientID: w.state.ClientID,
	}
	if trigger.Complete() {
		w.searchStatus = SearchSearching
	} else {
		w.searchStatus = SearchNone
	}
	w.searchGen = w.coordinator.Trigger(trigger)
}

// fireRoomLoadLocked запускает (или очищает) загрузку номеров для текущего выбора
func (w *Wizard) fireRoomLoadLocked() {
	selection := w.state.SelectedOption
	if selection != nil && selection.IsSingle() {
		w.roomStatus = RoomLoading
	} else {
		w.roomStatus = RoomIdle
	}
	w.roomCandidates = nil
	w.roomGen = w.roomLoader.Load(selection)
}

// onSearchSettled применяет результат поиска
// Вызывается координатором асинхронно; результат устаревшего поколения
// никогда не применяется, каким бы ни был порядок завершения запросов
func (w *Wizard) onSearchSettled(s optionsearch.Settled) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if s.Gen != w.searchGen {
		return
	}

	switch s.Outcome {
	case optionsearch.OutcomeNoSearch:
		w.searchStatus = SearchNone
		w.optionSet = nil
		w.ranked = optionrank.RankedOptions{Options: []*domain.Option{}, DefaultIndex: -1}

	case optionsearch.OutcomeFailed:
		// Не фатально: оператор повторит поиск, изменив любое из полей триггера
		w.searchStatus = SearchFailed
		w.optionSet = nil
		w.ranked = optionrank.RankedOptions{Options: []*domain.Option{}, DefaultIndex: -1}

	case optionsearch.OutcomeEmpty:
		w.searchStatus = SearchEmpty
		w.optionSet = s.OptionSet
		w.ranked = optionrank.RankedOptions{Options: []*domain.Option{}, DefaultIndex: -1}

	case optionsearch.OutcomeResult:
		// Ранжирование и выбор по умолчанию применяются атомарно
		// с обновлением состояния, одним шагом settle
		w.searchStatus = SearchReady
		w.optionSet = s.OptionSet
		w.ranked = optionrank.Rank(s.OptionSet, w.transferCap)
		w.selectedIndex = w.ranked.DefaultIndex
		if w.selectedIndex >= 0 {
			w.state.SelectedOption = w.ranked.Options[w.selectedIndex]
			w.state.AssignedRoomID = nil
			w.fireRoomLoadLocked()
		}
	}
}

// onRoomLoaded применяет загруженный список номеров
// Применяется только результат последней загрузки (last-selection-wins)
func (w *Wizard) onRoomLoaded(l roomassign.Loaded) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if l.Gen != w.roomGen {
		return
	}

	switch l.Status {
	case roomassign.StatusCleared:
		w.roomStatus = RoomIdle
		w.roomCandidates = nil
	case roomassign.StatusFailed:
		w.roomStatus = RoomFailed
		w.roomCandidates = nil
	case roomassign.StatusReady:
		w.roomStatus = RoomReady
		w.roomCandidates = l.Rooms
	}
}

func (w *Wizard) copyStateLocked() domain.WizardState {
	state := w.state
	state.PetIDs = append([]int64(nil), w.state.PetIDs...)
	return state
}

func (w *Wizard) touchLocked() {
	w.lastActive = time.Now()
}
