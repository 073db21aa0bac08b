package wizard

import "github.com/pethotel/PHM-BookingWorkflow/internal/domain"

// SearchStatus видимое состояние поиска вариантов
type SearchStatus string

const (
	SearchNone      SearchStatus = "none"      // триггер неполный, поиск не выполнялся
	SearchSearching SearchStatus = "searching" // запрос запланирован или в полете
	SearchReady     SearchStatus = "ready"     // варианты получены
	SearchEmpty     SearchStatus = "empty"     // резолвер отработал, вариантов нет
	SearchFailed    SearchStatus = "failed"    // ошибка резолвера (не фатальная)
)

// RoomLoadStatus видимое состояние загрузки номеров
type RoomLoadStatus string

const (
	RoomIdle    RoomLoadStatus = "idle"    // номер не применим или вариант не выбран
	RoomLoading RoomLoadStatus = "loading" // загрузка в полете
	RoomReady   RoomLoadStatus = "ready"   // список получен
	RoomEmpty   RoomLoadStatus = "empty"   // нет свободных номеров на эти даты
	RoomFailed  RoomLoadStatus = "failed"  // ошибка загрузки (не фатальная)
)

// View read-модель мастера для host UI
// Снимок состояния: безопасно сериализуется хендлером без обращения к мастеру
type View struct {
	State             domain.WizardState
	Step              domain.Step
	Ready             bool
	SearchStatus      SearchStatus
	HasPerfectOptions bool
	Options           []*domain.Option
	SelectedIndex     int
	RoomStatus        RoomLoadStatus
	RoomCandidates    []*domain.RoomCandidate
}
