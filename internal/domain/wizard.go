package domain

// Step represents the currently unlocked step of the booking wizard
// Шаг не хранится - он выводится из заполненности состояния (CurrentStep)
type Step int

const (
	StepDates  Step = 1 // выбор дат проживания
	StepClient Step = 2 // выбор клиента
	StepPets   Step = 3 // выбор питомцев
	StepOption Step = 4 // выбор варианта размещения
	StepRoom   Step = 5 // выбор номера (необязательный шаг)
	StepReady  Step = 6 // все обязательные данные собраны
)

// String возвращает человекочитаемое имя шага
func (s Step) String() string {
	switch s {
	case StepDates:
		return "dates"
	case StepClient:
		return "client"
	case StepPets:
		return "pets"
	case StepOption:
		return "option"
	case StepRoom:
		return "room"
	case StepReady:
		return "ready"
	default:
		return "unknown"
	}
}

// WizardState состояние мастера составления бронирования
// Владеет им ровно один workflow-экземпляр; конкурентный доступ
// сериализуется владельцем (wizard.Wizard)
type WizardState struct {
	Dates           *DateRange
	ClientID        *int64
	PetIDs          []int64
	SelectedOption  *Option
	AssignedRoomID  *int64
	SpecialRequests *string
}

// CurrentStep выводит текущий шаг как чистую функцию состояния
// Выбор номера необязателен, поэтому шаг 5 "доступен", а не "блокирует":
// при выбранном одно-сегментном варианте без номера мастер стоит на шаге 5,
// но IsReady() уже истинно
func (s *WizardState) CurrentStep() Step {
	switch {
	case s.Dates == nil:
		return StepDates
	case s.ClientID == nil:
		return StepClient
	case len(s.PetIDs) == 0:
		return StepPets
	case s.SelectedOption == nil:
		return StepOption
	case s.SelectedOption.IsSingle() && s.AssignedRoomID == nil:
		return StepRoom
	default:
		return StepReady
	}
}

// IsReady возвращает true, когда выполнены все обязательные предусловия коммита:
// даты, клиент, хотя бы один питомец и выбранный вариант
// Номер не обязателен
func (s *WizardState) IsReady() bool {
	return s.Dates != nil &&
		s.ClientID != nil &&
		len(s.PetIDs) > 0 &&
		s.SelectedOption != nil
}
