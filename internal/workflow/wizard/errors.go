package wizard

import "errors"

var (
	// ErrInvalidDates возвращается, когда checkIn не раньше checkOut
	ErrInvalidDates = errors.New("wizard: invalid date range")

	// ErrStayTooLong возвращается, когда период превышает максимум ночей
	ErrStayTooLong = errors.New("wizard: stay is too long")

	// ErrTooManyPets возвращается при превышении лимита питомцев на проживание
	ErrTooManyPets = errors.New("wizard: too many pets for one stay")

	// ErrSpecialRequestsTooLong возвращается при превышении длины пожеланий
	ErrSpecialRequestsTooLong = errors.New("wizard: special requests text is too long")

	// ErrSearchNotReady возвращается при попытке выбрать вариант до завершения поиска
	ErrSearchNotReady = errors.New("wizard: option search has not settled yet")

	// ErrOptionIndexOutOfRange возвращается при выборе варианта вне показанного списка
	ErrOptionIndexOutOfRange = errors.New("wizard: option index is out of range")

	// ErrNoOptionSelected возвращается при попытке назначить номер без выбранного варианта
	ErrNoOptionSelected = errors.New("wizard: no option selected")

	// ErrRoomNotApplicable возвращается при назначении номера составному варианту
	ErrRoomNotApplicable = errors.New("wizard: room assignment is undefined for composite options")

	// ErrRoomNotCandidate возвращается, когда выбранный номер не входит в список свободных
	ErrRoomNotCandidate = errors.New("wizard: room is not among available candidates")
)
