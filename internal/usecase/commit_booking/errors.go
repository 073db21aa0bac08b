package commit_booking

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия мастера не найдена или истекла
	ErrSessionNotFound = errors.New("commit_booking: wizard session not found")

	// ErrValidation возвращается, когда не выполнено предусловие готовности
	// (нет дат, клиента, питомцев или выбранного варианта) - оператор должен
	// завершить предыдущий шаг
	ErrValidation = errors.New("commit_booking: wizard state is not ready")

	// ErrClientNotFound возвращается, когда клиент не найден в справочнике
	ErrClientNotFound = errors.New("commit_booking: client not found")

	// ErrPetNotOwned возвращается, когда питомец не принадлежит выбранному клиенту
	ErrPetNotOwned = errors.New("commit_booking: pet does not belong to the client")

	// ErrRoomConflict возвращается, когда номер или тип номера успели занять
	// между поиском и коммитом. Состояние мастера не меняется - оператор
	// выбирает другой вариант или номер
	ErrRoomConflict = errors.New("commit_booking: room is no longer available")

	// ErrCommitFailed возвращается, когда хранилище отклонило бронирование
	// по иной причине. Состояние мастера при этом не меняется,
	// оператор может повторить коммит
	ErrCommitFailed = errors.New("commit_booking: booking commit failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("commit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("commit_booking: internal error")
)
