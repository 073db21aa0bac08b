package roominventory

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("roominventory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса инвентаря
	ErrInvalidResponse = errors.New("roominventory client: invalid response")

	// ErrRoomTypeNotFound возвращается, когда тип номера не найден
	ErrRoomTypeNotFound = errors.New("roominventory client: room type not found")
)
