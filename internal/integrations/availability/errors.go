package availability

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("availability client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе резолвера
	ErrInvalidResponse = errors.New("availability client: invalid response")

	// ErrInvalidRequest возвращается, когда резолвер отклонил параметры запроса
	ErrInvalidRequest = errors.New("availability client: invalid request parameters")
)
