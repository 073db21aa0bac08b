package domain

import "time"

// Date format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Workflow defaults
const (
	// DefaultDebounceWindow окно тишины перед отправкой поиска вариантов
	// Новый триггер внутри окна отменяет запланированный запрос
	DefaultDebounceWindow = 400 * time.Millisecond

	// DefaultTransferDisplayCap максимум transfer-вариантов в выдаче
	// Ограничение касается только отображения, не выбора резолвером
	DefaultTransferDisplayCap = 2
)

// Business validation constants
const (
	MaxSpecialRequestsLength = 500
	MaxPetsPerStay           = 10
	MaxStayNights            = 365
)
