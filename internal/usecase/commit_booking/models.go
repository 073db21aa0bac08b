package commit_booking

import "time"

// Request модель запроса на коммит бронирования
type Request struct {
	SessionID  string // ID сессии мастера
	OperatorID int64  // ID оператора (для логирования, не влияет на результат)
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID int64     // ID созданного бронирования
	ClientID  int64     // ID клиента
	Status    string    // Статус бронирования
	Composite bool      // true для составного бронирования (с переездами)
	CreatedAt time.Time // Время создания
}
