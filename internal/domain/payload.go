package domain

import "time"

// SubmissionPayload нормализованная форма бронирования для сохранения
// Запечатанный sum type с ровно двумя вариантами: простое бронирование
// (один номер на весь период) и составное (упорядоченные сегменты с переездами)
// Две формы взаимоисключающие и никогда не смешиваются
type SubmissionPayload interface {
	isSubmissionPayload()
	// PayloadClientID возвращает клиента, общего для обеих форм
	PayloadClientID() int64
}

// SimpleBookingPayload простое бронирование: один тип номера на весь период
// AssignedRoomID == nil означает "назначить номер позже"
type SimpleBookingPayload struct {
	ClientID        int64
	PetIDs          []int64
	RoomTypeID      int64
	CheckInDate     time.Time
	CheckOutDate    time.Time
	AssignedRoomID  *int64
	SpecialRequests *string
}

func (SimpleBookingPayload) isSubmissionPayload() {}

// PayloadClientID возвращает ID клиента
func (p SimpleBookingPayload) PayloadClientID() int64 { return p.ClientID }

// BookingSegment один сегмент составного бронирования
type BookingSegment struct {
	RoomTypeID   int64
	CheckInDate  time.Time
	CheckOutDate time.Time
}

// CompositeBookingPayload составное бронирование: упорядоченный список сегментов
// Номер на уровне всего бронирования не назначается - для составных
// бронирований назначение номера не определено
type CompositeBookingPayload struct {
	ClientID        int64
	PetIDs          []int64
	Segments        []BookingSegment
	SpecialRequests *string
}

func (CompositeBookingPayload) isSubmissionPayload() {}

// PayloadClientID возвращает ID клиента
func (p CompositeBookingPayload) PayloadClientID() int64 { return p.ClientID }

// Reservation сохраненное бронирование
type Reservation struct {
	ID        int64
	ClientID  int64
	Status    ReservationStatus
	CreatedAt time.Time
}

// ReservationStatus статус сохраненного бронирования
type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
)
