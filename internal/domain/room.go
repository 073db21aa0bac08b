package domain

// RoomCandidate конкретный номер, свободный на весь период сегмента
// Имеет смысл только для вариантов из одного сегмента
type RoomCandidate struct {
	ID         int64
	RoomNumber string
	Floor      *int
	Notes      *string
}
