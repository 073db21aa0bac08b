package roominventory

import "github.com/pethotel/PHM-BookingWorkflow/internal/domain"

// roomModel wire-модель свободного номера
type roomModel struct {
	ID         int64   `json:"id"`
	RoomNumber string  `json:"roomNumber"`
	Floor      *int    `json:"floor,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// ErrorResponse модель ошибки от сервиса инвентаря
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (m *roomModel) toDomain() *domain.RoomCandidate {
	return &domain.RoomCandidate{
		ID:         m.ID,
		RoomNumber: m.RoomNumber,
		Floor:      m.Floor,
		Notes:      m.Notes,
	}
}
