package roomassign

import (
	"context"
	"time"

	"github.com/pethotel/PHM-BookingWorkflow/internal/domain"
)

// RoomInventoryClient интерфейс клиента инвентаря номеров
type RoomInventoryClient interface {
	FindAvailableRooms(ctx context.Context, roomTypeID int64, checkIn, checkOut time.Time) ([]*domain.RoomCandidate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
