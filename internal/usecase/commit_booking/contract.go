package commit_booking

import (
	"context"

	"github.com/pethotel/PHM-BookingWorkflow/internal/domain"
	"github.com/pethotel/PHM-BookingWorkflow/internal/integrations/clientdirectory"
	"github.com/pethotel/PHM-BookingWorkflow/internal/workflow/wizard"
)

// SessionRegistry интерфейс реестра сессий мастера
type SessionRegistry interface {
	Get(id string) (*wizard.Wizard, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, payload domain.SubmissionPayload) (*domain.Reservation, error)
}

// ClientDirectoryClient интерфейс клиента справочника клиентов
type ClientDirectoryClient interface {
	GetClient(ctx context.Context, clientID int64) (*clientdirectory.Client, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
