package optionsearch

import (
	"context"

	"github.com/pethotel/PHM-BookingWorkflow/internal/domain"
	"github.com/pethotel/PHM-BookingWorkflow/internal/integrations/availability"
)

// OptionsResolver интерфейс резолвера доступности
type OptionsResolver interface {
	FindOptions(ctx context.Context, req availability.FindOptionsRequest) (*domain.OptionSet, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс счетчиков поиска (может быть nil, если метрики выключены)
type Metrics interface {
	IncSearchIssued()
	IncSearchSuperseded()
	IncSearchSettled(outcome string)
}
