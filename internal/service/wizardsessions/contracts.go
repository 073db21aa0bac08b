package wizardsessions

import (
	"github.com/pethotel/PHM-BookingWorkflow/internal/workflow/optionsearch"
	"github.com/pethotel/PHM-BookingWorkflow/internal/workflow/roomassign"
)

// OptionsResolver интерфейс резолвера доступности (передается в каждый мастер)
type OptionsResolver = optionsearch.OptionsResolver

// RoomInventoryClient интерфейс клиента инвентаря номеров
type RoomInventoryClient = roomassign.RoomInventoryClient

// SearchMetrics интерфейс счетчиков поиска (может быть nil)
type SearchMetrics = optionsearch.Metrics

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
