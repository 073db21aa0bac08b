package create_session

import "github.com/pethotel/PHM-BookingWorkflow/internal/workflow/wizard"

type SessionService interface {
	Create() (string, *wizard.Wizard)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
