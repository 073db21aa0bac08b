package create_session

import (
	"net/http"

	"github.com/pethotel/PHM-BookingWorkflow/internal/api/handlers"
)

type Handler struct {
	sessions SessionService
	logger   Logger
}

func NewHandler(sessions SessionService, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
	}
}

// Handle POST /api/v1/wizard/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, wz := h.sessions.Create()

	h.logger.Info("POST /wizard/sessions - Session created: session_id=%s", id)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromView(id, wz.View()))
}
