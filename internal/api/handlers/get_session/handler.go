package get_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pethotel/PHM-BookingWorkflow/internal/api/handlers"
	"github.com/pethotel/PHM-BookingWorkflow/internal/service/wizardsessions"
)

const msgSessionNotFound = "сессия мастера не найдена или истекла"

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

// Handle GET /api/v1/wizard/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	wz, err := h.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, wizardsessions.ErrSessionNotFound) {
			h.logger.Warn("GET /wizard/sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
			return
		}
		h.logger.Error("GET /wizard/sessions/{id} - Failed to get session: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromView(sessionID, wz.View()))
}
