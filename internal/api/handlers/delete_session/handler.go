package delete_session

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

// Handle DELETE /api/v1/wizard/sessions/{sessionId}
// Удаление сессии - отказ от черновика: состояние мастера не сохраняется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	if err := h.sessions.Delete(sessionID); err != nil {
		if errors.Is(err, wizardsessions.ErrSessionNotFound) {
			h.logger.Warn("DELETE /wizard/sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
			return
		}
		h.logger.Error("DELETE /wizard/sessions/{id} - Failed to delete session: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /wizard/sessions/{id} - Session deleted: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
