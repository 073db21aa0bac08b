package select_option

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pethotel/PHM-BookingWorkflow/internal/api/handlers"
	"github.com/pethotel/PHM-BookingWorkflow/internal/service/wizardsessions"
	"github.com/pethotel/PHM-BookingWorkflow/internal/workflow/wizard"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSessionNotFound    = "сессия мастера не найдена или истекла"
	msgSearchNotReady     = "поиск вариантов еще не завершен"
	msgIndexOutOfRange    = "индекс варианта вне показанного списка"
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

// Handle PUT /api/v1/wizard/sessions/{sessionId}/option
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req SelectOptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /wizard/sessions/{id}/option - Invalid request body: session_id=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	wz, err := h.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, wizardsessions.ErrSessionNotFound) {
			h.logger.Warn("PUT /wizard/sessions/{id}/option - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
			return
		}
		h.logger.Error("PUT /wizard/sessions/{id}/option - Failed to get session: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	if err := wz.SelectOption(req.OptionIndex); err != nil {
		switch {
		case errors.Is(err, wizard.ErrSearchNotReady):
			h.logger.Warn("PUT /wizard/sessions/{id}/option - Search not ready: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSearchNotReady)

		case errors.Is(err, wizard.ErrOptionIndexOutOfRange):
			h.logger.Warn("PUT /wizard/sessions/{id}/option - Index out of range: session_id=%s, index=%d",
				sessionID, req.OptionIndex)
			handlers.RespondUnprocessable(w, msgIndexOutOfRange)

		default:
			h.logger.Error("PUT /wizard/sessions/{id}/option - Failed to select option: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /wizard/sessions/{id}/option - Option selected: session_id=%s, index=%d", sessionID, req.OptionIndex)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromView(sessionID, wz.View()))
}
