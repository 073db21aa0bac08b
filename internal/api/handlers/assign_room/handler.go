package assign_room

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
	msgNoOptionSelected   = "вариант размещения еще не выбран"
	msgRoomNotApplicable  = "назначение номера недоступно для составного бронирования"
	msgRoomNotCandidate   = "номер не входит в список свободных"
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

// Handle PUT /api/v1/wizard/sessions/{sessionId}/room
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req AssignRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /wizard/sessions/{id}/room - Invalid request body: session_id=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	wz, err := h.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, wizardsessions.ErrSessionNotFound) {
			h.logger.Warn("PUT /wizard/sessions/{id}/room - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
			return
		}
		h.logger.Error("PUT /wizard/sessions/{id}/room - Failed to get session: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	if err := wz.AssignRoom(req.RoomID); err != nil {
		switch {
		case errors.Is(err, wizard.ErrNoOptionSelected):
			h.logger.Warn("PUT /wizard/sessions/{id}/room - No option selected: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgNoOptionSelected)

		case errors.Is(err, wizard.ErrRoomNotApplicable):
			h.logger.Warn("PUT /wizard/sessions/{id}/room - Room not applicable: session_id=%s", sessionID)
			handlers.RespondUnprocessable(w, msgRoomNotApplicable)

		case errors.Is(err, wizard.ErrRoomNotCandidate):
			h.logger.Warn("PUT /wizard/sessions/{id}/room - Room not among candidates: session_id=%s", sessionID)
			handlers.RespondUnprocessable(w, msgRoomNotCandidate)

		default:
			h.logger.Error("PUT /wizard/sessions/{id}/room - Failed to assign room: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /wizard/sessions/{id}/room - Room assignment updated: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromView(sessionID, wz.View()))
}
