package update_stay

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pethotel/PHM-BookingWorkflow/internal/api/handlers"
	"github.com/pethotel/PHM-BookingWorkflow/internal/service/wizardsessions"
	"github.com/pethotel/PHM-BookingWorkflow/internal/workflow/wizard"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgSessionNotFound        = "сессия мастера не найдена или истекла"
	msgInvalidDates           = "некорректный период проживания, ожидается YYYY-MM-DD и заезд раньше выезда"
	msgStayTooLong            = "период проживания слишком длинный"
	msgTooManyPets            = "слишком много питомцев для одного проживания"
	msgSpecialRequestsTooLong = "текст пожеланий слишком длинный"
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

// Handle PATCH /api/v1/wizard/sessions/{sessionId}/stay
//
// Поля применяются в порядке цепочки шагов (даты → клиент → питомцы),
// чтобы каскадная инвалидация не стерла значения из этого же запроса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req UpdateStayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /wizard/sessions/{id}/stay - Invalid request body: session_id=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	wz, err := h.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, wizardsessions.ErrSessionNotFound) {
			h.logger.Warn("PATCH /wizard/sessions/{id}/stay - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
			return
		}
		h.logger.Error("PATCH /wizard/sessions/{id}/stay - Failed to get session: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	if dates, present, err := req.ParseDates(); err != nil {
		h.logger.Warn("PATCH /wizard/sessions/{id}/stay - Failed to parse dates: session_id=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	} else if present {
		if err := wz.SetDates(dates); err != nil {
			h.respondWizardError(w, sessionID, err)
			return
		}
	}

	if clientID, present, err := req.ParseClientID(); err != nil {
		h.logger.Warn("PATCH /wizard/sessions/{id}/stay - Failed to parse clientId: session_id=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	} else if present {
		if err := wz.SetClient(clientID); err != nil {
			h.respondWizardError(w, sessionID, err)
			return
		}
	}

	if petIDs, present, err := req.ParsePetIDs(); err != nil {
		h.logger.Warn("PATCH /wizard/sessions/{id}/stay - Failed to parse petIds: session_id=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	} else if present {
		if err := wz.SetPets(petIDs); err != nil {
			h.respondWizardError(w, sessionID, err)
			return
		}
	}

	if text, present, err := req.ParseSpecialRequests(); err != nil {
		h.logger.Warn("PATCH /wizard/sessions/{id}/stay - Failed to parse specialRequests: session_id=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	} else if present {
		if err := wz.SetSpecialRequests(text); err != nil {
			h.respondWizardError(w, sessionID, err)
			return
		}
	}

	h.logger.Info("PATCH /wizard/sessions/{id}/stay - Stay updated: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromView(sessionID, wz.View()))
}

func (h *Handler) respondWizardError(w http.ResponseWriter, sessionID string, err error) {
	switch {
	case errors.Is(err, wizard.ErrInvalidDates):
		h.logger.Warn("PATCH /wizard/sessions/{id}/stay - Invalid dates: session_id=%s", sessionID)
		handlers.RespondUnprocessable(w, msgInvalidDates)

	case errors.Is(err, wizard.ErrStayTooLong):
		h.logger.Warn("PATCH /wizard/sessions/{id}/stay - Stay too long: session_id=%s", sessionID)
		handlers.RespondUnprocessable(w, msgStayTooLong)

	case errors.Is(err, wizard.ErrTooManyPets):
		h.logger.Warn("PATCH /wizard/sessions/{id}/stay - Too many pets: session_id=%s", sessionID)
		handlers.RespondUnprocessable(w, msgTooManyPets)

	case errors.Is(err, wizard.ErrSpecialRequestsTooLong):
		h.logger.Warn("PATCH /wizard/sessions/{id}/stay - Special requests too long: session_id=%s", sessionID)
		handlers.RespondUnprocessable(w, msgSpecialRequestsTooLong)

	default:
		h.logger.Error("PATCH /wizard/sessions/{id}/stay - Failed to update stay: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
	}
}
