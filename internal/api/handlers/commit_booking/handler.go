package commit_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pethotel/PHM-BookingWorkflow/internal/api/handlers"
	"github.com/pethotel/PHM-BookingWorkflow/internal/api/middleware"
	commitBooking "github.com/pethotel/PHM-BookingWorkflow/internal/usecase/commit_booking"
)

const (
	msgSessionNotFound = "сессия мастера не найдена или истекла"
	msgNotReady        = "бронирование не готово к подтверждению, завершите предыдущие шаги"
	msgClientNotFound  = "клиент не найден"
	msgPetNotOwned     = "питомец не принадлежит выбранному клиенту"
	msgRoomConflict    = "номер уже занят, выберите другой вариант или номер"
	msgCommitFailed    = "не удалось сохранить бронирование, попробуйте еще раз"
)

type Handler struct {
	useCase CommitBookingUseCase
	logger  Logger
}

func NewHandler(useCase CommitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/wizard/sessions/{sessionId}/commit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	req := &commitBooking.Request{
		SessionID:  sessionID,
		OperatorID: middleware.OperatorID(r.Context()),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commitBooking.ErrSessionNotFound):
			h.logger.Warn("POST /wizard/sessions/{id}/commit - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, commitBooking.ErrValidation):
			h.logger.Warn("POST /wizard/sessions/{id}/commit - Wizard not ready: session_id=%s, error=%v", sessionID, err)
			handlers.RespondUnprocessable(w, msgNotReady)

		case errors.Is(err, commitBooking.ErrClientNotFound):
			h.logger.Warn("POST /wizard/sessions/{id}/commit - Client not found: session_id=%s", sessionID)
			handlers.RespondUnprocessable(w, msgClientNotFound)

		case errors.Is(err, commitBooking.ErrPetNotOwned):
			h.logger.Warn("POST /wizard/sessions/{id}/commit - Pet not owned by client: session_id=%s", sessionID)
			handlers.RespondUnprocessable(w, msgPetNotOwned)

		case errors.Is(err, commitBooking.ErrRoomConflict):
			h.logger.Warn("POST /wizard/sessions/{id}/commit - Room conflict: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgRoomConflict)

		case errors.Is(err, commitBooking.ErrCommitFailed):
			h.logger.Error("POST /wizard/sessions/{id}/commit - Commit failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgCommitFailed)

		default:
			h.logger.Error("POST /wizard/sessions/{id}/commit - Failed to commit booking: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /wizard/sessions/{id}/commit - Booking committed: session_id=%s, booking_id=%d",
		sessionID, result.BookingID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
