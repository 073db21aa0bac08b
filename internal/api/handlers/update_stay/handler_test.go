package update_stay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pethotel/PHM-BookingWorkflow/internal/domain"
	"github.com/pethotel/PHM-BookingWorkflow/internal/integrations/availability"
	"github.com/pethotel/PHM-BookingWorkflow/internal/service/wizardsessions"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type stubResolver struct{}

func (stubResolver) FindOptions(ctx context.Context, req availability.FindOptionsRequest) (*domain.OptionSet, error) {
	return &domain.OptionSet{}, nil
}

type stubInventory struct{}

func (stubInventory) FindAvailableRooms(ctx context.Context, roomTypeID int64, checkIn, checkOut time.Time) ([]*domain.RoomCandidate, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) (*mux.Router, string) {
	t.Helper()
	// Большое окно debounce: снимок после мутации стабильно показывает "searching"
	svc := wizardsessions.NewService(stubResolver{}, stubInventory{}, time.Minute, 2, time.Hour, noopLogger{}, nil)
	id, _ := svc.Create()

	handler := NewHandler(svc, noopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/wizard/sessions/{sessionId}/stay", handler.Handle).Methods(http.MethodPatch)
	return r, id
}

func doPatch(t *testing.T, r *mux.Router, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/wizard/sessions/"+sessionID+"/stay", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestHandle_SetFieldsInOneRequest(t *testing.T) {
	r, id := newTestRouter(t)

	rec := doPatch(t, r, id, `{
		"dates": {"checkInDate": "2026-09-01", "checkOutDate": "2026-09-05"},
		"clientId": 42,
		"petIds": [1, 2],
		"specialRequests": "окно во двор"
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	payload := decodeSession(t, rec)
	stay := payload["stay"].(map[string]interface{})
	assert.Equal(t, "2026-09-01", stay["checkInDate"])
	assert.Equal(t, "2026-09-05", stay["checkOutDate"])
	assert.Equal(t, float64(42), stay["clientId"])
	assert.Equal(t, "окно во двор", stay["specialRequests"])
	// Все поля триггера заполнены одним запросом - поиск запущен
	assert.Equal(t, "searching", payload["searchStatus"])
}

func TestHandle_OmittedFieldIsUntouched(t *testing.T) {
	r, id := newTestRouter(t)

	rec := doPatch(t, r, id, `{
		"dates": {"checkInDate": "2026-09-01", "checkOutDate": "2026-09-05"},
		"clientId": 42
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// petIds отсутствует в запросе - клиент не должен быть затронут
	rec = doPatch(t, r, id, `{"petIds": [1]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	stay := decodeSession(t, rec)["stay"].(map[string]interface{})
	assert.Equal(t, float64(42), stay["clientId"])
	assert.Equal(t, []interface{}{float64(1)}, stay["petIds"])
}

func TestHandle_NullClearsFieldAndCascades(t *testing.T) {
	r, id := newTestRouter(t)

	rec := doPatch(t, r, id, `{
		"dates": {"checkInDate": "2026-09-01", "checkOutDate": "2026-09-05"},
		"clientId": 42,
		"petIds": [1, 2]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Явный null очищает даты; каскад сбрасывает клиента и питомцев
	rec = doPatch(t, r, id, `{"dates": null}`)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeSession(t, rec)
	stay := payload["stay"].(map[string]interface{})
	assert.NotContains(t, stay, "checkInDate")
	assert.NotContains(t, stay, "clientId")
	assert.NotContains(t, stay, "petIds")
	assert.Equal(t, "none", payload["searchStatus"])
	assert.Equal(t, "dates", payload["stepName"])
}

func TestHandle_InvalidDatesRejected(t *testing.T) {
	r, id := newTestRouter(t)

	rec := doPatch(t, r, id, `{"dates": {"checkInDate": "2026-09-05", "checkOutDate": "2026-09-01"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doPatch(t, r, id, `{"dates": {"checkInDate": "не дата", "checkOutDate": "2026-09-01"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_UnknownSessionReturns404(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doPatch(t, r, "missing", `{"clientId": 42}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_UnknownFieldRejected(t *testing.T) {
	r, id := newTestRouter(t)

	rec := doPatch(t, r, id, `{"clientid": 42}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
