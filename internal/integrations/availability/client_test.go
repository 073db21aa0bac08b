package availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pethotel/PHM-BookingWorkflow/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

const resolverResponse = `{
	"singleRoomOptions": [
		{
			"kind": "single",
			"segments": [
				{"checkInDate": "2026-09-01", "checkOutDate": "2026-09-05", "roomTypeId": 7,
				 "roomTypeName": "Стандарт", "squareMeters": 6.5, "maxCapacity": 2, "nights": 4, "price": 400}
			],
			"totalPrice": 400,
			"totalNights": 4,
			"priority": 1
		}
	],
	"sameTypeTransferOptions": [
		{
			"kind": "same_type_transfer",
			"segments": [
				{"checkInDate": "2026-09-01", "checkOutDate": "2026-09-03", "roomTypeId": 7, "nights": 2, "price": 150},
				{"checkInDate": "2026-09-03", "checkOutDate": "2026-09-05", "roomTypeId": 7, "nights": 2, "price": 150}
			],
			"totalPrice": 300,
			"totalNights": 4,
			"priority": 2,
			"warning": "потребуется переезд"
		}
	],
	"mixedTypeTransferOptions": [],
	"hasPerfectOptions": true,
	"query": {"checkInDate": "2026-09-01", "checkOutDate": "2026-09-05", "numberOfPets": 2, "clientId": 42}
}`

func findRequest() FindOptionsRequest {
	return FindOptionsRequest{
		CheckInDate:  time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC),
		NumberOfPets: 2,
		ClientID:     42,
	}
}

func TestFindOptions_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/availability/options", r.URL.Path)
		assert.Equal(t, "2026-09-01", r.URL.Query().Get("checkInDate"))
		assert.Equal(t, "2026-09-05", r.URL.Query().Get("checkOutDate"))
		assert.Equal(t, "2", r.URL.Query().Get("numberOfPets"))
		assert.Equal(t, "42", r.URL.Query().Get("clientId"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(resolverResponse))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, noopLogger{})

	set, err := client.FindOptions(context.Background(), findRequest())
	require.NoError(t, err)

	assert.Equal(t, 2, set.TotalOptions())
	assert.True(t, set.HasPerfectOptions)
	assert.Equal(t, 2, set.Query.PetCount)
	assert.Equal(t, int64(42), set.Query.ClientID)

	require.Len(t, set.SingleRoom, 1)
	single := set.SingleRoom[0]
	assert.Equal(t, domain.KindSingle, single.Kind)
	require.Len(t, single.Segments, 1)
	assert.Equal(t, int64(7), single.Segments[0].RoomTypeID)
	assert.Equal(t, "Стандарт", single.Segments[0].RoomTypeName)

	require.Len(t, set.SameTypeTransfer, 1)
	transfer := set.SameTypeTransfer[0]
	assert.Equal(t, 1, transfer.TransferCount())
	require.NotNil(t, transfer.Warning)
}

func TestFindOptions_MalformedOptionRejected(t *testing.T) {
	// kind=single с двумя сегментами нарушает инвариант варианта
	malformed := `{
		"singleRoomOptions": [
			{
				"kind": "single",
				"segments": [
					{"checkInDate": "2026-09-01", "checkOutDate": "2026-09-03", "roomTypeId": 7},
					{"checkInDate": "2026-09-03", "checkOutDate": "2026-09-05", "roomTypeId": 7}
				]
			}
		],
		"query": {"checkInDate": "2026-09-01", "checkOutDate": "2026-09-05", "numberOfPets": 2, "clientId": 42}
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(malformed))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, noopLogger{})

	_, err := client.FindOptions(context.Background(), findRequest())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestFindOptions_BadRequestMapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, noopLogger{})

	_, err := client.FindOptions(context.Background(), findRequest())
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestFindOptions_ServerErrorMapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, noopLogger{})

	_, err := client.FindOptions(context.Background(), findRequest())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestFindOptions_CancellationPassedThrough(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, noopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.FindOptions(ctx, findRequest())
	// Отмена возвращается как ошибка контекста, не как сетевая
	assert.ErrorIs(t, err, context.Canceled)
}
