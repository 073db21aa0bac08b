package roominventory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pethotel/PHM-BookingWorkflow/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса инвентаря номеров
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента инвентаря
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// FindAvailableRooms возвращает свободные номера указанного типа на период
// Пустой список - валидный результат ("нет номеров на эти даты"), не ошибка
func (c *Client) FindAvailableRooms(ctx context.Context, roomTypeID int64, checkIn, checkOut time.Time) ([]*domain.RoomCandidate, error) {
	q := url.Values{}
	q.Set("roomTypeId", strconv.FormatInt(roomTypeID, 10))
	q.Set("checkInDate", checkIn.Format(domain.DateFormat))
	q.Set("checkOutDate", checkOut.Format(domain.DateFormat))

	reqURL := fmt.Sprintf("%s/internal/rooms/available?%s", c.baseURL, q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrRoomTypeNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var wire []roomModel
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	rooms := make([]*domain.RoomCandidate, 0, len(wire))
	for i := range wire {
		rooms = append(rooms, wire[i].toDomain())
	}

	c.log.Info("FindAvailableRooms: room_type=%d, period=%s..%s, found %d rooms",
		roomTypeID, checkIn.Format(domain.DateFormat), checkOut.Format(domain.DateFormat), len(rooms))

	return rooms, nil
}
