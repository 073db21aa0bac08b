package availability

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

// Client клиент резолвера доступности
// Резолвер считает варианты размещения (включая многосегментные планы с
// переездами) по сырым данным номеров и бронирований; этот сервис потребляет
// только его контракт
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента резолвера доступности
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// FindOptions запрашивает варианты размещения на период
// Запрос идемпотентен и безопасно отменяется через ctx - отмена вернет
// ошибку ctx, которую координатор поиска молча поглощает
func (c *Client) FindOptions(ctx context.Context, req FindOptionsRequest) (*domain.OptionSet, error) {
	q := url.Values{}
	q.Set("checkInDate", req.CheckInDate.Format(domain.DateFormat))
	q.Set("checkOutDate", req.CheckOutDate.Format(domain.DateFormat))
	q.Set("numberOfPets", strconv.Itoa(req.NumberOfPets))
	q.Set("clientId", strconv.FormatInt(req.ClientID, 10))

	reqURL := fmt.Sprintf("%s/internal/availability/options?%s", c.baseURL, q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Отмена контекста пробрасывается как есть, чтобы координатор
		// мог отличить supersession от реальной ошибки сети
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: resolver rejected query", ErrInvalidRequest)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var wire optionSetResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	set, err := wire.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to convert response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("FindOptions: resolver returned %d options (single=%d, same_type=%d, mixed=%d)",
		set.TotalOptions(), len(set.SingleRoom), len(set.SameTypeTransfer), len(set.MixedTypeTransfer))

	return set, nil
}
