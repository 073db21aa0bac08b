package commit_booking

import (
	"time"

	commitBooking "github.com/pethotel/PHM-BookingWorkflow/internal/usecase/commit_booking"
)

// CommitBookingResponse HTTP response model
type CommitBookingResponse struct {
	BookingID int64  `json:"bookingId"`
	ClientID  int64  `json:"clientId"`
	Status    string `json:"status"`
	Composite bool   `json:"composite"`
	CreatedAt string `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *commitBooking.Response) *CommitBookingResponse {
	return &CommitBookingResponse{
		BookingID: resp.BookingID,
		ClientID:  resp.ClientID,
		Status:    resp.Status,
		Composite: resp.Composite,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
