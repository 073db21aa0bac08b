package handlers

import (
	"github.com/pethotel/PHM-BookingWorkflow/internal/domain"
	"github.com/pethotel/PHM-BookingWorkflow/internal/workflow/wizard"
)

// SessionResponse HTTP-модель снимка сессии мастера
// Общая для всех хендлеров сессий: каждая мутация возвращает свежий снимок,
// чтобы host UI не собирал состояние из нескольких ответов
type SessionResponse struct {
	SessionID         string           `json:"sessionId"`
	Step              int              `json:"step"`
	StepName          string           `json:"stepName"`
	Ready             bool             `json:"ready"`
	Stay              StayResponse     `json:"stay"`
	SearchStatus      string           `json:"searchStatus"`
	HasPerfectOptions bool             `json:"hasPerfectOptions"`
	Options           []OptionResponse `json:"options"`
	SelectedIndex     int              `json:"selectedIndex"`
	RoomStatus        string           `json:"roomStatus"`
	RoomCandidates    []RoomResponse   `json:"roomCandidates"`
}

// StayResponse введенные оператором данные проживания
type StayResponse struct {
	CheckInDate     *string `json:"checkInDate,omitempty"`
	CheckOutDate    *string `json:"checkOutDate,omitempty"`
	ClientID        *int64  `json:"clientId,omitempty"`
	PetIDs          []int64 `json:"petIds,omitempty"`
	AssignedRoomID  *int64  `json:"assignedRoomId,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}

// OptionResponse один вариант размещения в показанном списке
type OptionResponse struct {
	Kind           string                   `json:"kind"`
	Segments       []SegmentResponse        `json:"segments"`
	TransferCount  int                      `json:"transferCount"`
	TotalPrice     float64                  `json:"totalPrice"`
	TotalNights    int                      `json:"totalNights"`
	Warning        *string                  `json:"warning,omitempty"`
	PriceBreakdown []PriceBreakdownResponse `json:"priceBreakdown,omitempty"`
}

// SegmentResponse один сегмент варианта размещения
type SegmentResponse struct {
	CheckInDate  string  `json:"checkInDate"`
	CheckOutDate string  `json:"checkOutDate"`
	RoomTypeID   int64   `json:"roomTypeId"`
	RoomTypeName string  `json:"roomTypeName"`
	SquareMeters float64 `json:"squareMeters"`
	MaxCapacity  int     `json:"maxCapacity"`
	Nights       int     `json:"nights"`
	Price        float64 `json:"price"`
}

// PriceBreakdownResponse строка детализации цены
type PriceBreakdownResponse struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// RoomResponse один свободный номер-кандидат
type RoomResponse struct {
	ID         int64   `json:"id"`
	RoomNumber string  `json:"roomNumber"`
	Floor      *int    `json:"floor,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// FromView конвертирует снимок мастера в HTTP-модель
func FromView(sessionID string, view wizard.View) *SessionResponse {
	stay := StayResponse{
		ClientID:        view.State.ClientID,
		PetIDs:          view.State.PetIDs,
		AssignedRoomID:  view.State.AssignedRoomID,
		SpecialRequests: view.State.SpecialRequests,
	}
	if view.State.Dates != nil {
		checkIn := view.State.Dates.CheckIn.Format(domain.DateFormat)
		checkOut := view.State.Dates.CheckOut.Format(domain.DateFormat)
		stay.CheckInDate = &checkIn
		stay.CheckOutDate = &checkOut
	}

	options := make([]OptionResponse, 0, len(view.Options))
	for _, option := range view.Options {
		options = append(options, fromOption(option))
	}

	rooms := make([]RoomResponse, 0, len(view.RoomCandidates))
	for _, room := range view.RoomCandidates {
		rooms = append(rooms, RoomResponse{
			ID:         room.ID,
			RoomNumber: room.RoomNumber,
			Floor:      room.Floor,
			Notes:      room.Notes,
		})
	}

	return &SessionResponse{
		SessionID:         sessionID,
		Step:              int(view.Step),
		StepName:          view.Step.String(),
		Ready:             view.Ready,
		Stay:              stay,
		SearchStatus:      string(view.SearchStatus),
		HasPerfectOptions: view.HasPerfectOptions,
		Options:           options,
		SelectedIndex:     view.SelectedIndex,
		RoomStatus:        string(view.RoomStatus),
		RoomCandidates:    rooms,
	}
}

func fromOption(option *domain.Option) OptionResponse {
	segments := make([]SegmentResponse, 0, len(option.Segments))
	for _, segment := range option.Segments {
		segments = append(segments, SegmentResponse{
			CheckInDate:  segment.CheckIn.Format(domain.DateFormat),
			CheckOutDate: segment.CheckOut.Format(domain.DateFormat),
			RoomTypeID:   segment.RoomTypeID,
			RoomTypeName: segment.RoomTypeName,
			SquareMeters: segment.SquareMeters,
			MaxCapacity:  segment.MaxCapacity,
			Nights:       segment.Nights,
			Price:        segment.Price,
		})
	}

	breakdown := make([]PriceBreakdownResponse, 0, len(option.PriceBreakdown))
	for _, item := range option.PriceBreakdown {
		breakdown = append(breakdown, PriceBreakdownResponse{Label: item.Label, Amount: item.Amount})
	}

	return OptionResponse{
		Kind:           string(option.Kind),
		Segments:       segments,
		TransferCount:  option.TransferCount(),
		TotalPrice:     option.TotalPrice,
		TotalNights:    option.TotalNights,
		Warning:        option.Warning,
		PriceBreakdown: breakdown,
	}
}
