package availability

import (
	"time"

	"github.com/pethotel/PHM-BookingWorkflow/internal/domain"
)

// FindOptionsRequest параметры поиска вариантов размещения
type FindOptionsRequest struct {
	CheckInDate  time.Time
	CheckOutDate time.Time
	NumberOfPets int
	ClientID     int64
}

// optionSetResponse wire-модель ответа резолвера доступности
type optionSetResponse struct {
	SingleRoomOptions        []optionModel `json:"singleRoomOptions"`
	SameTypeTransferOptions  []optionModel `json:"sameTypeTransferOptions"`
	MixedTypeTransferOptions []optionModel `json:"mixedTypeTransferOptions"`
	HasPerfectOptions        bool          `json:"hasPerfectOptions"`
	Query                    queryEcho     `json:"query"`
}

type queryEcho struct {
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	NumberOfPets int    `json:"numberOfPets"`
	ClientID     int64  `json:"clientId"`
}

type optionModel struct {
	Kind           string           `json:"kind"`
	Segments       []segmentModel   `json:"segments"`
	TotalPrice     float64          `json:"totalPrice"`
	TotalNights    int              `json:"totalNights"`
	Priority       int              `json:"priority"`
	Warning        *string          `json:"warning,omitempty"`
	PriceBreakdown []breakdownModel `json:"priceBreakdown,omitempty"`
}

type segmentModel struct {
	CheckInDate  string  `json:"checkInDate"`
	CheckOutDate string  `json:"checkOutDate"`
	RoomTypeID   int64   `json:"roomTypeId"`
	RoomTypeName string  `json:"roomTypeName"`
	SquareMeters float64 `json:"squareMeters"`
	MaxCapacity  int     `json:"maxCapacity"`
	Nights       int     `json:"nights"`
	Price        float64 `json:"price"`
}

type breakdownModel struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// ErrorResponse модель ошибки от резолвера
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// toDomain конвертирует wire-модель в доменный OptionSet
func (r *optionSetResponse) toDomain() (*domain.OptionSet, error) {
	single, err := toDomainOptions(r.SingleRoomOptions)
	if err != nil {
		return nil, err
	}
	sameType, err := toDomainOptions(r.SameTypeTransferOptions)
	if err != nil {
		return nil, err
	}
	mixed, err := toDomainOptions(r.MixedTypeTransferOptions)
	if err != nil {
		return nil, err
	}

	checkIn, err := time.Parse(domain.DateFormat, r.Query.CheckInDate)
	if err != nil {
		return nil, err
	}
	checkOut, err := time.Parse(domain.DateFormat, r.Query.CheckOutDate)
	if err != nil {
		return nil, err
	}

	return &domain.OptionSet{
		SingleRoom:        single,
		SameTypeTransfer:  sameType,
		MixedTypeTransfer: mixed,
		HasPerfectOptions: r.HasPerfectOptions,
		Query: domain.OptionQuery{
			CheckIn:  checkIn,
			CheckOut: checkOut,
			PetCount: r.Query.NumberOfPets,
			ClientID: r.Query.ClientID,
		},
	}, nil
}

func toDomainOptions(models []optionModel) ([]*domain.Option, error) {
	options := make([]*domain.Option, 0, len(models))
	for _, m := range models {
		opt, err := m.toDomain()
		if err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, nil
}

func (m *optionModel) toDomain() (*domain.Option, error) {
	segments := make([]domain.Segment, 0, len(m.Segments))
	for _, s := range m.Segments {
		checkIn, err := time.Parse(domain.DateFormat, s.CheckInDate)
		if err != nil {
			return nil, err
		}
		checkOut, err := time.Parse(domain.DateFormat, s.CheckOutDate)
		if err != nil {
			return nil, err
		}
		segments = append(segments, domain.Segment{
			CheckIn:      checkIn,
			CheckOut:     checkOut,
			RoomTypeID:   s.RoomTypeID,
			RoomTypeName: s.RoomTypeName,
			SquareMeters: s.SquareMeters,
			MaxCapacity:  s.MaxCapacity,
			Nights:       s.Nights,
			Price:        s.Price,
		})
	}

	breakdown := make([]domain.PriceBreakdownItem, 0, len(m.PriceBreakdown))
	for _, b := range m.PriceBreakdown {
		breakdown = append(breakdown, domain.PriceBreakdownItem{Label: b.Label, Amount: b.Amount})
	}

	opt := &domain.Option{
		Kind:           domain.OptionKind(m.Kind),
		Segments:       segments,
		TotalPrice:     m.TotalPrice,
		TotalNights:    m.TotalNights,
		Priority:       m.Priority,
		Warning:        m.Warning,
		PriceBreakdown: breakdown,
	}

	if err := opt.Validate(); err != nil {
		return nil, err
	}

	return opt, nil
}
