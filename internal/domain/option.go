package domain

import (
	"errors"
	"time"
)

// OptionKind represents the category of a stay option
type OptionKind string

const (
	KindSingle           OptionKind = "single"
	KindSameTypeTransfer OptionKind = "same_type_transfer"
	KindMixedTransfer    OptionKind = "mixed_type_transfer"
)

var (
	// ErrInvalidDateRange возвращается, когда checkIn не раньше checkOut
	ErrInvalidDateRange = errors.New("domain: check-in must be before check-out")

	// ErrInvalidOption возвращается при нарушении инвариантов варианта размещения
	ErrInvalidOption = errors.New("domain: invalid option")
)

// DateRange период проживания
// Инвариант: CheckIn строго раньше CheckOut
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Validate проверяет инвариант периода
func (r *DateRange) Validate() error {
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
		return ErrInvalidDateRange
	}
	if !r.CheckIn.Before(r.CheckOut) {
		return ErrInvalidDateRange
	}
	return nil
}

// Nights возвращает количество ночей в периоде
func (r *DateRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// Segment represents one contiguous occupancy of a single room type within a stay
type Segment struct {
	CheckIn      time.Time
	CheckOut     time.Time
	RoomTypeID   int64
	RoomTypeName string
	SquareMeters float64
	MaxCapacity  int
	Nights       int
	Price        float64
}

// PriceBreakdownItem одна строка детализации цены варианта
type PriceBreakdownItem struct {
	Label  string
	Amount float64
}

// Option represents one complete candidate way to fulfil a stay:
// one or more chronologically contiguous segments
type Option struct {
	Kind           OptionKind
	Segments       []Segment
	TotalPrice     float64
	TotalNights    int
	Priority       int
	Warning        *string
	PriceBreakdown []PriceBreakdownItem
}

// IsSingle returns true if the option occupies a single room for the whole stay
func (o *Option) IsSingle() bool {
	return len(o.Segments) == 1
}

// TransferCount возвращает количество переездов между сегментами
func (o *Option) TransferCount() int {
	if len(o.Segments) == 0 {
		return 0
	}
	return len(o.Segments) - 1
}

// Validate проверяет инварианты варианта:
// kind == single ⇔ ровно один сегмент; сегменты хронологически стыкуются
// (checkOut[i] == checkIn[i+1])
func (o *Option) Validate() error {
	if len(o.Segments) == 0 {
		return ErrInvalidOption
	}
	if (o.Kind == KindSingle) != (len(o.Segments) == 1) {
		return ErrInvalidOption
	}
	for i := 0; i < len(o.Segments)-1; i++ {
		if !o.Segments[i].CheckOut.Equal(o.Segments[i+1].CheckIn) {
			return ErrInvalidOption
		}
	}
	return nil
}

// OptionQuery эхо параметров запроса, с которыми резолвер считал варианты
type OptionQuery struct {
	CheckIn  time.Time
	CheckOut time.Time
	PetCount int
	ClientID int64
}

// OptionSet ответ резолвера доступности: три непересекающихся списка вариантов
// Живет ровно один поиск: следующий поиск замещает его целиком
type OptionSet struct {
	SingleRoom        []*Option
	SameTypeTransfer  []*Option
	MixedTypeTransfer []*Option
	HasPerfectOptions bool
	Query             OptionQuery
}

// TotalOptions возвращает суммарное количество вариантов во всех категориях
func (s *OptionSet) TotalOptions() int {
	return len(s.SingleRoom) + len(s.SameTypeTransfer) + len(s.MixedTypeTransfer)
}
