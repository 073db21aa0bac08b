package commit_booking

import (
	"fmt"

	"github.com/pethotel/PHM-BookingWorkflow/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SessionID == "" {
		return fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}
	return nil
}

// buildPayload конвертирует состояние мастера ровно в одну из двух
// взаимоисключающих форм бронирования
//
// Простая форма - когда выбранный вариант состоит из одного сегмента:
// тип номера и даты поднимаются на верхний уровень, опционально
// закрепленный номер. Составная форма - упорядоченный список сегментов
// (в порядке варианта); типа номера и закрепленного номера на верхнем
// уровне у нее не бывает. Формы никогда не смешиваются
func buildPayload(state domain.WizardState) (domain.SubmissionPayload, error) {
	if state.Dates == nil {
		return nil, fmt.Errorf("%w: dates are not set", ErrValidation)
	}
	if state.ClientID == nil {
		return nil, fmt.Errorf("%w: client is not set", ErrValidation)
	}
	if len(state.PetIDs) == 0 {
		return nil, fmt.Errorf("%w: no pets selected", ErrValidation)
	}
	if state.SelectedOption == nil {
		return nil, fmt.Errorf("%w: no option selected", ErrValidation)
	}

	option := state.SelectedOption
	if err := option.Validate(); err != nil {
		return nil, fmt.Errorf("%w: selected option is malformed: %v", ErrInternal, err)
	}

	if option.IsSingle() {
		segment := option.Segments[0]
		return domain.SimpleBookingPayload{
			ClientID:     *state.ClientID,
			PetIDs:       append([]int64(nil), state.PetIDs...),
			RoomTypeID:   segment.RoomTypeID,
			CheckInDate:  segment.CheckIn,
			CheckOutDate: segment.CheckOut,
			// nil означает "назначить номер позже" и опускается при сериализации
			AssignedRoomID:  state.AssignedRoomID,
			SpecialRequests: state.SpecialRequests,
		}, nil
	}

	segments := make([]domain.BookingSegment, 0, len(option.Segments))
	for _, s := range option.Segments {
		segments = append(segments, domain.BookingSegment{
			RoomTypeID:   s.RoomTypeID,
			CheckInDate:  s.CheckIn,
			CheckOutDate: s.CheckOut,
		})
	}

	return domain.CompositeBookingPayload{
		ClientID:        *state.ClientID,
		PetIDs:          append([]int64(nil), state.PetIDs...),
		Segments:        segments,
		SpecialRequests: state.SpecialRequests,
	}, nil
}
