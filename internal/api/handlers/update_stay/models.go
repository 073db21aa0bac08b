package update_stay

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pethotel/PHM-BookingWorkflow/internal/domain"
)

// UpdateStayRequest частичное обновление данных проживания
//
// Семантика PATCH: отсутствующее поле не трогается, присутствующее
// со значением null очищается. Поэтому поля хранятся как сырой JSON -
// после стандартного декодирования "нет поля" и "поле: null"
// неразличимы
type UpdateStayRequest struct {
	Dates           json.RawMessage `json:"dates,omitempty"`
	ClientID        json.RawMessage `json:"clientId,omitempty"`
	PetIDs          json.RawMessage `json:"petIds,omitempty"`
	SpecialRequests json.RawMessage `json:"specialRequests,omitempty"`
}

// DatesPayload период проживания в теле запроса
type DatesPayload struct {
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

var nullLiteral = []byte("null")

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), nullLiteral)
}

// ParseDates возвращает (период, очистить, ошибка) для поля dates
func (r *UpdateStayRequest) ParseDates() (*domain.DateRange, bool, error) {
	if len(r.Dates) == 0 {
		return nil, false, nil
	}
	if isNull(r.Dates) {
		return nil, true, nil
	}

	var payload DatesPayload
	if err := json.Unmarshal(r.Dates, &payload); err != nil {
		return nil, false, err
	}
	checkIn, err := time.Parse(domain.DateFormat, payload.CheckInDate)
	if err != nil {
		return nil, false, err
	}
	checkOut, err := time.Parse(domain.DateFormat, payload.CheckOutDate)
	if err != nil {
		return nil, false, err
	}
	return &domain.DateRange{CheckIn: checkIn, CheckOut: checkOut}, true, nil
}

// ParseClientID возвращает (ID клиента, очистить/установить, ошибка)
func (r *UpdateStayRequest) ParseClientID() (*int64, bool, error) {
	if len(r.ClientID) == 0 {
		return nil, false, nil
	}
	if isNull(r.ClientID) {
		return nil, true, nil
	}

	var id int64
	if err := json.Unmarshal(r.ClientID, &id); err != nil {
		return nil, false, err
	}
	return &id, true, nil
}

// ParsePetIDs возвращает (питомцы, очистить/установить, ошибка)
func (r *UpdateStayRequest) ParsePetIDs() ([]int64, bool, error) {
	if len(r.PetIDs) == 0 {
		return nil, false, nil
	}
	if isNull(r.PetIDs) {
		return nil, true, nil
	}

	var ids []int64
	if err := json.Unmarshal(r.PetIDs, &ids); err != nil {
		return nil, false, err
	}
	return ids, true, nil
}

// ParseSpecialRequests возвращает (текст, очистить/установить, ошибка)
func (r *UpdateStayRequest) ParseSpecialRequests() (*string, bool, error) {
	if len(r.SpecialRequests) == 0 {
		return nil, false, nil
	}
	if isNull(r.SpecialRequests) {
		return nil, true, nil
	}

	var text string
	if err := json.Unmarshal(r.SpecialRequests, &text); err != nil {
		return nil, false, err
	}
	return &text, true, nil
}
