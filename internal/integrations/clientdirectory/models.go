package clientdirectory

// Client модель клиента пет-отеля из справочника клиентов
type Client struct {
	ID       int64   `json:"id"`
	FullName string  `json:"fullName"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	PetIDs   []int64 `json:"petIds"`
}

// OwnsPets проверяет, что все переданные питомцы принадлежат клиенту
func (c *Client) OwnsPets(petIDs []int64) bool {
	owned := make(map[int64]struct{}, len(c.PetIDs))
	for _, id := range c.PetIDs {
		owned[id] = struct{}{}
	}
	for _, id := range petIDs {
		if _, ok := owned[id]; !ok {
			return false
		}
	}
	return true
}

// ErrorResponse модель ошибки от справочника клиентов
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
