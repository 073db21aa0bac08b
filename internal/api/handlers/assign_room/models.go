package assign_room

// AssignRoomRequest закрепление номера за выбранным вариантом
// roomId: null - явный выбор "назначить позже"
type AssignRoomRequest struct {
	RoomID *int64 `json:"roomId"`
}
