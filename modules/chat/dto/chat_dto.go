package dto

// ChatMessage is the payload relayed to every member of a room.
type ChatMessage struct {
	UserID  int64  `json:"user_id"`
	RoomID  string `json:"room_id"`
	Message string `json:"message"`
}
