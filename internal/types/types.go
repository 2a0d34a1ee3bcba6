package types

// ClientMessage is one inbound command over the socket.
// Type is "createRoom" | "joinRoom" | "spin".
type ClientMessage struct {
	Type     string `json:"type"`
	Capacity int    `json:"capacity,omitempty"`
	RoomCode string `json:"room_code,omitempty"`
}

// ServerMessage is one outbound reply or room notification.
// Type is "roomCreated" | "ticketAssigned" | "updateParticipants" |
// "winnerResult" | "error".
type ServerMessage struct {
	Type       string `json:"type"`
	RoomCode   string `json:"room_code,omitempty"`
	Ticket     int    `json:"ticket,omitempty"`
	Count      int    `json:"count,omitempty"`
	Winner     int    `json:"winner,omitempty"`
	AllWinners []int  `json:"all_winners,omitempty"`
	Error      string `json:"error,omitempty"`
}
