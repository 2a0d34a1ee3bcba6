package room

import (
	"errors"

	"github.com/raffle-live/raffle-backend/internal/raffle"
)

// Wire error codes. Clients match on these strings.
const (
	CodeRoomNotFound      = "RoomNotFound"
	CodeTicketsExhausted  = "TicketsExhausted"
	CodeTicketsFullyDrawn = "TicketsFullyDrawn"
	CodeInvalidCapacity   = "InvalidCapacity"
	CodeInternal          = "InternalError"
)

func ErrorCode(err error) string {
	switch {
	case errors.Is(err, raffle.ErrTicketsExhausted):
		return CodeTicketsExhausted
	case errors.Is(err, raffle.ErrTicketsFullyDrawn):
		return CodeTicketsFullyDrawn
	case errors.Is(err, raffle.ErrInvalidCapacity):
		return CodeInvalidCapacity
	default:
		return CodeInternal
	}
}
