package raffle

import (
	"errors"
	"slices"
)

var ErrInvalidCapacity = errors.New("invalid capacity")
var ErrTicketsExhausted = errors.New("tickets exhausted")
var ErrTicketsFullyDrawn = errors.New("all tickets drawn")
var ErrUnauthorized = errors.New("not the room creator")
var ErrUnsupportedCommand = errors.New("unsupported command")

// State is one room's raffle state. CreatorID and Capacity are fixed at
// creation; the mutable fields only change through Apply.
type State struct {
	CreatorID   string
	Capacity    int
	Assignments map[string]int // identity -> ticket
	Available   []int          // tickets not yet assigned
	Winners     []int          // draw history, oldest first
}

type CommandType string

const (
	CmdJoin CommandType = "Join"
	CmdSpin CommandType = "Spin"
)

type Command struct {
	Type     CommandType
	Identity string
}

type EventType string

const (
	EvtTicketAssigned EventType = "TicketAssigned"
	EvtWinnerDrawn    EventType = "WinnerDrawn"
)

type Event struct {
	Type     EventType
	Identity string
	Ticket   int
	Count    int   // participants after a join
	Winners  []int // full draw history after a draw
}

func Apply(s State, cmd Command) ([]Event, State, error) {
	switch cmd.Type {
	case CmdJoin:
		// Rejoin returns the same ticket; the count broadcast still fires.
		if ticket, ok := s.Assignments[cmd.Identity]; ok {
			ev := Event{Type: EvtTicketAssigned, Identity: cmd.Identity, Ticket: ticket, Count: len(s.Assignments)}
			return []Event{ev}, s, nil
		}

		if len(s.Available) == 0 {
			return nil, s, ErrTicketsExhausted
		}

		newState := s
		i := intn(len(s.Available))
		ticket := s.Available[i]
		newState.Available = slices.Delete(s.Available, i, i+1)
		newState.Assignments[cmd.Identity] = ticket

		events := []Event{
			{Type: EvtTicketAssigned, Identity: cmd.Identity, Ticket: ticket, Count: len(newState.Assignments)},
		}
		return events, newState, nil

	case CmdSpin:
		if cmd.Identity != s.CreatorID {
			return nil, s, ErrUnauthorized
		}

		// The draw runs over the whole number range minus past winners, not
		// over assigned tickets: a number nobody holds can still win.
		remaining := Undrawn(s)
		if len(remaining) == 0 {
			return nil, s, ErrTicketsFullyDrawn
		}

		winner := remaining[intn(len(remaining))]
		newState := s
		newState.Winners = append(s.Winners, winner)

		events := []Event{
			{Type: EvtWinnerDrawn, Ticket: winner, Winners: slices.Clone(newState.Winners)},
		}
		return events, newState, nil

	default:
		return nil, s, ErrUnsupportedCommand
	}
}
