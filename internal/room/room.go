package room

import (
	"context"
	"errors"
	"slices"

	"go.uber.org/zap"

	"github.com/raffle-live/raffle-backend/internal/raffle"
)

type Msg interface{ isRoomMsg() }

// Subscribe registers a connection's outbox for this room's notices.
// Subscribing does not take a ticket; the creator listens without one.
type Subscribe struct {
	ClientID string
	Outbox   chan Notice
}

func (Subscribe) isRoomMsg() {}

type Leave struct{ ClientID string }

func (Leave) isRoomMsg() {}

// Join assigns a ticket to the client. The ticket (or the failure) comes
// back on Outbox ahead of the participant-count broadcast. Multicast
// membership is granted only on success: a client whose join fails gets the
// error and nothing else from this room.
type Join struct {
	ClientID string
	Outbox   chan Notice
}

func (Join) isRoomMsg() {}

// Spin draws one winner. Only the room creator's spin does anything; a
// fully-drawn room answers the requester alone with an error notice.
type Spin struct{ ClientID string }

func (Spin) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isRoomMsg() {}

type NoticeType string

const (
	NoticeRoomCreated        NoticeType = "roomCreated"
	NoticeTicketAssigned     NoticeType = "ticketAssigned"
	NoticeUpdateParticipants NoticeType = "updateParticipants"
	NoticeWinnerResult       NoticeType = "winnerResult"
	NoticeError              NoticeType = "error"
)

// Notice is one server-to-client notification, either targeted at a single
// subscriber or fanned out to the whole room. NoticeRoomCreated is emitted
// by the transport layer on the same channel so replies and room fan-out
// share one ordered stream per connection.
type Notice struct {
	Type       NoticeType
	RoomCode   string
	Ticket     int
	Count      int
	Winner     int
	AllWinners []int
	Error      string
}

type View struct {
	Code           string
	Capacity       int
	Participants   int
	Winners        []int
	NumSubscribers int
}

type Room struct {
	code   string
	inbox  chan Msg
	state  raffle.State
	subs   map[string]chan Notice
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewRoom(parent context.Context, code string, initial raffle.State, log *zap.Logger) *Room {
	ctx, cancel := context.WithCancel(parent)

	r := &Room{
		code:   code,
		inbox:  make(chan Msg, 64),
		state:  initial,
		subs:   make(map[string]chan Notice),
		log:    log.With(zap.String("room", code)),
		ctx:    ctx,
		cancel: cancel,
	}

	go r.loop()
	return r
}

func (r *Room) Inbox() chan<- Msg { return r.inbox }

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Subscribe:
				r.subs[msg.ClientID] = msg.Outbox

			case Leave:
				delete(r.subs, msg.ClientID)

			case Join:
				r.handleJoin(msg.ClientID, msg.Outbox)

			case Spin:
				r.handleSpin(msg.ClientID)

			case GetState:
				msg.Reply <- View{
					Code:           r.code,
					Capacity:       r.state.Capacity,
					Participants:   len(r.state.Assignments),
					Winners:        slices.Clone(r.state.Winners),
					NumSubscribers: len(r.subs),
				}

			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

func (r *Room) handleJoin(clientID string, outbox chan Notice) {
	events, newState, err := raffle.Apply(r.state, raffle.Command{Type: raffle.CmdJoin, Identity: clientID})
	if err != nil {
		// Straight to the requester's outbox; a failed joiner never enters
		// the multicast group, and an existing membership is left alone.
		select {
		case outbox <- Notice{Type: NoticeError, Error: ErrorCode(err)}:
		default:
		}
		return
	}
	r.state = newState
	r.subs[clientID] = outbox

	for _, ev := range events {
		if ev.Type != raffle.EvtTicketAssigned {
			continue
		}
		r.notifyOne(clientID, Notice{Type: NoticeTicketAssigned, Ticket: ev.Ticket})
		r.broadcast(Notice{Type: NoticeUpdateParticipants, Count: ev.Count})
	}
}

func (r *Room) handleSpin(clientID string) {
	events, newState, err := raffle.Apply(r.state, raffle.Command{Type: raffle.CmdSpin, Identity: clientID})
	if errors.Is(err, raffle.ErrUnauthorized) {
		// Non-creator spins are dropped without a reply on purpose.
		r.log.Debug("spin from non-creator ignored", zap.String("client", clientID))
		return
	}
	if err != nil {
		r.notifyOne(clientID, Notice{Type: NoticeError, Error: ErrorCode(err)})
		return
	}
	r.state = newState

	for _, ev := range events {
		if ev.Type != raffle.EvtWinnerDrawn {
			continue
		}
		r.log.Info("winner drawn", zap.Int("winner", ev.Ticket), zap.Int("total", len(ev.Winners)))
		r.broadcast(Notice{Type: NoticeWinnerResult, Winner: ev.Ticket, AllWinners: ev.Winners})
	}
}

func (r *Room) shutdown() {
	clear(r.subs)
	r.cancel()
}

func (r *Room) notifyOne(clientID string, n Notice) {
	ch, ok := r.subs[clientID]
	if !ok {
		return
	}
	select {
	case ch <- n:
	default:
		// Slow or gone; drop the subscription, never block the room.
		delete(r.subs, clientID)
		r.log.Warn("dropping slow subscriber", zap.String("client", clientID))
	}
}

func (r *Room) broadcast(n Notice) {
	for id, ch := range r.subs {
		select {
		case ch <- n:
		default:
			delete(r.subs, id)
			r.log.Warn("dropping slow subscriber", zap.String("client", id))
		}
	}
}
