package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/raffle-live/raffle-backend/internal/hub"
	"github.com/raffle-live/raffle-backend/internal/raffle"
	"github.com/raffle-live/raffle-backend/internal/room"
	"github.com/raffle-live/raffle-backend/internal/types"
)

// session is one live connection: its identity, its outbound notice stream,
// and the rooms it has subscribed to.
type session struct {
	id     string
	hub    *hub.Hub
	out    chan room.Notice
	joined map[string]*room.Room
	log    *zap.Logger
}

func Handler(h *hub.Hub, originPatterns []string, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		s := &session{
			id:     uuid.NewString(),
			hub:    h,
			out:    make(chan room.Notice, 8),
			joined: make(map[string]*room.Room),
		}
		s.log = log.With(zap.String("client", s.id))
		s.log.Info("client connected", zap.String("remote", r.RemoteAddr))

		defer func() {
			for _, rm := range s.joined {
				rm.Inbox() <- room.Leave{ClientID: s.id}
			}
			s.log.Info("client disconnected")
		}()

		// Writer goroutine: single writer per socket keeps delivery ordered.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for {
				select {
				case <-writeCtx.Done():
					return
				case n := <-s.out:
					payload, _ := json.Marshal(toServerMessage(n))
					ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
					_ = conn.Write(ctx, websocket.MessageText, payload)
					cancel()
				}
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				// Treat clean close/going-away as normal:
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				// Otherwise, just exit (room.Leave in defer):
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				s.out <- room.Notice{Type: room.NoticeError, Error: "bad json"}
				continue
			}

			switch cm.Type {
			case "createRoom":
				s.createRoom(cm.Capacity)
			case "joinRoom":
				s.joinRoom(cm.RoomCode)
			case "spin":
				s.spin(cm.RoomCode)
			default:
				s.out <- room.Notice{Type: room.NoticeError, Error: "unknown type"}
			}
		}
	}
}

func (s *session) createRoom(capacity int) {
	state, err := raffle.NewState(capacity, s.id)
	if err != nil {
		s.out <- room.Notice{Type: room.NoticeError, Error: room.ErrorCode(err)}
		return
	}

	var code string
	for {
		c, err := generateCode()
		if err != nil {
			s.log.Error("code generation failed", zap.Error(err))
			s.out <- room.Notice{Type: room.NoticeError, Error: room.CodeInternal}
			return
		}
		if s.getRoom(c) == nil {
			code = c
			break
		}
		s.log.Info("code collision, regenerating", zap.String("code", c))
	}

	reply := make(chan *room.Room, 1)
	s.hub.Inbox() <- hub.CreateRoom{Code: code, State: state, Reply: reply}
	rm := <-reply

	// The creator listens for room notices but holds no ticket.
	rm.Inbox() <- room.Subscribe{ClientID: s.id, Outbox: s.out}
	s.joined[code] = rm

	s.out <- room.Notice{Type: room.NoticeRoomCreated, RoomCode: code}
}

func (s *session) joinRoom(code string) {
	code = strings.ToUpper(code)
	rm := s.getRoom(code)
	if rm == nil {
		s.out <- room.Notice{Type: room.NoticeError, Error: room.CodeRoomNotFound}
		return
	}

	// The room adds us to its multicast group only if the join succeeds.
	s.joined[code] = rm
	rm.Inbox() <- room.Join{ClientID: s.id, Outbox: s.out}
}

func (s *session) spin(code string) {
	rm := s.getRoom(strings.ToUpper(code))
	if rm == nil {
		// Only the creator's UI issues spins; an unknown code gets no reply.
		return
	}
	rm.Inbox() <- room.Spin{ClientID: s.id}
}

// Swapped out in tests to force code collisions.
var generateCode = hub.GenerateCode

func (s *session) getRoom(code string) *room.Room {
	reply := make(chan *room.Room, 1)
	s.hub.Inbox() <- hub.GetRoom{Code: code, Reply: reply}
	return <-reply
}

func toServerMessage(n room.Notice) types.ServerMessage {
	return types.ServerMessage{
		Type:       string(n.Type),
		RoomCode:   n.RoomCode,
		Ticket:     n.Ticket,
		Count:      n.Count,
		Winner:     n.Winner,
		AllWinners: n.AllWinners,
		Error:      n.Error,
	}
}
