package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/raffle-live/raffle-backend/internal/hub"
	"github.com/raffle-live/raffle-backend/internal/room"
)

// RoomInfo answers join-by-link probes: a client holding a code from a URL
// can confirm the room exists before opening the socket. Read-only; room
// creation and joining happen over the socket, where the caller has a
// connection identity.
func RoomInfo(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.ToUpper(chi.URLParam(r, "code"))

		reply := make(chan *room.Room, 1)
		h.Inbox() <- hub.GetRoom{Code: code, Reply: reply}
		rm := <-reply
		if rm == nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		view := make(chan room.View, 1)
		rm.Inbox() <- room.GetState{Reply: view}
		v := <-view

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			Code         string `json:"code"`
			Capacity     int    `json:"capacity"`
			Participants int    `json:"participants"`
			Winners      []int  `json:"winners"`
		}{Code: v.Code, Capacity: v.Capacity, Participants: v.Participants, Winners: v.Winners})
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
