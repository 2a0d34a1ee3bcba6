package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/raffle-live/raffle-backend/internal/hub"
	"github.com/raffle-live/raffle-backend/internal/raffle"
	"github.com/raffle-live/raffle-backend/internal/room"
)

func TestRoomInfo_UnknownCodeIs404(t *testing.T) {
	h := hub.NewHub(context.Background(), zap.NewNop())
	router := SetupRoutes(h, nil, zap.NewNop())

	req := httptest.NewRequest("GET", "/rooms/NOPE42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRoomInfo_ReturnsStateAndUppercasesCode(t *testing.T) {
	h := hub.NewHub(context.Background(), zap.NewNop())
	router := SetupRoutes(h, nil, zap.NewNop())

	state, err := raffle.NewState(7, "creator")
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	reply := make(chan *room.Room, 1)
	h.Inbox() <- hub.CreateRoom{Code: "QWE789", State: state, Reply: reply}
	<-reply

	// lower-case in the URL must still resolve
	req := httptest.NewRequest("GET", "/rooms/qwe789", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Code         string `json:"code"`
		Capacity     int    `json:"capacity"`
		Participants int    `json:"participants"`
		Winners      []int  `json:"winners"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Code != "QWE789" || body.Capacity != 7 || body.Participants != 0 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if len(body.Winners) != 0 {
		t.Fatalf("fresh room must have no winners: %+v", body.Winners)
	}
}

func TestHealthz(t *testing.T) {
	h := hub.NewHub(context.Background(), zap.NewNop())
	router := SetupRoutes(h, nil, zap.NewNop())

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
