package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/raffle-live/raffle-backend/internal/hub"
	"github.com/raffle-live/raffle-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, originPatterns []string, log *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger(log))

	// Public routes
	r.Get("/rooms/{code}", RoomInfo(h))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, originPatterns, log))
	return r
}
