package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/raffle-live/raffle-backend/internal/config"
	"github.com/raffle-live/raffle-backend/internal/httpapi"
	"github.com/raffle-live/raffle-backend/internal/hub"
)

func main() {
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.Env == "dev" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	h := hub.NewHub(ctx, logger)

	// Build the router *with* the hub injected
	handler := httpapi.SetupRoutes(h, cfg.OriginPatterns, logger)

	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
