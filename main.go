package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/coinpulse/crypto-etl-go/api"
	"github.com/coinpulse/crypto-etl-go/config"
	"github.com/coinpulse/crypto-etl-go/handlers"
	"github.com/coinpulse/crypto-etl-go/logger"
	"github.com/coinpulse/crypto-etl-go/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuration error", "error", err)
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := utils.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("database connection failed", "error", err)
	}
	defer store.Close()

	go api.Serve(ctx, cfg.APIAddr, store)

	logger.Info("starting market etl loop",
		"interval", cfg.CycleInterval.String(),
		"markets_url", cfg.MarketsURL,
		"vs_currency", cfg.VsCurrency,
	)

	deps := handlers.Deps{
		Config: cfg,
		Client: &http.Client{Timeout: cfg.FetchTimeout},
		Sink:   store,
	}
	handlers.Loop(ctx, deps, handlers.Sleep)

	logger.Info("shutting down")
}
