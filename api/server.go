package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coinpulse/crypto-etl-go/logger"
	"github.com/coinpulse/crypto-etl-go/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// PriceReader is the slice of the store the read API needs.
type PriceReader interface {
	LatestPrices(ctx context.Context) ([]models.MarketRecord, error)
	Ping(ctx context.Context) error
}

// NewRouter builds the read-only HTTP surface over the prices table.
func NewRouter(store PriceReader) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := store.Ping(req.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/prices/latest", func(w http.ResponseWriter, req *http.Request) {
		records, err := store.LatestPrices(req.Context())
		if err != nil {
			logger.Error("failed to load latest prices", "error", err)
			http.Error(w, "failed to load latest prices", http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []models.MarketRecord{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	})

	return r
}

// Serve runs the read API until the context is cancelled. It never affects
// the ETL loop; a dead API is only logged.
func Serve(ctx context.Context, addr string, store PriceReader) {
	server := &http.Server{Addr: addr, Handler: NewRouter(store)}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info("read api listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("api server stopped", "error", err)
	}
}
