package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/coinpulse/crypto-etl-go/config"
	"github.com/coinpulse/crypto-etl-go/logger"
	"github.com/coinpulse/crypto-etl-go/models"
)

// Sink persists one shaped batch.
type Sink interface {
	InsertPrices(ctx context.Context, records []models.MarketRecord) error
}

// Deps wires the collaborators of one cycle.
type Deps struct {
	Config config.Config
	Client *http.Client
	Sink   Sink
}

// WaitFunc suspends between cycles. It returns false to stop the loop.
type WaitFunc func(ctx context.Context, d time.Duration) bool

// RunCycle executes one fetch, shape, insert, notify pass. Every failure is
// logged here and absorbed so the loop never dies from a bad cycle. Notify
// only fires when the insert path completed, however many rows were written.
func RunCycle(ctx context.Context, deps Deps) {
	started := time.Now().UTC()
	logger.Info("cycle started", "at", started)
	defer func() {
		logger.Info("cycle finished", "at", time.Now().UTC(), "duration", time.Since(started).String())
	}()

	entries, err := FetchMarkets(ctx, deps.Client, deps.Config)
	if err != nil {
		logger.Error("fetch failed, no data this cycle", "error", err)
		return
	}
	if len(entries) == 0 {
		logger.Info("markets endpoint returned no entries")
		return
	}

	records, capturedAt := ShapeRecords(entries)
	if err := deps.Sink.InsertPrices(ctx, records); err != nil {
		logger.Error("insert failed, cycle aborted", "error", err, "records", len(records))
		return
	}
	logger.Info("batch persisted", "records", len(records), "captured_at", capturedAt)

	Notify(ctx, deps.Client, deps.Config.NotifyURL)
}

// Loop alternates RunCycle and wait until the context is cancelled or wait
// reports stop. The interval starts after the cycle finishes, it is not a
// wall-clock tick.
func Loop(ctx context.Context, deps Deps, wait WaitFunc) {
	for {
		RunCycle(ctx, deps)
		if !wait(ctx, deps.Config.CycleInterval) {
			return
		}
	}
}

// Sleep waits for d or until the context is done.
func Sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
