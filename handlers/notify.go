package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/coinpulse/crypto-etl-go/logger"
)

// Notify posts to the downstream refresh endpoint after a batch lands. Best
// effort: the data is already committed, so every failure here is logged and
// swallowed. An empty URL disables the step.
func Notify(ctx context.Context, client *http.Client, notifyURL string) {
	if notifyURL == "" {
		logger.Debug("notify url not configured, skipping")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, notifyURL, bytes.NewReader([]byte("{}")))
	if err != nil {
		logger.Warn("failed to create notify request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		logger.Warn("notify request failed", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("notify endpoint returned error status", "status", resp.StatusCode)
		return
	}

	var ack struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err == nil && ack.Message != "" {
		logger.Info("notify acknowledged", "message", ack.Message)
		return
	}
	logger.Info("notify delivered")
}
