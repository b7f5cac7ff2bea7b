package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/coinpulse/crypto-etl-go/config"
	"github.com/coinpulse/crypto-etl-go/models"
)

// FetchMarkets performs one GET against the markets endpoint with a bounded
// wait. Any transport error, non-200 status or decode failure comes back as
// an error; the caller treats that as a cycle with no data.
func FetchMarkets(ctx context.Context, client *http.Client, cfg config.Config) ([]models.RawMarketEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	query := url.Values{}
	query.Set("vs_currency", cfg.VsCurrency)
	query.Set("order", cfg.Order)
	query.Set("per_page", strconv.Itoa(cfg.PerPage))
	query.Set("page", strconv.Itoa(cfg.Page))
	query.Set("sparkline", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.MarketsURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch markets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("markets endpoint returned status %d", resp.StatusCode)
	}

	var entries []models.RawMarketEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode markets response: %w", err)
	}

	return entries, nil
}
