package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coinpulse/crypto-etl-go/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marketsConfig(url string) config.Config {
	return config.Config{
		MarketsURL:   url,
		VsCurrency:   "usd",
		Order:        "market_cap_desc",
		PerPage:      10,
		Page:         1,
		FetchTimeout: time.Second,
	}
}

func TestFetchMarketsDecodesEntries(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"vs_currency": q.Get("vs_currency"),
			"order":       q.Get("order"),
			"per_page":    q.Get("per_page"),
			"page":        q.Get("page"),
			"sparkline":   q.Get("sparkline"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"symbol":"btc","name":"Bitcoin","current_price":50000,"market_cap":1000000,"total_volume":30000},
			{"symbol":"xyz","name":"Foo","current_price":null}
		]`))
	}))
	defer server.Close()

	entries, err := FetchMarkets(context.Background(), &http.Client{}, marketsConfig(server.URL))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, map[string]string{
		"vs_currency": "usd",
		"order":       "market_cap_desc",
		"per_page":    "10",
		"page":        "1",
		"sparkline":   "false",
	}, gotQuery)

	require.NotNil(t, entries[0].CurrentPrice)
	assert.Equal(t, float64(50000), *entries[0].CurrentPrice)
	assert.Nil(t, entries[1].CurrentPrice)
}

func TestFetchMarketsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	entries, err := FetchMarkets(context.Background(), &http.Client{}, marketsConfig(server.URL))
	require.Error(t, err)
	assert.Nil(t, entries)
	assert.Contains(t, err.Error(), "429")
}

func TestFetchMarketsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	cfg := marketsConfig(server.URL)
	cfg.FetchTimeout = 20 * time.Millisecond

	entries, err := FetchMarkets(context.Background(), &http.Client{}, cfg)
	require.Error(t, err)
	assert.Nil(t, entries)
}

func TestFetchMarketsBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer server.Close()

	entries, err := FetchMarkets(context.Background(), &http.Client{}, marketsConfig(server.URL))
	require.Error(t, err)
	assert.Nil(t, entries)
}
