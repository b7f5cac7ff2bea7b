package models

import "time"

// RawMarketEntry is one element of the markets endpoint response. Price,
// market cap and volume are pointers so a null or missing value survives
// decoding and can be filtered out during shaping.
type RawMarketEntry struct {
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	CurrentPrice *float64 `json:"current_price"`
	MarketCap    *float64 `json:"market_cap"`
	TotalVolume  *float64 `json:"total_volume"`
}

// MarketRecord is one row of the prices table. Symbol is stored lowercase;
// Timestamp is shared by every record of the same batch.
type MarketRecord struct {
	Symbol       string    `db:"symbol" json:"symbol"`
	Name         string    `db:"name" json:"name"`
	CurrentPrice float64   `db:"current_price" json:"current_price"`
	MarketCap    *float64  `db:"market_cap" json:"market_cap"`
	TotalVolume  *float64  `db:"total_volume" json:"total_volume"`
	Timestamp    time.Time `db:"timestamp" json:"timestamp"`
}
