package handlers

import (
	"strings"
	"time"

	"github.com/coinpulse/crypto-etl-go/logger"
	"github.com/coinpulse/crypto-etl-go/models"
)

// ShapeRecords filters raw entries down to persistable rows. Entries missing
// symbol, name or price are skipped and logged. Symbols are lowercased and
// every surviving row carries the same capture timestamp. Output order
// follows input order.
func ShapeRecords(entries []models.RawMarketEntry) ([]models.MarketRecord, time.Time) {
	capturedAt := time.Now().UTC()

	records := make([]models.MarketRecord, 0, len(entries))
	for _, entry := range entries {
		if entry.Symbol == "" || entry.Name == "" {
			logger.Warn("skipping entry with missing identity", "symbol", entry.Symbol, "name", entry.Name)
			continue
		}
		if entry.CurrentPrice == nil {
			logger.Warn("skipping entry with null price", "symbol", entry.Symbol, "name", entry.Name)
			continue
		}

		records = append(records, models.MarketRecord{
			Symbol:       strings.ToLower(entry.Symbol),
			Name:         entry.Name,
			CurrentPrice: *entry.CurrentPrice,
			MarketCap:    entry.MarketCap,
			TotalVolume:  entry.TotalVolume,
			Timestamp:    capturedAt,
		})
	}

	return records, capturedAt
}
