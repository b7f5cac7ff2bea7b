package utils

import (
	"context"
	"fmt"

	"github.com/coinpulse/crypto-etl-go/config"
	"github.com/coinpulse/crypto-etl-go/logger"
	"github.com/coinpulse/crypto-etl-go/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var priceColumns = []string{"symbol", "name", "current_price", "market_cap", "total_volume", "timestamp"}

// Store owns the connection pool for the prices table.
type Store struct {
	pool *pgxpool.Pool
}

// Connect builds the pool and verifies the database is reachable. Startup
// callers treat an error here as fatal.
func Connect(ctx context.Context, cfg config.Config) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}
	poolConfig.MaxConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to reach database: %w", err)
	}

	logger.Info("connected to database", "host", cfg.DBHost, "database", cfg.DBName)
	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Ping reports whether the database answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// InsertPrices writes one shaped batch in a single transaction. An empty
// batch is a no-op. The acquired connection is released on every path, and
// a failed copy rolls the whole batch back.
func (s *Store) InsertPrices(ctx context.Context, records []models.MarketRecord) error {
	if len(records) == 0 {
		logger.Info("no records to insert")
		return nil
	}

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("unable to acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"prices"},
		priceColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]interface{}, error) {
			r := records[i]
			return []interface{}{
				r.Symbol, r.Name, r.CurrentPrice, r.MarketCap, r.TotalVolume, r.Timestamp,
			}, nil
		}),
	)
	if err != nil {
		tx.Rollback(ctx)
		return fmt.Errorf("error inserting prices: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing prices: %w", err)
	}
	return nil
}

// LatestPrices returns the rows of the most recent batch.
func (s *Store) LatestPrices(ctx context.Context) ([]models.MarketRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT symbol, name, current_price, market_cap, total_volume, timestamp
		 FROM prices
		 WHERE timestamp = (SELECT MAX(timestamp) FROM prices)
		 ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("error querying latest prices: %w", err)
	}
	defer rows.Close()

	var records []models.MarketRecord
	for rows.Next() {
		var r models.MarketRecord
		if err := rows.Scan(&r.Symbol, &r.Name, &r.CurrentPrice, &r.MarketCap, &r.TotalVolume, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("error scanning price row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading price rows: %w", err)
	}
	return records, nil
}
