package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultMarketsURL    = "https://api.coingecko.com/api/v3/coins/markets"
	defaultVsCurrency    = "usd"
	defaultOrder         = "market_cap_desc"
	defaultPerPage       = 10
	defaultPage          = 1
	defaultFetchTimeout  = 10 * time.Second
	defaultCycleInterval = 300 * time.Second
	defaultAPIAddr       = ":8080"
)

// Config carries everything the service reads from the environment. It is
// built once in main and passed into the components; nothing else touches
// os.Getenv.
type Config struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string

	MarketsURL   string
	VsCurrency   string
	Order        string
	PerPage      int
	Page         int
	FetchTimeout time.Duration

	NotifyURL     string
	CycleInterval time.Duration
	APIAddr       string

	LogLevel  string
	LogFormat string
	LogFile   string
}

// Load reads dev.env when present, then the environment. The five database
// variables are required; everything else has a default. NOTIFY_URL left
// empty disables the notify step.
func Load() (Config, error) {
	_ = godotenv.Load("dev.env")

	cfg := Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBName:     os.Getenv("DB_NAME"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),

		MarketsURL: envOr("MARKETS_URL", defaultMarketsURL),
		VsCurrency: envOr("VS_CURRENCY", defaultVsCurrency),
		Order:      envOr("ORDER", defaultOrder),

		NotifyURL: os.Getenv("NOTIFY_URL"),
		APIAddr:   envOr("API_ADDR", defaultAPIAddr),

		LogLevel:  envOr("LOG_LEVEL", "info"),
		LogFormat: envOr("LOG_FORMAT", "json"),
		LogFile:   os.Getenv("LOG_FILE"),
	}

	var missing []string
	for _, v := range []struct {
		name, value string
	}{
		{"DB_HOST", cfg.DBHost},
		{"DB_PORT", cfg.DBPort},
		{"DB_NAME", cfg.DBName},
		{"DB_USER", cfg.DBUser},
		{"DB_PASSWORD", cfg.DBPassword},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	var err error
	if cfg.PerPage, err = envInt("PER_PAGE", defaultPerPage); err != nil {
		return Config{}, err
	}
	if cfg.Page, err = envInt("PAGE", defaultPage); err != nil {
		return Config{}, err
	}
	if cfg.FetchTimeout, err = envSeconds("FETCH_TIMEOUT_SECONDS", defaultFetchTimeout); err != nil {
		return Config{}, err
	}
	if cfg.CycleInterval, err = envSeconds("CYCLE_INTERVAL_SECONDS", defaultCycleInterval); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// DatabaseURL builds the postgres connection string.
func (c Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func envSeconds(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return time.Duration(seconds) * time.Second, nil
}
