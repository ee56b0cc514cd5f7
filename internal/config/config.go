package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort            = "8080"
	DefaultMaxPages        = 5
	DefaultPageDelay       = 1200 * time.Millisecond
	DefaultMatrixBatchSize = 25
)

var ErrMissingAPIKey = errors.New("GOOGLE_MAPS_API_KEY is empty")

type Config struct {
	Port     string
	Env      string
	LogLevel string

	// GoogleAPIKey is shared read-only by the places and distance matrix clients.
	GoogleAPIKey           string
	PlacesEndpoint         string
	NearbySearchEndpoint   string
	DistanceMatrixEndpoint string

	MaxPages        int
	PageDelay       time.Duration
	MatrixBatchSize int

	CORSAllowedOrigins []string
	JWTSecret          string
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:                   getEnv("PORT", DefaultPort),
		Env:                    getEnv("APP_ENV", "development"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		GoogleAPIKey:           os.Getenv("GOOGLE_MAPS_API_KEY"),
		PlacesEndpoint:         os.Getenv("PLACES_ENDPOINT"),
		NearbySearchEndpoint:   os.Getenv("NEARBY_SEARCH_ENDPOINT"),
		DistanceMatrixEndpoint: os.Getenv("DISTANCE_MATRIX_ENDPOINT"),
		CORSAllowedOrigins:     splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		JWTSecret:              os.Getenv("JWT_SECRET"),
	}

	if cfg.GoogleAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	var err error
	if cfg.MaxPages, err = getInt("SEARCH_MAX_PAGES", DefaultMaxPages); err != nil {
		return nil, err
	}
	if cfg.MaxPages < 1 {
		return nil, fmt.Errorf("SEARCH_MAX_PAGES must be at least 1, got %d", cfg.MaxPages)
	}

	if cfg.PageDelay, err = getDuration("SEARCH_PAGE_DELAY", DefaultPageDelay); err != nil {
		return nil, err
	}
	if cfg.PageDelay < 0 {
		return nil, fmt.Errorf("SEARCH_PAGE_DELAY must not be negative, got %s", cfg.PageDelay)
	}

	if cfg.MatrixBatchSize, err = getInt("MATRIX_BATCH_SIZE", DefaultMatrixBatchSize); err != nil {
		return nil, err
	}
	if cfg.MatrixBatchSize < 1 || cfg.MatrixBatchSize > DefaultMatrixBatchSize {
		return nil, fmt.Errorf("MATRIX_BATCH_SIZE must be between 1 and %d, got %d", DefaultMatrixBatchSize, cfg.MatrixBatchSize)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
