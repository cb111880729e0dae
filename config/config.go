package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/epeers/riskprofile/internal/reference"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	PGURL               string
	Port                string
	LogLevel            log.Level
	ScenarioFile        string
	ToleranceJitterSeed *int64
	DefaultBenchmark    string
	SinglePositionLimit float64
	SectorLimit         float64
	Top5Limit           float64
	ProfileCacheTTL     time.Duration
}

// Load reads configuration from environment variables. A .env file in the working
// directory is read first; variables already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	pgURL := os.Getenv("PG_URL")
	if pgURL == "" {
		return nil, fmt.Errorf("PG_URL environment variable is required")
	}

	cfg := &Config{
		PGURL:            pgURL,
		Port:             getEnv("PORT", "8080"),
		ScenarioFile:     os.Getenv("SCENARIO_FILE"),
		DefaultBenchmark: getEnv("DEFAULT_BENCHMARK", "SPY"),
	}

	var err error
	if cfg.LogLevel, err = log.ParseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if s := os.Getenv("TOLERANCE_JITTER_SEED"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TOLERANCE_JITTER_SEED %q: %w", s, err)
		}
		cfg.ToleranceJitterSeed = &seed
	}

	limits := []struct {
		name string
		def  float64
		dst  *float64
	}{
		{"SINGLE_POSITION_LIMIT", 10, &cfg.SinglePositionLimit},
		{"SECTOR_LIMIT", 25, &cfg.SectorLimit},
		{"TOP5_LIMIT", 50, &cfg.Top5Limit},
	}
	for _, l := range limits {
		v, err := getPercent(l.name, l.def)
		if err != nil {
			return nil, err
		}
		*l.dst = v
	}

	benchmark, ok := reference.LookupBenchmark(cfg.DefaultBenchmark)
	if !ok {
		return nil, fmt.Errorf("invalid DEFAULT_BENCHMARK %q: not a known benchmark", cfg.DefaultBenchmark)
	}
	cfg.DefaultBenchmark = benchmark.Symbol

	ttl := getEnv("PROFILE_CACHE_TTL", "5m")
	if cfg.ProfileCacheTTL, err = time.ParseDuration(ttl); err != nil {
		return nil, fmt.Errorf("invalid PROFILE_CACHE_TTL %q: %w", ttl, err)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getPercent parses a limit in (0, 100]
func getPercent(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	if v <= 0 || v > 100 {
		return 0, fmt.Errorf("invalid %s %q: must be in (0, 100]", key, s)
	}
	return v, nil
}
