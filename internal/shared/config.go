package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is loaded once at process start and never mutated afterwards;
// both the API and the syncer receive it by value at construction.
type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	UpstreamBase string
	UpstreamRPS  int
	OTAEndpoint  string
	OTAKey       string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	SyncEvery    time.Duration
	HoldTTL      time.Duration
}

func Load() Config {
	// local .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":3000"),
		MetricsAddr:  env("METRICS_ADDR", ""),
		UpstreamBase: env("API_BASE_URL", "http://localhost:4000"),
		UpstreamRPS:  atoi("UPSTREAM_RPS", 10),
		OTAEndpoint:  env("OTA_ENDPOINT", "https://ota-api-endpoint.com/update"),
		OTAKey:       env("OTA_API_KEY", ""),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		SyncEvery:    time.Duration(atoi("SYNC_EVERY_MINUTES", 60)) * time.Minute,
		HoldTTL:      time.Duration(atoi("BOOKING_HOLD_TTL_SECONDS", 30)) * time.Second,
	}
	if c.OTAKey == "" {
		log.Warn().Msg("OTA_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
