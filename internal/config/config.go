// README: Config loader with env defaults for HTTP, planner backend, Redis, and Postgres.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTP struct {
		Addr         string
		AllowOrigins []string
	}
	Backend struct {
		BaseURL string
		Timeout time.Duration
	}
	Redis struct {
		Addr string
	}
	DB struct {
		DSN string
	}
	Log struct {
		Mode string
	}
	Speech struct {
		Continuous bool
	}
}

func Load() (Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("VOYAGE_HTTP_ADDR", ":8080")
	cfg.HTTP.AllowOrigins = []string{envOrDefault("VOYAGE_CORS_ORIGIN", "http://localhost:3000")}
	cfg.Backend.BaseURL = envOrDefault("VOYAGE_BACKEND_URL", "http://localhost:8000")
	cfg.Backend.Timeout = time.Duration(envOrDefaultInt("VOYAGE_BACKEND_TIMEOUT_SECONDS", 60)) * time.Second
	cfg.Redis.Addr = envOrDefault("VOYAGE_REDIS_ADDR", "")
	cfg.DB.DSN = envOrDefault("VOYAGE_DB_DSN", "")
	cfg.Log.Mode = envOrDefault("VOYAGE_LOG_MODE", "dev")
	cfg.Speech.Continuous = envOrDefaultBool("VOYAGE_SPEECH_CONTINUOUS", false)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
