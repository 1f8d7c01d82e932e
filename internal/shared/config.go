package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	StoreBackend   string // redis | mysql
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	MySQLDSN       string
	RateLimitRPS   int
	RateLimitBurst int
	SeedWorkers    int
	ShutdownGrace  time.Duration
}

func Load() Config {
	// .env is optional; real environments set variables directly.
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
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ":9100"),
		StoreBackend:   env("STORE_BACKEND", "redis"),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisDB:        atoi("REDIS_DB", 0),
		RedisPass:      env("REDIS_PASSWORD", ""),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/agendesaude?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RateLimitRPS:   atoi("RATE_LIMIT_RPS", 10),
		RateLimitBurst: atoi("RATE_LIMIT_BURST", 20),
		SeedWorkers:    atoi("SEED_WORKERS", 4),
		ShutdownGrace:  time.Duration(atoi("SHUTDOWN_GRACE_SECONDS", 10)) * time.Second,
	}
	if c.StoreBackend != "redis" && c.StoreBackend != "mysql" {
		log.Warn().Str("backend", c.StoreBackend).Msg("unknown STORE_BACKEND, falling back to redis")
		c.StoreBackend = "redis"
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
