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
	LogLevel       string
	HTTPAddr       string
	MetricsAddr    string
	RequestTimeout time.Duration
	TrustProxy     bool
	CatalogSource  string // memory|mysql
	MySQLDSN       string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	CacheTTL       time.Duration
	SubmitDelay    time.Duration
	AdminUser      string
	AdminPassHash  string
	JWTSecret      string
	JWTTTL         time.Duration
	AMQPURL        string
	AMQPExchange   string
	SeedWorkers    int
	RateLimitRPS   float64
	RateBurst      int
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real env vars win.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		LogLevel:       env("LOG_LEVEL", "info"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		TrustProxy:     env("TRUST_PROXY_HEADERS", "false") == "true",
		CatalogSource:  env("CATALOG_SOURCE", "memory"),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/checkin?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		SubmitDelay:    time.Duration(atoi("SUBMIT_DELAY_MS", 1500)) * time.Millisecond,
		AdminUser:      env("ADMIN_USER", "admin"),
		AdminPassHash:  env("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:      env("JWT_SECRET", ""),
		JWTTTL:         time.Duration(atoi("JWT_TTL_MINUTES", 60)) * time.Minute,
		AMQPURL:        env("AMQP_URL", ""),
		AMQPExchange:   env("AMQP_EXCHANGE", "bookings"),
		SeedWorkers:    atoi("SEED_WORKERS", 4),
		RateLimitRPS:   atof("RATE_LIMIT_RPS", 2),
		RateBurst:      atoi("RATE_LIMIT_BURST", 5),
	}
	if c.AdminPassHash == "" || c.JWTSecret == "" {
		log.Warn().Msg("ADMIN_PASSWORD_HASH or JWT_SECRET is empty; admin back-office disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
