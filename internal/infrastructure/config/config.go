package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session Session
	Mongo   MongoConfig
	Redis   RedisConfig
	Public  PublicConfig
}

// Session controls the auth gate and the session store backend.
type Session struct {
	// Timeout is the inactivity window; elapsed > Timeout expires the session.
	Timeout time.Duration `env:"SESSION_TIMEOUT, default=30m"`
	// Backend selects the store: "memory" (single process) or "redis" (shared).
	Backend      string `env:"SESSION_BACKEND, default=memory"`
	CookieName   string `env:"SESSION_COOKIE,  default=portal_session"`
	CookieSecure bool   `env:"COOKIE_SECURE,   default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=admin_portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// PublicConfig limits the anonymous schedule endpoint.
type PublicConfig struct {
	RateLimit float64 `env:"PUBLIC_RATE_LIMIT, default=5"`
	RateBurst int     `env:"PUBLIC_RATE_BURST, default=10"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
