package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	BaseURL  string        `env:"MARKETPLACE_BASE_URL, default=http://localhost:8000"`
	Timeout  time.Duration `env:"MARKETPLACE_HTTP_TIMEOUT, default=5s"`
	LogLevel string        `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	DevAPI  DevAPIConfig
}

type SessionConfig struct {
	// Backend selects the session store implementation: "file" or "redis".
	Backend string `env:"SESSION_BACKEND, default=file"`
	Path    string `env:"SESSION_PATH, default=.fooddelivery/session.json"`

	Redis RedisConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
	Key  string `env:"REDIS_SESSION_KEY, default=marketplace:session"`
}

type DevAPIConfig struct {
	Port      string        `env:"DEVAPI_PORT, default=8000"`
	JWTSecret string        `env:"DEVAPI_JWT_SECRET, default=devapi-secret"`
	TokenTTL  time.Duration `env:"DEVAPI_TOKEN_TTL, default=24h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
