package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// APIPrefix is the route prefix every versioned endpoint hangs off.
	APIPrefix string `env:"API_PREFIX, default=/xx-api/v1"`

	// DataDir holds uploaded resources and backup snapshots.
	DataDir string `env:"DATA_DIR, default=./data"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	// AttemptStore selects where failed sign-in counters live:
	// "memory" (single instance) or "redis" (shared across replicas).
	AttemptStore     string        `env:"ATTEMPT_STORE, default=memory"`
	LockoutThreshold int           `env:"LOCKOUT_THRESHOLD, default=5"`
	LockoutWindow    time.Duration `env:"LOCKOUT_WINDOW, default=15m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=asset_admin"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
