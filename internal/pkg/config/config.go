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

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	// JWTSecret signs every issued credential. Rotating it invalidates
	// all outstanding credentials at once.
	JWTSecret   string        `env:"JWT_SECRET, required"`
	TokenTTL    time.Duration `env:"JWT_TTL,    default=24h"`
	BcryptCost  int           `env:"BCRYPT_COST, default=10"`
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	// AttemptWindow is how long failed-login counters live before the
	// throttle forgets them.
	AttemptWindow time.Duration `env:"LOGIN_ATTEMPT_WINDOW, default=15m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=devlink"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
