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

	// BasePath is the prefix all user routes hang off.
	BasePath string `env:"BASE_PATH, default=/api/users"`

	// BcryptCost is the fixed password-hashing work factor. Zero selects
	// the library default; out-of-range values are clamped by the hasher.
	BcryptCost int `env:"BCRYPT_COST, default=0"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=user_management"`
}

type RedisConfig struct {
	// Addr empty disables Redis entirely (no listing cache).
	Addr         string        `env:"REDIS_ADDR, default=localhost:6379"`
	DB           int           `env:"REDIS_DB,   default=0"`
	PageCacheTTL time.Duration `env:"PAGE_CACHE_TTL, default=30s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
