package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string `env:"PORT,         default=8080"`
	Env         string `env:"ENV,          default=development"`
	JWTSecret   string `env:"JWT_SECRET"`
	LogLevel    string `env:"LOG_LEVEL,    default=info"`
	StoreDriver string `env:"STORE_DRIVER, default=mongo"` // mongo | memory

	Mongo MongoConfig
	Redis RedisConfig
	Seed  SeedConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=enrollment"`
}

// RedisConfig configures the optional login-lockout store. An empty Addr
// disables Redis entirely.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// SeedConfig holds the default identities created when the store is empty at
// boot. The defaults match the original service; override them anywhere that
// is not a throwaway environment.
type SeedConfig struct {
	AdminEmail      string `env:"SEED_ADMIN_EMAIL,      default=admin@test.com"`
	AdminPassword   string `env:"SEED_ADMIN_PASSWORD,   default=test"`
	StudentEmail    string `env:"SEED_STUDENT_EMAIL,    default=student@test.com"`
	StudentPassword string `env:"SEED_STUDENT_PASSWORD, default=test"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
