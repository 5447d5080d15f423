// Package config loads the process configuration from environment variables.
// It is parsed once at startup and treated as immutable afterwards.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full set of runtime settings.
type Config struct {
	Addr            string `env:"ADDR" envDefault:":8080"`
	DBSource        string `env:"DB_SOURCE,required"`
	RedisAddr       string `env:"REDIS_ADDR"` // empty disables the task cache
	JWTSecret       string `env:"JWT_SECRET,required"`
	TokenExpireDays int    `env:"TOKEN_EXPIRE_DAYS" envDefault:"7"`
	BcryptCost      int    `env:"BCRYPT_COST" envDefault:"10"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
