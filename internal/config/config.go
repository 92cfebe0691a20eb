package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all server settings, loaded from the environment.
type Config struct {
	Addr         string        `env:"COURIER_ADDR" envDefault:":8080"`
	DBPath       string        `env:"COURIER_DB" envDefault:"courier.db"`
	JWTSecret    string        `env:"COURIER_JWT_SECRET,required,notEmpty"`
	TokenTTL     time.Duration `env:"COURIER_TOKEN_TTL" envDefault:"24h"`
	UploadDir    string        `env:"COURIER_UPLOAD_DIR" envDefault:"uploads"`
	OfflineGrace time.Duration `env:"COURIER_OFFLINE_GRACE" envDefault:"5s"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
