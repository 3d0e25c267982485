// Package config overlays environment variables onto the serve command's
// flag defaults.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Server holds the plan API server configuration. Store selection and
// debug logging are bound to the top-level flags (ENGAGE_DB,
// ENGAGE_DEBUG) through kong, so only the listener knobs live here.
type Server struct {
	Addr         string        `env:"ENGAGE_ADDR"`
	ReadTimeout  time.Duration `env:"ENGAGE_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"ENGAGE_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout  time.Duration `env:"ENGAGE_IDLE_TIMEOUT" envDefault:"60s"`
}

// LoadServer reads the environment into a Server config. Values left
// empty fall back to the caller's flag values.
func LoadServer() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, err
	}
	return cfg, nil
}
