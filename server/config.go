package server

import (
	"fmt"

	"github.com/joeshaw/envdecode"
)

// Config holds the server's environment-driven settings
type Config struct {
	// Addr is the address the HTTP server listens on
	Addr string `env:"KLONDIKE_ADDR,default=:8000"`

	// ResultsDB is the path of the SQLite results database
	ResultsDB string `env:"KLONDIKE_RESULTS_DB,default=klondike.db"`

	// AllowedOrigin is the origin allowed to call the API from a browser
	AllowedOrigin string `env:"KLONDIKE_ALLOWED_ORIGIN,default=*"`
}

// LoadConfig reads the configuration from the environment
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
