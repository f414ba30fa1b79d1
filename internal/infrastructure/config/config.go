package config

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the SerpApi MCP gateway
type Config struct {
	// HTTP Server
	Host      string `env:"MCP_HOST" envDefault:"0.0.0.0"`
	Port      string `env:"MCP_PORT" envDefault:"8000"`
	LogLevel  string `env:"MCP_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"MCP_LOG_FORMAT" envDefault:"json"` // json or console

	// SerpApi upstream
	SerpAPIEndpoint string `env:"SERPAPI_ENDPOINT" envDefault:"https://serpapi.com/search"`

	// HTTP Client Performance
	HTTPTimeout     int `env:"SERPAPI_HTTP_TIMEOUT" envDefault:"30"`
	MaxConnsPerHost int `env:"SERPAPI_MAX_CONNS_PER_HOST" envDefault:"50"`
	MaxIdleConns    int `env:"SERPAPI_MAX_IDLE_CONNS" envDefault:"100"`
	IdleConnTimeout int `env:"SERPAPI_IDLE_CONN_TIMEOUT" envDefault:"90"`
}

// LoadConfig loads configuration from a .env file (when present) and the
// environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(os.Getenv("MCP_LOG_LEVEL")) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_LEVEL")); global != "" {
			cfg.LogLevel = global
		}
	}
	if strings.TrimSpace(os.Getenv("MCP_LOG_FORMAT")) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_FORMAT")); global != "" {
			cfg.LogFormat = global
		}
	}
	return cfg, nil
}
