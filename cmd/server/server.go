package main

import (
	"net"

	"github.com/rs/zerolog/log"

	"github.com/serpapi/serpapi-mcp/internal/infrastructure/config"
	"github.com/serpapi/serpapi-mcp/internal/infrastructure/logger"
	_ "github.com/serpapi/serpapi-mcp/internal/infrastructure/metrics" // Register Prometheus metrics
	"github.com/serpapi/serpapi-mcp/internal/interfaces/httpserver"
)

type Application struct {
	httpServer *httpserver.HTTPServer
}

func init() {
	// Initialize logger with default settings
	logger.Init("info", "json")
}

func (app *Application) Start() error {
	return app.httpServer.Run()
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// Re-initialize logger with config settings
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("host", cfg.Host).
		Str("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Msg("Starting SerpApi MCP gateway")

	// Create application with dependency injection
	application, err := CreateApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create application")
	}

	log.Info().Str("address", net.JoinHostPort(cfg.Host, cfg.Port)).Msg("Server listening")
	if err := application.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
