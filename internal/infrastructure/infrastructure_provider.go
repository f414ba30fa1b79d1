package infrastructure

import (
	"time"

	"github.com/google/wire"

	"github.com/serpapi/serpapi-mcp/internal/domain/search"
	"github.com/serpapi/serpapi-mcp/internal/infrastructure/config"
	serpapiclient "github.com/serpapi/serpapi-mcp/internal/infrastructure/serpapi"
)

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// SerpApi client
	ProvideSerpClient,
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideSerpClient provides the SerpApi client
func ProvideSerpClient(cfg *config.Config) search.SerpClient {
	return serpapiclient.NewClient(serpapiclient.ClientConfig{
		Endpoint:        cfg.SerpAPIEndpoint,
		HTTPTimeout:     time.Duration(cfg.HTTPTimeout) * time.Second,
		MaxConnsPerHost: cfg.MaxConnsPerHost,
		MaxIdleConns:    cfg.MaxIdleConns,
		IdleConnTimeout: time.Duration(cfg.IdleConnTimeout) * time.Second,
	})
}
