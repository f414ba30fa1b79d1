//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/serpapi/serpapi-mcp/internal/domain"
	"github.com/serpapi/serpapi-mcp/internal/infrastructure"
	"github.com/serpapi/serpapi-mcp/internal/interfaces"
	"github.com/serpapi/serpapi-mcp/internal/interfaces/httpserver/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.DomainProvider,
		infrastructure.InfrastructureProvider,
		routes.RoutesProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
