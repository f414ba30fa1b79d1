package domain

import (
	"github.com/google/wire"

	domainsearch "github.com/serpapi/serpapi-mcp/internal/domain/search"
)

// DomainProvider provides all domain services
var DomainProvider = wire.NewSet(
	domainsearch.NewSearchService,
)
