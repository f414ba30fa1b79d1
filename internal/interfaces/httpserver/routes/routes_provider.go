package routes

import (
	"github.com/google/wire"

	"github.com/serpapi/serpapi-mcp/internal/interfaces/httpserver/routes/mcp"
)

// RoutesProvider provides all route dependencies
var RoutesProvider = wire.NewSet(
	mcp.NewSearchMCP,
	mcp.NewMCPRoute,
)
