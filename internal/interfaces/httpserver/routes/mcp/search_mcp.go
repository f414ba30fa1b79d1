package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	domainsearch "github.com/serpapi/serpapi-mcp/internal/domain/search"
	"github.com/serpapi/serpapi-mcp/internal/infrastructure/metrics"
	"github.com/serpapi/serpapi-mcp/internal/interfaces/httpserver/middlewares"
)

// ToolKeySearch is the published name of the search tool.
const ToolKeySearch = "search"

const searchToolDescription = "Universal search tool supporting all SerpApi engines and result types. " +
	"params carries engine-specific parameters (q, engine, location, num, ...); engine defaults to google_light. " +
	"mode selects the response shape: 'complete' returns the full JSON response, 'compact' strips metadata and pagination fields. " +
	"Returns a JSON string with search results or an error message."

// SearchArgs defines the arguments for the search tool
type SearchArgs struct {
	Params map[string]any `json:"params,omitempty"`
	Mode   string         `json:"mode,omitempty"`
}

// SearchMCP handles MCP tool registration for search tooling.
type SearchMCP struct {
	searchService *domainsearch.SearchService
}

// NewSearchMCP creates a new search MCP handler.
func NewSearchMCP(searchService *domainsearch.SearchService) *SearchMCP {
	return &SearchMCP{searchService: searchService}
}

// RegisterTools registers the search tool with the MCP server
func (s *SearchMCP) RegisterTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolKeySearch,
		Description: searchToolDescription,
	}, func(ctx context.Context, req *mcp.CallToolRequest, input SearchArgs) (*mcp.CallToolResult, any, error) {
		startTime := time.Now()

		mode := domainsearch.ResponseMode(input.Mode)
		if input.Mode == "" {
			mode = domainsearch.ModeComplete
		}

		apiKey, _ := middlewares.APIKeyFromContext(ctx)

		log.Info().
			Str("tool", ToolKeySearch).
			Str("mode", string(mode)).
			Int("param_count", len(input.Params)).
			Msg("MCP tool call received")

		result := s.searchService.Execute(ctx, apiKey, input.Params, mode)

		status := "success"
		if strings.HasPrefix(result, "Error:") {
			status = "error"
			log.Warn().
				Str("tool", ToolKeySearch).
				Str("result", result).
				Msg("search tool returned an error result")
		}
		metrics.RecordToolCall(ToolKeySearch, status, time.Since(startTime).Seconds())

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: result}},
		}, nil, nil
	})
}
