package mcp

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/serpapi/serpapi-mcp/internal/interfaces/httpserver/responses"
	"github.com/serpapi/serpapi-mcp/utils/platformerrors"
)

var allowedMCPMethods = map[string]bool{
	// Initialization / handshake
	"initialize":                true,
	"notifications/initialized": true,
	"ping":                      true,

	// Tools
	"tools/list": true,
	"tools/call": true,
}

// MCPRoute exposes the MCP server over streamable HTTP at /mcp.
type MCPRoute struct {
	searchMCP   *SearchMCP
	mcpServer   *mcp.Server
	httpHandler http.Handler
}

func NewMCPRoute(searchMCP *SearchMCP) *MCPRoute {
	impl := &mcp.Implementation{
		Name:    "serpapi-mcp-server",
		Version: "1.0.0",
	}
	server := mcp.NewServer(impl, nil)

	searchMCP.RegisterTools(server)

	return &MCPRoute{
		searchMCP: searchMCP,
		mcpServer: server,
		httpHandler: mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
			return server
		}, &mcp.StreamableHTTPOptions{Stateless: true}),
	}
}

func (route *MCPRoute) RegisterRouter(router gin.IRoutes) {
	router.POST("/mcp",
		MCPMethodGuard(allowedMCPMethods),
		route.serveMCP,
	)
}

// serveMCP streams Model Context Protocol responses using the underlying MCP server.
func (route *MCPRoute) serveMCP(reqCtx *gin.Context) {
	// Force acceptable content types for go-sdk streamable handler even if client omits Accept.
	reqCtx.Request.Header.Set("Accept", "application/json, text/event-stream")
	route.httpHandler.ServeHTTP(reqCtx.Writer, reqCtx.Request)
}

func MCPMethodGuard(allowedMethods map[string]bool) gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		bodyBytes, err := io.ReadAll(reqCtx.Request.Body)
		if err != nil {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeInternal, "failed to read MCP request body", "6a3e52d7-9f04-4a4e-8c1d-0b2f6e481a35")
			return
		}
		_ = reqCtx.Request.Body.Close()

		if len(bodyBytes) == 0 {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "empty MCP request body", "c4f1d6b8-2e7a-45d3-9b06-8a51c0f3e972")
			return
		}

		reqCtx.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var payload struct {
			Method string `json:"method"`
		}

		if err := json.Unmarshal(bodyBytes, &payload); err != nil {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid MCP request payload", "2b9e7c40-5d18-4f6a-a3c2-71e84b0d9f56")
			return
		}

		if payload.Method == "" {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "missing method field in MCP request", "e8d25a13-47cb-4f90-b6a8-3c09d1e7f264")
			return
		}

		if !allowedMethods[payload.Method] {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "unsupported MCP method: "+payload.Method, "91c6b3f8-0d4e-4a72-85b9-f2e7a60c1d43")
			return
		}

		reqCtx.Next()
	}
}
