package httpserver

import (
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/serpapi/serpapi-mcp/internal/infrastructure/config"
	"github.com/serpapi/serpapi-mcp/internal/interfaces/httpserver/middlewares"
	"github.com/serpapi/serpapi-mcp/internal/interfaces/httpserver/routes/mcp"
)

// ServiceName is reported by the healthcheck endpoint.
const ServiceName = "SerpApi MCP Server"

type HTTPServer struct {
	router   *gin.Engine
	config   *config.Config
	mcpRoute *mcp.MCPRoute
}

func NewHTTPServer(
	cfg *config.Config,
	mcpRoute *mcp.MCPRoute,
) *HTTPServer {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger())
	router.Use(middlewares.CORS())
	router.Use(middlewares.MetricsRecorder())

	s := &HTTPServer{
		router:   router,
		config:   cfg,
		mcpRoute: mcpRoute,
	}
	s.setupRoutes()
	return s
}

func (s *HTTPServer) setupRoutes() {
	// Health check endpoint (unauthenticated)
	s.router.GET(middlewares.HealthcheckPath, func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   ServiceName,
		})
	})

	// Prometheus metrics (unauthenticated)
	s.router.GET(middlewares.MetricsPath, gin.WrapH(promhttp.Handler()))

	// MCP endpoint; the API key middleware has already normalized
	// /{key}/mcp paths to /mcp before gin routing runs.
	s.mcpRoute.RegisterRouter(s.router)
}

// Handler returns the full request pipeline: API key extraction wrapping the
// gin router.
func (s *HTTPServer) Handler() http.Handler {
	return middlewares.APIKeyAuth(s.router)
}

func (s *HTTPServer) Run() error {
	addr := net.JoinHostPort(s.config.Host, s.config.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	return srv.ListenAndServe()
}
