package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	domainsearch "github.com/serpapi/serpapi-mcp/internal/domain/search"
	"github.com/serpapi/serpapi-mcp/internal/infrastructure/metrics"
)

const defaultEndpoint = "https://serpapi.com/search"

// ClientConfig captures the knobs exposed to operators for the SerpApi client.
type ClientConfig struct {
	Endpoint string

	// HTTP Client Settings
	HTTPTimeout     time.Duration
	MaxConnsPerHost int
	MaxIdleConns    int
	IdleConnTimeout time.Duration
}

// Client implements domainsearch.SerpClient against the hosted SerpApi.
type Client struct {
	cfg  ClientConfig
	http *resty.Client
}

var _ domainsearch.SerpClient = (*Client)(nil)

// NewClient wires a pooled HTTP client for the SerpApi endpoint.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}

	httpTimeout := 30 * time.Second
	if cfg.HTTPTimeout > 0 {
		httpTimeout = cfg.HTTPTimeout
	}

	maxIdleConns := cfg.MaxIdleConns
	if maxIdleConns == 0 {
		maxIdleConns = 100
	}
	maxConnsPerHost := cfg.MaxConnsPerHost
	if maxConnsPerHost == 0 {
		maxConnsPerHost = 50
	}
	idleConnTimeout := cfg.IdleConnTimeout
	if idleConnTimeout == 0 {
		idleConnTimeout = 90 * time.Second
	}
	transport := &http.Transport{
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: 20,
		MaxConnsPerHost:     maxConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	httpClient := resty.New().
		SetHeader("User-Agent", "SerpApi-MCP-Gateway/1.0").
		SetHeader("Accept", "application/json").
		SetTimeout(httpTimeout).
		SetRetryCount(0).
		SetTransport(transport)

	return &Client{cfg: cfg, http: httpClient}
}

// Search issues one synchronous GET to SerpApi with the assembled parameters.
// No retry: a failure surfaces immediately for classification by the caller.
func (c *Client) Search(ctx context.Context, params map[string]any) (json.RawMessage, error) {
	startTime := time.Now()
	status := "success"
	defer func() {
		metrics.RecordUpstreamLatency(status, time.Since(startTime).Seconds())
	}()

	req := c.http.R().SetContext(ctx)
	for key, val := range params {
		req.SetQueryParam(key, queryValue(val))
	}

	resp, err := req.Get(c.cfg.Endpoint)
	if err != nil {
		status = "error"
		log.Error().Err(err).Str("service", "serpapi").Str("endpoint", c.cfg.Endpoint).Msg("failed to query SerpApi")
		return nil, fmt.Errorf("failed to query SerpApi: %w", err)
	}

	if resp.IsError() {
		status = "error"
		log.Error().Int("status", resp.StatusCode()).Str("service", "serpapi").Str("response", resp.String()).Msg("SerpApi returned an error")
		return nil, &domainsearch.UpstreamError{
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
		}
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		status = "error"
		log.Error().Str("service", "serpapi").Msg("SerpApi returned a malformed JSON body")
		return nil, fmt.Errorf("SerpApi returned a malformed JSON body")
	}

	return json.RawMessage(body), nil
}

// queryValue flattens a parameter value into its query-string form. Nested
// structures are JSON-encoded; scalars pass through as written.
func queryValue(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
}
