package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// HealthcheckPath is exempt from API key extraction.
const HealthcheckPath = "/healthcheck"

// MetricsPath is exempt from API key extraction.
const MetricsPath = "/metrics"

const bearerPrefix = "Bearer "

const missingKeyMessage = `{"error": "Missing API key. Use path format /{API_KEY}/mcp or Authorization: Bearer {API_KEY} header"}`

type apiKeyContextKey struct{}

// APIKeyFromContext retrieves the per-request API key resolved by APIKeyAuth.
func APIKeyFromContext(ctx context.Context) (string, bool) {
	if val := ctx.Value(apiKeyContextKey{}); val != nil {
		if key, ok := val.(string); ok && key != "" {
			return key, true
		}
	}
	return "", false
}

// WithAPIKey stores a resolved API key on the context. Exported for tests and
// in-process tool invocation.
func WithAPIKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, apiKeyContextKey{}, key)
}

// APIKeyAuth resolves exactly one API key per inbound request, or rejects
// with 401. It must wrap the router (rather than run as a gin middleware)
// because path-based extraction rewrites the routing path before dispatch:
// /{key}/mcp/... becomes /mcp/... so downstream routing sees the canonical
// path.
//
// Extraction precedence: an "Authorization: Bearer <key>" header wins; absent
// that, the leading path segment of a /{key}/mcp/... path is consumed. A
// bearer header with an empty key after trimming falls through to path
// extraction.
func APIKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == HealthcheckPath || r.URL.Path == MetricsPath {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := ""
		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, bearerPrefix) {
			apiKey = strings.TrimSpace(strings.TrimPrefix(auth, bearerPrefix))
		}

		if apiKey == "" {
			segments := splitPath(r.URL.Path)
			if len(segments) >= 2 && segments[1] == "mcp" {
				apiKey = segments[0]

				newPath := "/" + strings.Join(segments[1:], "/")
				r.URL.Path = newPath
				r.URL.RawPath = ""
			}
		}

		if apiKey == "" {
			log.Warn().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request rejected: no API key resolvable")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(missingKeyMessage))
			return
		}

		ctx := WithAPIKey(r.Context(), apiKey)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// splitPath returns the non-empty segments of a URL path.
func splitPath(path string) []string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
