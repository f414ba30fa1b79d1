package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type capture struct {
	called bool
	path   string
	key    string
	hasKey bool
}

func captureHandler(c *capture) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.called = true
		c.path = r.URL.Path
		c.key, c.hasKey = APIKeyFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAPIKeyAuthBearerHeader(t *testing.T) {
	c := &capture{}
	handler := APIKeyAuth(captureHandler(c))

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !c.called {
		t.Fatalf("expected next handler to be invoked")
	}
	if c.key != "abc123" {
		t.Fatalf("expected key abc123, got %q", c.key)
	}
	if c.path != "/mcp" {
		t.Fatalf("expected path to be left unmodified, got %q", c.path)
	}
}

func TestAPIKeyAuthBearerWinsOverPath(t *testing.T) {
	c := &capture{}
	handler := APIKeyAuth(captureHandler(c))

	req := httptest.NewRequest(http.MethodPost, "/XYZ/mcp/anything", nil)
	req.Header.Set("Authorization", "Bearer  abc123  ")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if c.key != "abc123" {
		t.Fatalf("expected trimmed header key, got %q", c.key)
	}
	if c.path != "/XYZ/mcp/anything" {
		t.Fatalf("expected path untouched when key came from header, got %q", c.path)
	}
}

func TestAPIKeyAuthPathExtractionRewritesPath(t *testing.T) {
	c := &capture{}
	handler := APIKeyAuth(captureHandler(c))

	req := httptest.NewRequest(http.MethodPost, "/XYZ/mcp/anything/else", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if c.key != "XYZ" {
		t.Fatalf("expected key XYZ, got %q", c.key)
	}
	if c.path != "/mcp/anything/else" {
		t.Fatalf("expected rewritten canonical path, got %q", c.path)
	}
}

func TestAPIKeyAuthEmptyBearerFallsThroughToPath(t *testing.T) {
	c := &capture{}
	handler := APIKeyAuth(captureHandler(c))

	req := httptest.NewRequest(http.MethodPost, "/XYZ/mcp", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if c.key != "XYZ" {
		t.Fatalf("expected path extraction after blank bearer, got %q", c.key)
	}
	if c.path != "/mcp" {
		t.Fatalf("expected rewritten path, got %q", c.path)
	}
}

func TestAPIKeyAuthMissingKeyReturns401(t *testing.T) {
	c := &capture{}
	handler := APIKeyAuth(captureHandler(c))

	for _, target := range []string{"/mcp", "/nope", "/only"} {
		req := httptest.NewRequest(http.MethodPost, target, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if c.called {
			t.Fatalf("%s: expected pipeline to short-circuit", target)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", target, rec.Code)
		}

		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: invalid JSON body: %v", target, err)
		}
		if !strings.Contains(body["error"], "Missing API key") {
			t.Fatalf("%s: unexpected error message: %q", target, body["error"])
		}
	}
}

func TestAPIKeyAuthHealthcheckBypass(t *testing.T) {
	c := &capture{}
	handler := APIKeyAuth(captureHandler(c))

	req := httptest.NewRequest(http.MethodGet, HealthcheckPath, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !c.called {
		t.Fatalf("expected healthcheck to bypass authentication")
	}
	if c.hasKey {
		t.Fatalf("expected no key on healthcheck requests")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAPIKeyAuthSecondSegmentMustBeMCP(t *testing.T) {
	c := &capture{}
	handler := APIKeyAuth(captureHandler(c))

	req := httptest.NewRequest(http.MethodPost, "/XYZ/other/path", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if c.called {
		t.Fatalf("expected rejection when second segment is not mcp")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
