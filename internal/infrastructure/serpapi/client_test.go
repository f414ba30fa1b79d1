package serpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	domainsearch "github.com/serpapi/serpapi-mcp/internal/domain/search"
)

func TestSearchFlattensQueryParams(t *testing.T) {
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"organic_results":[]}`))
	}))
	defer ts.Close()

	client := NewClient(ClientConfig{Endpoint: ts.URL})
	raw, err := client.Search(context.Background(), map[string]any{
		"api_key": "abc123",
		"engine":  "google_light",
		"q":       "coffee in München",
		"num":     10,
		"no_cache": true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"organic_results":[]}` {
		t.Fatalf("expected raw body passthrough, got %q", string(raw))
	}

	if gotQuery.Get("api_key") != "abc123" {
		t.Fatalf("expected api_key param, got %q", gotQuery.Get("api_key"))
	}
	if gotQuery.Get("q") != "coffee in München" {
		t.Fatalf("expected query param, got %q", gotQuery.Get("q"))
	}
	if gotQuery.Get("num") != "10" {
		t.Fatalf("expected numeric param as 10, got %q", gotQuery.Get("num"))
	}
	if gotQuery.Get("no_cache") != "true" {
		t.Fatalf("expected boolean param as true, got %q", gotQuery.Get("no_cache"))
	}
}

func TestSearchMapsHTTPFaultsToUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer ts.Close()

	client := NewClient(ClientConfig{Endpoint: ts.URL})
	_, err := client.Search(context.Background(), map[string]any{"api_key": "abc123"})
	if err == nil {
		t.Fatalf("expected error")
	}

	var upstream *domainsearch.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %T: %v", err, err)
	}
	if upstream.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", upstream.StatusCode)
	}
}

func TestSearchRejectsMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all {`))
	}))
	defer ts.Close()

	client := NewClient(ClientConfig{Endpoint: ts.URL})
	_, err := client.Search(context.Background(), map[string]any{"api_key": "abc123"})
	if err == nil {
		t.Fatalf("expected malformed body error")
	}
}

func TestSearchHonorsContextCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(ClientConfig{Endpoint: ts.URL})
	_, err := client.Search(ctx, map[string]any{"api_key": "abc123"})
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestQueryValueEncodesNestedStructures(t *testing.T) {
	got := queryValue(map[string]any{"lat": 1})
	if got != `{"lat":1}` {
		t.Fatalf("expected JSON-encoded nested value, got %q", got)
	}
	if queryValue(nil) != "" {
		t.Fatalf("expected empty string for nil")
	}
	if queryValue(float64(3)) != "3" {
		t.Fatalf("expected integral float rendered as 3, got %q", queryValue(float64(3)))
	}
}
