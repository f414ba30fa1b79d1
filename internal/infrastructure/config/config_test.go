package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Host != "0.0.0.0" {
		t.Fatalf("expected default host, got %q", cfg.Host)
	}
	if cfg.Port != "8000" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.SerpAPIEndpoint != "https://serpapi.com/search" {
		t.Fatalf("expected default endpoint, got %q", cfg.SerpAPIEndpoint)
	}
}

func TestLoadConfigOverridesAndGlobalLogFallback(t *testing.T) {
	t.Setenv("MCP_PORT", "9001")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9001" {
		t.Fatalf("expected overridden port, got %q", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected global LOG_LEVEL fallback, got %q", cfg.LogLevel)
	}
}
