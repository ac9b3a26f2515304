package config

import (
	"testing"
	"time"
)

func TestLoadFromDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("Addr() = %q, want %q", cfg.Addr(), ":8080")
	}
	if cfg.CatalogPath != "" {
		t.Fatalf("CatalogPath = %q, want empty", cfg.CatalogPath)
	}
	if !cfg.AnalyticsEnabled {
		t.Fatalf("AnalyticsEnabled = false, want true")
	}
	if cfg.AnalyticsRetention != 8760*time.Hour {
		t.Fatalf("AnalyticsRetention = %v, want %v", cfg.AnalyticsRetention, 8760*time.Hour)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
	if cfg.Release() {
		t.Fatalf("Release() = true, want false")
	}
}

func TestLoadFromOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(map[string]string{
		"PORT":                 ":9090",
		"GIN_MODE":             "release",
		"CATALOG_PATH":         "catalog.yaml",
		"ANALYTICS_ENABLED":    "false",
		"CORS_ALLOWED_ORIGINS": "http://a.test, ,http://b.test",
		"OTEL_ENABLED":         "true",
	})
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("Port = %q, want %q", cfg.Port, "9090")
	}
	if !cfg.Release() {
		t.Fatalf("Release() = false, want true")
	}
	if cfg.CatalogPath != "catalog.yaml" {
		t.Fatalf("CatalogPath = %q, want %q", cfg.CatalogPath, "catalog.yaml")
	}
	if cfg.AnalyticsEnabled {
		t.Fatalf("AnalyticsEnabled = true, want false")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("AllowedOrigins = %v, want [http://a.test http://b.test]", cfg.AllowedOrigins)
	}
	if !cfg.TracingEnabled {
		t.Fatalf("TracingEnabled = false, want true")
	}
}

func TestLoadFromRejectsBadDuration(t *testing.T) {
	t.Parallel()

	if _, err := LoadFrom(map[string]string{"SHUTDOWN_TIMEOUT": "soon"}); err == nil {
		t.Fatalf("LoadFrom() error = nil, want parse error")
	}
}

func TestLoadFromUnknownGinModeFallsBackToDebug(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(map[string]string{"GIN_MODE": "Turbo"})
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.GinMode != "debug" {
		t.Fatalf("GinMode = %q, want debug", cfg.GinMode)
	}
}
