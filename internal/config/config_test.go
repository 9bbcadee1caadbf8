package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("GENERATION_LATENCY", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg := Load()
	if cfg.Port != "8080" || !cfg.IsDevelopment() {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.GenerationLatency != 2*time.Second {
		t.Errorf("expected 2s latency, got %s", cfg.GenerationLatency)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("expected wildcard origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GENERATION_TIMEOUT", "5s")
	t.Setenv("GENERATION_LATENCY", "not-a-duration")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()
	if cfg.GenerationTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.GenerationTimeout)
	}
	if cfg.GenerationLatency != 2*time.Second {
		t.Errorf("bad duration should fall back to default, got %s", cfg.GenerationLatency)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestProductionRequiresAMQP(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("AMQP_URL", "")

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic without AMQP_URL in production")
		}
	}()
	Load()
}
