package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Auth.Mode != AuthModeShared {
		t.Errorf("auth mode = %q, want shared", cfg.Auth.Mode)
	}
	if cfg.Auth.SharedSecret != "password" {
		t.Errorf("shared secret = %q, want the demo default", cfg.Auth.SharedSecret)
	}
	if !cfg.Seed {
		t.Error("seeding disabled by default")
	}

	// Reads are shorter than writes by default.
	if cfg.Latency.Read() >= cfg.Latency.Write() {
		t.Errorf("read delay %v not shorter than write delay %v", cfg.Latency.Read(), cfg.Latency.Write())
	}
	if cfg.Latency.Auth() != time.Second {
		t.Errorf("auth delay = %v, want 1s", cfg.Latency.Auth())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_MODE", "bcrypt")
	t.Setenv("LATENCY_READ_MS", "0")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.Mode != AuthModeBcrypt {
		t.Errorf("auth mode = %q, want bcrypt", cfg.Auth.Mode)
	}
	if cfg.Latency.Read() != 0 {
		t.Errorf("read delay = %v, want 0", cfg.Latency.Read())
	}
	if cfg.App.Addr() != "0.0.0.0:9090" {
		t.Errorf("addr = %q, want 0.0.0.0:9090", cfg.App.Addr())
	}
}

func TestLoadRejectsUnknownAuthMode(t *testing.T) {
	t.Setenv("AUTH_MODE", "oauth")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted an unknown AUTH_MODE")
	}
}
