package config

import (
	"testing"
	"time"
)

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("ENGAGE_ADDR", "")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != "" {
		t.Errorf("addr = %q, want empty when unset", cfg.Addr)
	}
	if cfg.ReadTimeout != 10*time.Second || cfg.WriteTimeout != 10*time.Second {
		t.Errorf("timeouts = %v/%v, want 10s defaults", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if cfg.IdleTimeout != 60*time.Second {
		t.Errorf("idle timeout = %v, want 60s default", cfg.IdleTimeout)
	}
}

func TestLoadServerFromEnvironment(t *testing.T) {
	t.Setenv("ENGAGE_ADDR", "0.0.0.0:9000")
	t.Setenv("ENGAGE_READ_TIMEOUT", "30s")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != "0.0.0.0:9000" {
		t.Errorf("addr = %q, want 0.0.0.0:9000", cfg.Addr)
	}
	if cfg.ReadTimeout != 30*time.Second {
		t.Errorf("read timeout = %v, want 30s", cfg.ReadTimeout)
	}
}

func TestLoadServerRejectsBadDuration(t *testing.T) {
	t.Setenv("ENGAGE_READ_TIMEOUT", "not-a-duration")
	if _, err := LoadServer(); err == nil {
		t.Error("expected error for unparseable duration")
	}
}
