package configs

import (
	"testing"
	"time"
)

func TestLoadConfig_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("SEED_DEMO", "false")
	t.Setenv("KV_BACKEND", "memory")

	cfg := LoadConfig()
	if cfg.Port != "9090" || cfg.JWTTTL != 2*time.Hour || cfg.SeedDemo || cfg.KVBackend != "memory" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("default driver = %q", cfg.DBDriver)
	}
}

func TestLoadConfig_BadValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "soon")
	t.Setenv("SEED_DEMO", "maybe")

	cfg := LoadConfig()
	if cfg.JWTTTL != 24*time.Hour || !cfg.SeedDemo {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestDialectorFor(t *testing.T) {
	if _, err := dialectorFor("oracle", ""); err == nil {
		t.Error("unsupported driver accepted")
	}
	if _, err := dialectorFor("mysql", "not a dsn"); err == nil {
		t.Error("bad mysql dsn accepted")
	}
	d, err := dialectorFor("sqlite", ":memory:")
	if err != nil || d.Name() != "sqlite" {
		t.Errorf("sqlite: %v", err)
	}
}
