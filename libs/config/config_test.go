package config

import (
	"testing"
	"time"
)

type testConfig struct {
	HTTP struct {
		Port string `yaml:"port" env:"TESTCFG_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`
	Cache struct {
		TTL time.Duration `yaml:"ttl" env:"TESTCFG_CACHE_TTL"`
	} `yaml:"cache"`
	Workers int `yaml:"workers" env:"TESTCFG_WORKERS"`
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TESTCFG_HTTP_PORT", "9999")
	t.Setenv("TESTCFG_WORKERS", "8")
	t.Setenv("TESTCFG_CACHE_TTL", "90s")
	t.Setenv("DATABASE_DSN", "postgres://localhost/test")

	cfg := &testConfig{}
	cfg.HTTP.Port = "8080"

	if err := Load(cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Port != "9999" {
		t.Fatalf("explicit env tag not applied: %q", cfg.HTTP.Port)
	}
	if cfg.Workers != 8 {
		t.Fatalf("int field not applied: %d", cfg.Workers)
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Fatalf("duration field not applied: %v", cfg.Cache.TTL)
	}
	if cfg.Database.DSN != "postgres://localhost/test" {
		t.Fatalf("generated env key not applied: %q", cfg.Database.DSN)
	}
}

func TestLoadKeepsDefaultsWithoutEnv(t *testing.T) {
	cfg := &testConfig{}
	cfg.HTTP.Port = "8080"

	if err := Load(cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Port != "8080" {
		t.Fatalf("default overwritten: %q", cfg.HTTP.Port)
	}
}

func TestLoadRejectsNonStructTarget(t *testing.T) {
	if err := Load(nil); err == nil {
		t.Fatalf("expected error for nil target")
	}
	n := 5
	if err := Load(&n); err == nil {
		t.Fatalf("expected error for non-struct target")
	}
}

func TestLoadBadIntValue(t *testing.T) {
	t.Setenv("TESTCFG_WORKERS", "not-a-number")
	cfg := &testConfig{}
	if err := Load(cfg); err == nil {
		t.Fatalf("expected parse error")
	}
}
