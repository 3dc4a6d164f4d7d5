package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: "9090"
log:
  env: production
  level: debug
redis:
  addr: localhost:6379
  db: 2
catalog:
  path: ./languages.yaml
  ttl: 5m
quiz:
  feedback_delay: 1s
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Log.Env != "production" || cfg.Redis.DB != 2 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Catalog.Path != "./languages.yaml" {
		t.Fatalf("unexpected catalog path %q", cfg.Catalog.Path)
	}
	if d := Duration(cfg.Quiz.FeedbackDelay, 0); d != time.Second {
		t.Fatalf("expected 1s feedback delay, got %v", d)
	}
}

func TestLoadOptionalMissingFile(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Server.Port != "" {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("Load must still fail on a missing file")
	}
}

func TestDurationFallback(t *testing.T) {
	if d := Duration("", 3*time.Second); d != 3*time.Second {
		t.Fatalf("empty: got %v", d)
	}
	if d := Duration("soon", 3*time.Second); d != 3*time.Second {
		t.Fatalf("invalid: got %v", d)
	}
	if d := Duration("250ms", 3*time.Second); d != 250*time.Millisecond {
		t.Fatalf("valid: got %v", d)
	}
}
