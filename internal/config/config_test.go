package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadOrInit_WritesDefaults(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	cfg, err := s.LoadOrInit()
	if err != nil {
		t.Fatalf("LoadOrInit: %v", err)
	}
	if cfg.BaseURL == "" || strings.HasSuffix(cfg.BaseURL, "/") {
		t.Fatalf("base url = %q", cfg.BaseURL)
	}
	if cfg.DefaultMedium != "sms" {
		t.Fatalf("default medium = %q", cfg.DefaultMedium)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
}

func TestLoadOrInit_ReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	content := "base_url = \"http://localhost:9000/api/\"\ndefault_medium = \"email\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewStore(dir).LoadOrInit()
	if err != nil {
		t.Fatalf("LoadOrInit: %v", err)
	}
	if cfg.BaseURL != "http://localhost:9000/api" {
		t.Fatalf("base url = %q (trailing slash should be trimmed)", cfg.BaseURL)
	}
	if cfg.DefaultMedium != "email" {
		t.Fatalf("medium = %q", cfg.DefaultMedium)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PLANNER_BASE_URL", "http://env.example/api")

	cfg, err := NewStore(dir).LoadOrInit()
	if err != nil {
		t.Fatalf("LoadOrInit: %v", err)
	}
	if cfg.BaseURL != "http://env.example/api" {
		t.Fatalf("base url = %q, want env override", cfg.BaseURL)
	}
}
