package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Language != "ko" {
		t.Errorf("expected default language ko, got %q", cfg.Language)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("expected default poll interval 30s, got %s", cfg.PollInterval)
	}
	if !strings.HasSuffix(cfg.DBPath, "journal.db") {
		t.Errorf("unexpected default db path %q", cfg.DBPath)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("TAROT_HOURS_LANGUAGE", "en")
	t.Setenv("TAROT_HOURS_DB_PATH", "/tmp/x.db")

	cfg := Load()
	if cfg.Language != "en" {
		t.Errorf("expected language en from env, got %q", cfg.Language)
	}
	if cfg.DBPath != "/tmp/x.db" {
		t.Errorf("expected db path from env, got %q", cfg.DBPath)
	}
}
