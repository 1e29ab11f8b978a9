package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}

	if cfg.Snapshots.StartDate != "2021-01-01" {
		t.Errorf("expected start_date '2021-01-01', got %q", cfg.Snapshots.StartDate)
	}
	if cfg.Snapshots.EndDate != "2023-03-09" {
		t.Errorf("expected end_date '2023-03-09', got %q", cfg.Snapshots.EndDate)
	}
	if cfg.Snapshots.BatchDays != 30 {
		t.Errorf("expected batch_days 30, got %d", cfg.Snapshots.BatchDays)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Server.Port)
	}
}

func TestParseMinimalConfig(t *testing.T) {
	data := []byte(`
snapshots:
  dir: /data/reports
server:
  port: 9000
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse minimal config: %v", err)
	}

	if cfg.Snapshots.Dir != "/data/reports" {
		t.Errorf("expected snapshot dir '/data/reports', got %q", cfg.Snapshots.Dir)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	// Defaults should still be set for unspecified fields
	if cfg.Snapshots.StartDate != "2021-01-01" {
		t.Errorf("expected default start_date, got %q", cfg.Snapshots.StartDate)
	}
	if cfg.Snapshots.BatchDays != 30 {
		t.Errorf("expected default batch_days, got %d", cfg.Snapshots.BatchDays)
	}
}

func TestParseRejectsBadDates(t *testing.T) {
	data := []byte(`
snapshots:
  start_date: "01-01-2021"
`)
	if _, err := parse(data); err == nil {
		t.Error("expected error for malformed start_date")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, DefaultConfigYAML, 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Snapshots.EndDate != "2023-03-09" {
		t.Errorf("expected end_date from file, got %q", cfg.Snapshots.EndDate)
	}
}

func TestGetDataDir(t *testing.T) {
	cfg := &Config{}
	defaultDir := cfg.GetDataDir()
	if defaultDir == "" {
		t.Error("expected non-empty default data dir")
	}

	cfg.Output.DataDir = "/custom/path"
	if cfg.GetDataDir() != "/custom/path" {
		t.Errorf("expected '/custom/path', got %q", cfg.GetDataDir())
	}
}

func TestGetSnapshotDir(t *testing.T) {
	cfg := &Config{}
	cfg.Output.DataDir = "/data"
	if got := cfg.GetSnapshotDir(); got != filepath.Join("/data", "daily_reports") {
		t.Errorf("expected default snapshot dir under data dir, got %q", got)
	}

	cfg.Snapshots.Dir = "/reports"
	if cfg.GetSnapshotDir() != "/reports" {
		t.Errorf("expected '/reports', got %q", cfg.GetSnapshotDir())
	}
}
