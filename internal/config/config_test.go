package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[data]
dir = "/tmp/daykeep-test"

[sync]
endpoint = "https://sync.example.com/v1/items"
interval = "45s"

[planner]
daily-capacity-minutes = 360
task-aging-days = 5
`)
	t.Setenv("DAYKEEP_CONFIG", path)
	t.Setenv("DAYKEEP_DATA_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Sync.Endpoint != "https://sync.example.com/v1/items" {
		t.Errorf("endpoint = %q", cfg.Sync.Endpoint)
	}
	if cfg.SyncInterval() != 45*time.Second {
		t.Errorf("interval = %v", cfg.SyncInterval())
	}
	if cfg.Planner.DailyCapacityMinutes != 360 || cfg.Planner.TaskAgingDays != 5 {
		t.Errorf("planner = %+v", cfg.Planner)
	}

	dir, err := cfg.DataDir()
	if err != nil {
		t.Fatalf("data dir: %v", err)
	}
	if dir != "/tmp/daykeep-test" {
		t.Errorf("data dir = %q", dir)
	}
}

func TestLoad_MissingFileIsEmptyConfig(t *testing.T) {
	t.Setenv("DAYKEEP_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Sync.Endpoint != "" || cfg.SyncInterval() != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestDataDir_EnvOverridesConfig(t *testing.T) {
	t.Setenv("DAYKEEP_DATA_DIR", "/tmp/override")
	cfg := &Config{Data: Data{Dir: "/tmp/from-config"}}

	dir, err := cfg.DataDir()
	if err != nil {
		t.Fatalf("data dir: %v", err)
	}
	if dir != "/tmp/override" {
		t.Errorf("data dir = %q", dir)
	}
}

func TestLoad_RejectsMalformedInterval(t *testing.T) {
	path := writeConfig(t, `
[sync]
interval = "soon"
`)
	t.Setenv("DAYKEEP_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Error("expected error for malformed interval")
	}
}
