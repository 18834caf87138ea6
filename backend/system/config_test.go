package system

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
	if cfg.Listen != ":8080" {
		t.Errorf("unexpected default listen: %s", cfg.Listen)
	}
	if cfg.RefreshHours != 24 {
		t.Errorf("unexpected default refresh hours: %d", cfg.RefreshHours)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "listen: \":9090\"\nupstream_api_url: \"http://localhost:4000/v1\"\nrefresh_hours: 6\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Listen != ":9090" {
		t.Errorf("listen = %s, want :9090", cfg.Listen)
	}
	if cfg.UpstreamAPIURL != "http://localhost:4000/v1" {
		t.Errorf("upstream = %s", cfg.UpstreamAPIURL)
	}
	if cfg.RefreshHours != 6 {
		t.Errorf("refresh hours = %d, want 6", cfg.RefreshHours)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("ATLAS_LISTEN", ":7000")
	t.Setenv("ATLAS_REFRESH_HOURS", "12")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Listen != ":7000" {
		t.Errorf("env override ignored: %s", cfg.Listen)
	}
	if cfg.RefreshHours != 12 {
		t.Errorf("env override ignored: %d", cfg.RefreshHours)
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
