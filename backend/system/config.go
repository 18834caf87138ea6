package system

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds boot-time settings. Values resolve in order: defaults,
// config.yaml (if present), then environment variables. Anything the
// admin can change at runtime lives in the database instead.
type Config struct {
	Listen         string `yaml:"listen"`
	DataDir        string `yaml:"data_dir"`
	LogDir         string `yaml:"log_dir"`
	FrontendDir    string `yaml:"frontend_dir"`
	UpstreamAPIURL string `yaml:"upstream_api_url"`
	RefreshHours   int    `yaml:"refresh_hours"`
	JWTSecret      string `yaml:"jwt_secret"`
}

// LoadConfig reads configuration from an optional yaml file and the
// environment. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Listen:         ":8080",
		DataDir:        ".",
		LogDir:         "./logs",
		FrontendDir:    "./frontend/dist",
		UpstreamAPIURL: "https://api.trustatlas.org/v1",
		RefreshHours:   24,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if v := os.Getenv("ATLAS_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("ATLAS_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("ATLAS_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("ATLAS_FRONTEND_DIR"); v != "" {
		cfg.FrontendDir = v
	}
	if v := os.Getenv("ATLAS_UPSTREAM_API_URL"); v != "" {
		cfg.UpstreamAPIURL = v
	}
	if v := os.Getenv("ATLAS_REFRESH_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RefreshHours = n
		}
	}
	if v := os.Getenv("ATLAS_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}

	return cfg, nil
}
