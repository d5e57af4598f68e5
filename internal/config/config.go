// Package config loads server configuration from an optional YAML file
// with environment-variable overrides.
//
// PRECEDENCE (lowest to highest): built-in defaults → YAML file → env vars.
// The file is optional — a fresh checkout runs with pure defaults — but env
// overrides always apply, because that's how deployment platforms inject
// settings (PORT on most PaaS, DB_PATH for a mounted volume, ...).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Execute ExecuteConfig `yaml:"execute"`
	CORS    CORSConfig    `yaml:"cors"`
}

type ServerConfig struct {
	Port      int    `yaml:"port"`
	StaticDir string `yaml:"staticDir"` // optional; empty disables static file serving
}

type StorageConfig struct {
	// Driver selects the repository backing: "sqlite" (durable) or
	// "memory" (process-lifetime, identical external contract).
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"` // sqlite file path; ignored by the memory driver
}

type ExecuteConfig struct {
	// Delay is the simulated execution time of the mock executor.
	Delay time.Duration `yaml:"delay"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			Path:   "data/studio.db",
		},
		Execute: ExecuteConfig{
			Delay: 500 * time.Millisecond,
		},
		CORS: CORSConfig{
			// The original deployment allowed any origin; lock this down
			// in production configs.
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load reads configuration, starting from defaults.
//
// If configPath is non-empty, that file must exist and parse. Otherwise the
// default candidate "configs/config.yaml" is tried and silently skipped if
// absent. Env overrides are applied last either way.
func Load(configPath string) (Config, error) {
	cfg := Default()

	candidates := make([]string, 0, 1)
	required := false
	if configPath != "" {
		candidates = append(candidates, configPath)
		required = true
	} else {
		candidates = append(candidates, "configs/config.yaml")
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if required {
				return cfg, fmt.Errorf("config: reading %s: %w", path, err)
			}
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
		}
		break
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variables on top of the loaded
// config. Unset variables leave the existing values alone.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.Server.StaticDir = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("EXECUTE_DELAY"); v != "" {
		delay, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid EXECUTE_DELAY %q: %w", v, err)
		}
		cfg.Execute.Delay = delay
	}
	return nil
}
