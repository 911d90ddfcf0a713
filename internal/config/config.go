// Package config loads and finalizes the service configuration from TOML
// files and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/orderlens/orderlens/internal/extraction"
	"github.com/orderlens/orderlens/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvOrderlensEnv             = "ORDERLENS_ENV"
	EnvOrderlensShutdownTimeout = "ORDERLENS_SHUTDOWN_TIMEOUT"
	EnvOrderlensVersion         = "ORDERLENS_VERSION"
)

var storageEnv = &storage.Env{
	ContainerName:    "ORDERLENS_STORAGE_CONTAINER_NAME",
	ConnectionString: "ORDERLENS_STORAGE_CONNECTION_STRING",
	PublicEndpoint:   "ORDERLENS_STORAGE_PUBLIC_ENDPOINT",
}

var inferenceEnv = &extraction.Env{
	BaseURL:     "ORDERLENS_INFERENCE_BASE_URL",
	APIKey:      "ORDERLENS_INFERENCE_API_KEY",
	Model:       "ORDERLENS_INFERENCE_MODEL",
	Temperature: "ORDERLENS_INFERENCE_TEMPERATURE",
	MaxTokens:   "ORDERLENS_INFERENCE_MAX_TOKENS",
	Timeout:     "ORDERLENS_INFERENCE_TIMEOUT",
}

// Config is the root configuration for the orderlens service.
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Storage         storage.Config    `toml:"storage"`
	Inference       extraction.Config `toml:"inference"`
	API             APIConfig         `toml:"api"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
}

// Env returns the ORDERLENS_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvOrderlensEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. Validation fails fast at startup: missing
// storage or inference credentials abort the load.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Storage.Merge(&overlay.Storage)
	c.Inference.Merge(&overlay.Inference)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Inference.Finalize(inferenceEnv); err != nil {
		return fmt.Errorf("inference: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvOrderlensShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvOrderlensVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvOrderlensEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
