// Package common provides shared utilities for Chartproof
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Chartproof
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Clients     ClientsConfig   `toml:"clients"`
	Grounding   GroundingConfig `toml:"grounding"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string  `toml:"host"`
	Port         int     `toml:"port"`
	AnalyzeRPS   float64 `toml:"analyze_rps"` // per-client rate limit on /api/analyze
	AnalyzeBurst int     `toml:"analyze_burst"`
	MaxUploadMB  int     `toml:"max_upload_mb"` // cap on the analyze request body
}

// StorageConfig selects and configures the report store backend.
type StorageConfig struct {
	Driver    string `toml:"driver"` // "memory" (default) or "surrealdb"
	Address   string `toml:"address"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Gemini GeminiConfig `toml:"gemini"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey      string `toml:"api_key"`
	Model       string `toml:"model"`        // structured/text generation
	VisionModel string `toml:"vision_model"` // chart validation (cheaper model)
	Timeout     string `toml:"timeout"`
	RateLimit   int    `toml:"rate_limit"` // requests per second
}

// GetTimeout parses and returns the per-call timeout duration
func (c *GeminiConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 45 * time.Second
	}
	return d
}

// GroundingConfig holds grounding engine configuration
type GroundingConfig struct {
	CacheTTL   string `toml:"cache_ttl"`
	MaxSources int    `toml:"max_sources"`
}

// GetCacheTTL parses and returns the grounding cache TTL
func (c *GroundingConfig) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return time.Hour
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			AnalyzeRPS:   0.5,
			AnalyzeBurst: 3,
			MaxUploadMB:  12,
		},
		Storage: StorageConfig{
			Driver:    "memory",
			Address:   "ws://localhost:8000",
			Username:  "root",
			Password:  "root",
			Namespace: "chartproof",
			Database:  "chartproof",
		},
		Clients: ClientsConfig{
			Gemini: GeminiConfig{
				Model:       "gemini-2.5-flash",
				VisionModel: "gemini-2.5-flash-lite",
				Timeout:     "45s",
				RateLimit:   5,
			},
		},
		Grounding: GroundingConfig{
			CacheTTL:   "1h",
			MaxSources: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("CHARTPROOF_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("CHARTPROOF_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("CHARTPROOF_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("CHARTPROOF_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if driver := os.Getenv("CHARTPROOF_STORAGE_DRIVER"); driver != "" {
		config.Storage.Driver = driver
	}
	if addr := os.Getenv("CHARTPROOF_STORAGE_ADDRESS"); addr != "" {
		config.Storage.Address = addr
	}

	if model := os.Getenv("CHARTPROOF_GEMINI_MODEL"); model != "" {
		config.Clients.Gemini.Model = model
	}
	if ttl := os.Getenv("CHARTPROOF_GROUNDING_CACHE_TTL"); ttl != "" {
		config.Grounding.CacheTTL = ttl
	}
}

// ResolveGeminiAPIKey resolves the Gemini API key from environment or config.
// Returns an empty string when unconfigured; the client reports a
// configuration error at call time rather than failing startup.
func ResolveGeminiAPIKey(config *Config) string {
	for _, name := range []string{"GEMINI_API_KEY", "CHARTPROOF_GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return config.Clients.Gemini.APIKey
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
