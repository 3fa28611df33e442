package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	if config.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", config.Server.Port)
	}
	if config.Storage.Driver != "memory" {
		t.Errorf("driver = %q, want memory", config.Storage.Driver)
	}
	if config.Clients.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("model = %q", config.Clients.Gemini.Model)
	}
	if config.Clients.Gemini.GetTimeout() != 45*time.Second {
		t.Errorf("timeout = %v", config.Clients.Gemini.GetTimeout())
	}
	if config.Grounding.GetCacheTTL() != time.Hour {
		t.Errorf("cache ttl = %v", config.Grounding.GetCacheTTL())
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chartproof.toml")
	content := `
environment = "production"

[server]
port = 9090

[storage]
driver = "surrealdb"

[clients.gemini]
model = "gemini-override"
timeout = "10s"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if config.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", config.Server.Port)
	}
	if config.Storage.Driver != "surrealdb" {
		t.Errorf("driver = %q", config.Storage.Driver)
	}
	if config.Clients.Gemini.GetTimeout() != 10*time.Second {
		t.Errorf("timeout = %v", config.Clients.Gemini.GetTimeout())
	}
	// Untouched settings keep their defaults.
	if config.Server.Host != "0.0.0.0" {
		t.Errorf("host = %q", config.Server.Host)
	}
	if !config.IsProduction() {
		t.Error("environment = production should report IsProduction")
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig("/nonexistent/chartproof.toml")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Server.Port != 8080 {
		t.Error("missing file should fall back to defaults")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHARTPROOF_PORT", "7070")
	t.Setenv("CHARTPROOF_STORAGE_DRIVER", "surrealdb")
	t.Setenv("CHARTPROOF_GEMINI_MODEL", "gemini-env")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Server.Port != 7070 {
		t.Errorf("port = %d, want 7070", config.Server.Port)
	}
	if config.Storage.Driver != "surrealdb" {
		t.Errorf("driver = %q", config.Storage.Driver)
	}
	if config.Clients.Gemini.Model != "gemini-env" {
		t.Errorf("model = %q", config.Clients.Gemini.Model)
	}
}

func TestResolveGeminiAPIKey(t *testing.T) {
	config := NewDefaultConfig()

	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("CHARTPROOF_GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	if key := ResolveGeminiAPIKey(config); key != "" {
		t.Errorf("key = %q, want empty", key)
	}

	config.Clients.Gemini.APIKey = "from-config"
	if key := ResolveGeminiAPIKey(config); key != "from-config" {
		t.Errorf("key = %q", key)
	}

	t.Setenv("GEMINI_API_KEY", "from-env")
	if key := ResolveGeminiAPIKey(config); key != "from-env" {
		t.Errorf("env should win, got %q", key)
	}
}
