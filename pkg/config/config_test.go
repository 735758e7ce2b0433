package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Check default values
	if cfg.BaseURL != "http://localhost:5678" {
		t.Errorf("Expected default base URL to be 'http://localhost:5678', got '%s'", cfg.BaseURL)
	}

	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Expected default timeout to be %d, got %d", DefaultTimeout, cfg.Timeout)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	// Create a temporary directory for the test
	tempDir, err := os.MkdirTemp("", "n8nclient-config-test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Create a config file path
	configPath := filepath.Join(tempDir, "config.json")

	// Create a test config
	originalCfg := DefaultConfig()
	originalCfg.BaseURL = "https://n8n.example.com"
	originalCfg.APIKey = "test-api-key"
	originalCfg.Timeout = 60
	originalCfg.DefaultHeaders = map[string]string{"X-Trace-Id": "abc"}

	// Save the config
	if err := SaveConfig(originalCfg, configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	// Load the config
	loadedCfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Check that the loaded config matches the original
	if loadedCfg.BaseURL != originalCfg.BaseURL {
		t.Errorf("Expected base URL to be '%s', got '%s'", originalCfg.BaseURL, loadedCfg.BaseURL)
	}

	if loadedCfg.APIKey != originalCfg.APIKey {
		t.Errorf("Expected API key to be '%s', got '%s'", originalCfg.APIKey, loadedCfg.APIKey)
	}

	if loadedCfg.Timeout != originalCfg.Timeout {
		t.Errorf("Expected timeout to be %d, got %d", originalCfg.Timeout, loadedCfg.Timeout)
	}

	if loadedCfg.DefaultHeaders["X-Trace-Id"] != "abc" {
		t.Errorf("Expected default header to survive the round trip, got %v", loadedCfg.DefaultHeaders)
	}
}

func TestLoadConfigError(t *testing.T) {
	// Try to load a non-existent config file
	_, err := LoadConfig("non-existent-file.json")
	if err == nil {
		t.Error("Expected error when loading non-existent config file, got nil")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("N8N_BASE_URL", "http://n8n.internal:5678")
	t.Setenv("N8N_API_KEY", "env-key")
	t.Setenv("N8N_TIMEOUT", "45")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("Failed to build config from environment: %v", err)
	}

	if cfg.BaseURL != "http://n8n.internal:5678" {
		t.Errorf("Expected base URL from environment, got '%s'", cfg.BaseURL)
	}

	if cfg.APIKey != "env-key" {
		t.Errorf("Expected API key from environment, got '%s'", cfg.APIKey)
	}

	if cfg.Timeout != 45 {
		t.Errorf("Expected timeout 45, got %d", cfg.Timeout)
	}
}

func TestFromEnvInvalidTimeout(t *testing.T) {
	t.Setenv("N8N_BASE_URL", "http://localhost:5678")
	t.Setenv("N8N_API_KEY", "env-key")
	t.Setenv("N8N_TIMEOUT", "not-a-number")

	if _, err := FromEnv(); err == nil {
		t.Error("Expected error for malformed N8N_TIMEOUT, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  &Config{BaseURL: "http://localhost:5678", APIKey: "key", Timeout: 30},
			wantErr: false,
		},
		{
			name:    "missing base URL",
			config:  &Config{APIKey: "key"},
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			config:  &Config{BaseURL: "ftp://localhost:5678", APIKey: "key"},
			wantErr: true,
		},
		{
			name:    "missing API key",
			config:  &Config{BaseURL: "http://localhost:5678"},
			wantErr: true,
		},
		{
			name:    "negative timeout",
			config:  &Config{BaseURL: "http://localhost:5678", APIKey: "key", Timeout: -1},
			wantErr: true,
		},
		{
			name:    "zero timeout falls back to default",
			config:  &Config{BaseURL: "http://localhost:5678", APIKey: "key"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no validation error, got %v", err)
			}
		})
	}
}

func TestNewHTTPClient(t *testing.T) {
	cfg := &Config{BaseURL: "http://localhost:5678", APIKey: "key", Timeout: 10}
	client := cfg.NewHTTPClient()

	if client.Timeout != 10*time.Second {
		t.Errorf("Expected client timeout of 10s, got %v", client.Timeout)
	}

	// Zero timeout falls back to the default
	cfg.Timeout = 0
	client = cfg.NewHTTPClient()
	if client.Timeout != DefaultTimeout*time.Second {
		t.Errorf("Expected default timeout of %ds, got %v", DefaultTimeout, client.Timeout)
	}
}
