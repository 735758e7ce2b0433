// Package config provides configuration handling for the n8n client.
package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
)

// DefaultTimeout is the request timeout in seconds applied when none is set
const DefaultTimeout = 30

// Config represents the client configuration
type Config struct {
	// BaseURL is the address of the n8n instance, e.g. "http://localhost:5678"
	BaseURL string `json:"base_url"`

	// APIKey is sent with every request in the X-N8N-API-KEY header
	APIKey string `json:"api_key"`

	// Timeout is the per-request timeout in seconds
	Timeout int `json:"timeout"`

	// DefaultHeaders are added to every request
	DefaultHeaders map[string]string `json:"default_headers,omitempty"`

	// Logger used by the client. Defaults to a no-op logger when nil.
	Logger hclog.Logger `json:"-"`

	// HTTPClient overrides the HTTP client built from this configuration
	HTTPClient *http.Client `json:"-"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "http://localhost:5678",
		Timeout: DefaultTimeout,
	}
}

// LoadConfig loads the configuration from a file
func LoadConfig(path string) (*Config, error) {
	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse the JSON
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves the configuration to a file. The API key is written as-is,
// so the file should be protected like any other secret.
func SaveConfig(config *Config, path string) error {
	// Create the directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal the JSON
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write the file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// FromEnv builds a configuration from environment variables, loading a .env
// file first if one is present. It reads N8N_BASE_URL, N8N_API_KEY and
// N8N_TIMEOUT.
func FromEnv() (*Config, error) {
	// Load environment variables
	_ = godotenv.Load()

	config := DefaultConfig()

	if baseURL := os.Getenv("N8N_BASE_URL"); baseURL != "" {
		config.BaseURL = baseURL
	}
	config.APIKey = os.Getenv("N8N_API_KEY")

	if timeout := os.Getenv("N8N_TIMEOUT"); timeout != "" {
		seconds, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid N8N_TIMEOUT %q: %w", timeout, err)
		}
		config.Timeout = seconds
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}

	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https scheme, got: %s", parsedURL.Scheme)
	}

	if c.APIKey == "" {
		return fmt.Errorf("api_key is required")
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got: %d", c.Timeout)
	}

	return nil
}

// NewHTTPClient creates an HTTP client for this configuration. A Timeout of
// zero falls back to DefaultTimeout.
func (c *Config) NewHTTPClient() *http.Client {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &http.Client{
		Timeout:   time.Duration(timeout) * time.Second,
		Transport: transport,
	}
}
