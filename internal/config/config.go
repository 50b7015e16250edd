// Package config handles loading and managing configuration for taskbeat.
// It supports loading from YAML files, environment variables, and hardcoded
// defaults.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration settings for taskbeat.
type Config struct {
	// RedisURL is the Redis connection URL for the metadata store
	RedisURL string `yaml:"redis_url"`

	// Jira holds connection settings for the work-item tracker
	Jira JiraConfig `yaml:"jira"`

	// Logging configures the structured logger
	Logging LoggingConfig `yaml:"logging"`
}

// JiraConfig holds work-item tracker connection settings.
type JiraConfig struct {
	// BaseURL is the tracker base URL, e.g. https://example.atlassian.net
	BaseURL string `yaml:"base_url"`

	// Email is the account email used for basic auth
	Email string `yaml:"email"`

	// APIToken is the API token paired with Email (or read from JIRA_API_TOKEN)
	APIToken string `yaml:"api_token"`
}

// LoggingConfig mirrors the logging section of the config file.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	FilePath   string `yaml:"file_path"`
	JSON       bool   `yaml:"json"`
	Console    bool   `yaml:"console"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// Default configuration values
const (
	DefaultRedisURL = "redis://localhost:6379"
	DefaultLogLevel = "info"
)

var (
	globalConfig *Config
	configOnce   sync.Once
	configErr    error
)

// Get returns the global configuration, loading it if necessary.
// This function is safe for concurrent use.
func Get() (*Config, error) {
	configOnce.Do(func() {
		globalConfig, configErr = Load()
	})
	return globalConfig, configErr
}

// MustGet returns the global configuration, panicking if loading fails.
func MustGet() *Config {
	cfg, err := Get()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	return cfg
}

// Load reads configuration from files and environment variables.
// Priority (highest to lowest):
// 1. Environment variables
// 2. ~/.config/taskbeat/config.yaml
// 3. ~/.taskbeat.yaml
// 4. Hardcoded defaults
func Load() (*Config, error) {
	cfg := &Config{
		RedisURL: DefaultRedisURL,
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			JSON:     true,
			Compress: true,
		},
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		// Legacy path first, so the XDG config overrides it if present.
		legacyPath := filepath.Join(homeDir, ".taskbeat.yaml")
		if data, err := os.ReadFile(legacyPath); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}

		xdgPath := filepath.Join(homeDir, ".config", "taskbeat", "config.yaml")
		if data, err := os.ReadFile(xdgPath); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvOverrides() {
	// Redis URL (support both REDIS_URL and TASKBEAT_REDIS_URL)
	if val := os.Getenv("TASKBEAT_REDIS_URL"); val != "" {
		c.RedisURL = val
	} else if val := os.Getenv("REDIS_URL"); val != "" {
		c.RedisURL = val
	}

	if val := os.Getenv("TASKBEAT_JIRA_BASE_URL"); val != "" {
		c.Jira.BaseURL = val
	}
	if val := os.Getenv("TASKBEAT_JIRA_EMAIL"); val != "" {
		c.Jira.Email = val
	}
	if val := os.Getenv("JIRA_API_TOKEN"); val != "" {
		c.Jira.APIToken = val
	}

	if val := os.Getenv("TASKBEAT_LOG_LEVEL"); val != "" {
		c.Logging.Level = val
	}
	if val := os.Getenv("TASKBEAT_LOG_FILE"); val != "" {
		c.Logging.FilePath = val
	}
}

// Reload forces a reload of the configuration.
// This resets the global singleton and returns the newly loaded config.
func Reload() (*Config, error) {
	configOnce = sync.Once{}
	return Get()
}

// ConfigPaths returns the paths where config files are searched.
func ConfigPaths() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(homeDir, ".config", "taskbeat", "config.yaml"),
		filepath.Join(homeDir, ".taskbeat.yaml"),
	}
}

// WriteExample writes an example configuration file to the specified path.
func WriteExample(path string) error {
	example := `# taskbeat configuration file
# Place this file at ~/.config/taskbeat/config.yaml or ~/.taskbeat.yaml

# Redis connection URL for the task metadata store
redis_url: redis://localhost:6379

# Work-item tracker connection
jira:
  base_url: https://example.atlassian.net
  email: you@example.com
  # Prefer the JIRA_API_TOKEN environment variable over storing the token here
  api_token: ""

# Structured logging
logging:
  level: info
  file_path: ""
  json: true
  console: false
  max_size: 10
  max_backups: 5
  max_age: 7
  compress: true
`
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(example), 0644)
}
