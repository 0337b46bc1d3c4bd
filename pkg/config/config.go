/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ssargent/dataprov/pkg/ids"
	"github.com/ssargent/dataprov/pkg/logging"
	"github.com/ssargent/dataprov/pkg/store"
	"gopkg.in/yaml.v3"
)

// Config represents the dataprov configuration
type Config struct {
	Port     int      `yaml:"port"`
	Bind     string   `yaml:"bind"`
	Store    Store    `yaml:"store"`
	Datasets Datasets `yaml:"datasets"`
	S3       S3       `yaml:"s3"`
	Logging  Logging  `yaml:"logging"`
}

// Store selects the record store backend and id strategy
type Store struct {
	Backend    string `yaml:"backend"`
	IDStrategy string `yaml:"id_strategy"`
}

// Datasets names the source each kind is seeded from. Empty means start empty.
type Datasets struct {
	Finance   string `yaml:"finance"`
	Transport string `yaml:"transport"`
}

// S3 configures the client used for s3:// dataset sources
type S3 struct {
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint,omitempty"`
	PathStyle       bool   `yaml:"path_style"`
	AccessKeyID     string `yaml:"access_key_id,omitempty"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Port: 8080,
		Bind: "127.0.0.1",
		Store: Store{
			Backend:    store.BackendMemory,
			IDStrategy: ids.StrategyUUID,
		},
		Datasets: Datasets{
			Finance:   "builtin:finances.csv",
			Transport: "builtin:transport.csv",
		},
		S3: S3{
			Region: "us-east-1",
		},
		Logging: Logging{
			Level:  "info",
			Format: logging.FormatText,
		},
	}
}

// LoadConfig loads configuration from the specified path. Keys missing from
// the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600 since the file may hold S3 credentials
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// BootstrapConfig writes a default configuration using the given store backend
func BootstrapConfig(configPath string, backend string) (*Config, error) {
	config := DefaultConfig()
	if backend != "" {
		config.Store.Backend = backend
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// Validate checks that every enumerated setting holds a known value
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	switch c.Store.Backend {
	case "", store.BackendMemory, store.BackendPebble:
	default:
		return fmt.Errorf("invalid store backend: %s", c.Store.Backend)
	}

	if _, err := ids.New(c.Store.IDStrategy); err != nil {
		return fmt.Errorf("invalid store config: %w", err)
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging config: %w", err)
	}
	switch c.Logging.Format {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./dataprov.yaml"
	}

	// For Linux/macOS, use ~/.config/dataprov/config.yaml
	configDir := filepath.Join(homeDir, ".config", "dataprov")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
