// Package config provides configuration management for the gf256 CLI tool
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Davincible/gf256/pkg/gf256"
)

// Config represents the main configuration structure
type Config struct {
	Version string       `json:"version"`
	Field   FieldConfig  `json:"field"`
	UI      UIConfig     `json:"ui"`
	Tables  TablesConfig `json:"tables"`
}

// FieldConfig holds the field used when no flags are given
type FieldConfig struct {
	Polynomial uint16 `json:"polynomial"` // Default: 0x11d (285)
	Generator  byte   `json:"generator"`  // Default: 2
}

// UIConfig contains user interface settings
type UIConfig struct {
	UseColor  bool   `json:"use_color"` // Enable colored output
	Verbosity string `json:"verbosity"` // quiet, normal, verbose
}

// TablesConfig contains settings for the tables command
type TablesConfig struct {
	Format     string `json:"format"`      // hex, go, json
	DefaultOut string `json:"default_out"` // Used by `tables --save` without --out
}

// ConfigManager manages configuration loading and saving
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager loads the config from the default location, falling back
// to DefaultConfig when no file exists. Nothing is written to disk.
func NewConfigManager() (*ConfigManager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewConfigManagerAt(configPath)
}

// NewConfigManagerAt is like NewConfigManager but reads from path.
func NewConfigManagerAt(path string) (*ConfigManager, error) {
	cm := &ConfigManager{configPath: path}

	if err := cm.LoadConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		cm.config = DefaultConfig()
	}

	return cm, nil
}

// NewDefaultManagerAt returns a manager for path holding DefaultConfig,
// without reading whatever is stored there.
func NewDefaultManagerAt(path string) *ConfigManager {
	return &ConfigManager{config: DefaultConfig(), configPath: path}
}

// ConfigPath returns the file NewConfigManager reads from
func ConfigPath() (string, error) {
	return getConfigPath()
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0.0",
		Field: FieldConfig{
			Polynomial: gf256.DefaultPolynomial,
			Generator:  gf256.DefaultGenerator,
		},
		UI: UIConfig{
			UseColor:  true,
			Verbosity: "normal",
		},
		Tables: TablesConfig{
			Format:     "hex",
			DefaultOut: "~/.gf256/tables.json",
		},
	}
}

// LoadConfig loads the configuration from disk. Missing fields keep their
// default values.
func (cm *ConfigManager) LoadConfig() error {
	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", cm.configPath, err)
	}

	cm.config = config
	return nil
}

// SaveConfig saves the configuration to disk
func (cm *ConfigManager) SaveConfig() error {
	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cm.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config
}

// SetConfig updates the configuration
func (cm *ConfigManager) SetConfig(config *Config) {
	cm.config = config
}

// Path returns the file the manager reads and writes
func (cm *ConfigManager) Path() string {
	return cm.configPath
}

// Validate checks that the configured field can be built
func (c *Config) Validate() error {
	if _, err := c.Field.Build(); err != nil {
		return err
	}

	switch c.Tables.Format {
	case "hex", "go", "json":
	default:
		return fmt.Errorf("unknown table format %q", c.Tables.Format)
	}

	switch c.UI.Verbosity {
	case "quiet", "normal", "verbose":
	default:
		return fmt.Errorf("unknown verbosity %q", c.UI.Verbosity)
	}

	return nil
}

// Build constructs the configured field
func (fc FieldConfig) Build() (*gf256.Field, error) {
	return gf256.New(gf256.WithPolynomial(fc.Polynomial), gf256.WithGenerator(fc.Generator))
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && (len(path) < 2 || path[:2] != "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}

// getConfigPath returns the configuration file path
func getConfigPath() (string, error) {
	// Check for custom config path
	if customPath := os.Getenv("GF256_CONFIG"); customPath != "" {
		return customPath, nil
	}

	// Use XDG_CONFIG_HOME if set
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "gf256", "config.json"), nil
	}

	// Default to ~/.config/gf256/config.json
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "gf256", "config.json"), nil
}
