package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PentesterFlow/APIHarvest/internal/output"
)

// Config holds pipeline configuration.
type Config struct {
	// Log level: debug, info, warn, error
	LogLevel string `json:"log_level" yaml:"log_level"`

	// Verbose logging
	Verbose bool `json:"verbose" yaml:"verbose"`

	// Debug mode (forces debug log level)
	Debug bool `json:"debug" yaml:"debug"`

	// Dataset/descriptor output
	Output output.Config `json:"output" yaml:"output"`

	// Vault storage
	Vault VaultConfig `json:"vault" yaml:"vault"`

	// Knowledge-base overlay
	Knowledge KnowledgeConfig `json:"knowledge" yaml:"knowledge"`
}

// VaultConfig holds descriptor store configuration.
type VaultConfig struct {
	Path string `json:"path" yaml:"path"`
}

// KnowledgeConfig holds knowledge-base overlay configuration. The overlay
// extends the compiled-in lists; it never replaces them.
type KnowledgeConfig struct {
	OverlayFile string `json:"overlay_file" yaml:"overlay_file"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Output: output.Config{
			Pretty: true,
		},
	}
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, config); err != nil {
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return config, nil
}

// SaveToFile saves configuration to a file.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if len(path) > 5 && path[len(path)-5:] == ".json" {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	return nil
}
