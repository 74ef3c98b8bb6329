// Package config loads application settings from an optional YAML file
// with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LLMConfig holds the reasoning collaborator connection settings.
type LLMConfig struct {
	// APIBase is the base URL for the API (e.g. "https://api.openai.com").
	APIBase string `yaml:"api_base"`
	// APIKey is the bearer token.
	APIKey string `yaml:"api_key"`
	// Model is the model name.
	Model string `yaml:"model"`
	// MaxTokens caps completion length.
	MaxTokens int `yaml:"max_tokens"`
	// Temperature for generation.
	Temperature float64 `yaml:"temperature"`
	// RequestsPerSecond bounds the sustained request rate.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// Config is the full application configuration.
type Config struct {
	LLM LLMConfig `yaml:"llm"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:             "claude-latest",
			MaxTokens:         4096,
			Temperature:       0,
			RequestsPerSecond: 2,
		},
	}
}

// Load builds the configuration in precedence order: defaults, then the
// config file when present, then environment variables.
//
// The file is $PAGEINDEX_CONFIG when set, otherwise
// <user config dir>/pageindex/config.yaml.
func Load() (*Config, error) {
	cfg := Default()

	path := FilePath()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg.mergeEnv()
	return cfg, nil
}

// LoadFile loads configuration from a specific file over the defaults.
// Environment variables are not applied.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FilePath returns the config file location, or "" when no user config
// directory can be determined.
func FilePath() string {
	if p := os.Getenv("PAGEINDEX_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pageindex", "config.yaml")
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file struct {
		LLM struct {
			APIBase           *string  `yaml:"api_base"`
			APIKey            *string  `yaml:"api_key"`
			Model             *string  `yaml:"model"`
			MaxTokens         *int     `yaml:"max_tokens"`
			Temperature       *float64 `yaml:"temperature"`
			RequestsPerSecond *float64 `yaml:"requests_per_second"`
		} `yaml:"llm"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing config file %q: %w", path, err)
	}

	if file.LLM.APIBase != nil {
		c.LLM.APIBase = *file.LLM.APIBase
	}
	if file.LLM.APIKey != nil {
		c.LLM.APIKey = *file.LLM.APIKey
	}
	if file.LLM.Model != nil {
		c.LLM.Model = *file.LLM.Model
	}
	if file.LLM.MaxTokens != nil {
		c.LLM.MaxTokens = *file.LLM.MaxTokens
	}
	if file.LLM.Temperature != nil {
		c.LLM.Temperature = *file.LLM.Temperature
	}
	if file.LLM.RequestsPerSecond != nil {
		c.LLM.RequestsPerSecond = *file.LLM.RequestsPerSecond
	}
	return nil
}

func (c *Config) mergeEnv() {
	if v := os.Getenv("LLM_API_BASE"); v != "" {
		c.LLM.APIBase = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.LLM.MaxTokens = n
		}
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.LLM.Temperature = f
		}
	}
}

// Validate checks that required fields are set.
func (c *Config) Validate() error {
	if c.LLM.APIBase == "" {
		return errors.New("LLM API base URL is required: set LLM_API_BASE or add llm.api_base to the config file")
	}
	if c.LLM.APIKey == "" {
		return errors.New("LLM API key is required: set LLM_API_KEY or add llm.api_key to the config file")
	}
	if c.LLM.Model == "" {
		return errors.New("LLM model is required: set LLM_MODEL or add llm.model to the config file")
	}
	return nil
}
