// Package config loads tool configuration from a YAML file plus environment
// overrides, with XDG-compliant defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AI     AIConfig    `yaml:"ai"`
	Paths  PathsConfig `yaml:"paths"`
	Limits Limits      `yaml:"limits"`
}

type AIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model" validate:"required"`
	BaseURL string `yaml:"base_url" validate:"required,url"`
	Timeout int    `yaml:"timeout" validate:"required,min=10,max=3600"`
}

type PathsConfig struct {
	// DataDir is the document root: acts/, outlines/, characters.json and
	// story bibles all live under it.
	DataDir    string `yaml:"data_dir" validate:"required"`
	OutlineDir string `yaml:"outline_dir" validate:"required"`
}

// Load reads the config file, applies environment overrides and validates
// the result. A missing file yields defaults rather than an error, so the
// tool works out of the box against a local data directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	configPath := configPath()
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", configPath, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Default is the zero-file configuration: local ./data directory, Anthropic
// backend, conservative limits.
func Default() *Config {
	return &Config{
		AI: AIConfig{
			Model:   "claude-3-5-sonnet-20241022",
			BaseURL: "https://api.anthropic.com/v1",
			Timeout: 120,
		},
		Paths: PathsConfig{
			DataDir: "data",
		},
		Limits: DefaultLimits(),
	}
}

func configPath() string {
	if path := os.Getenv("REDLINE_CONFIG"); path != "" {
		return path
	}
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "redline", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "redline", "config.yaml")
}

// applyEnv lets the credential and data root come from the environment, so
// the config file never needs to hold a secret.
func (c *Config) applyEnv() {
	if key := os.Getenv("REDLINE_API_KEY"); key != "" {
		c.AI.APIKey = key
	}
	if c.AI.APIKey == "" || strings.HasPrefix(c.AI.APIKey, "${") {
		for _, env := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY"} {
			if key := os.Getenv(env); key != "" {
				c.AI.APIKey = key
				break
			}
		}
	}
	if dir := os.Getenv("REDLINE_DATA_DIR"); dir != "" {
		c.Paths.DataDir = dir
	}
}

func (c *Config) applyDefaults() {
	c.Paths.DataDir = expandTilde(c.Paths.DataDir)
	if c.Paths.OutlineDir == "" {
		c.Paths.OutlineDir = filepath.Join(c.Paths.DataDir, "outlines")
	}
	c.Paths.OutlineDir = expandTilde(c.Paths.OutlineDir)
	c.Limits.applyDefaults()
}

// expandTilde expands a leading ~/ to the user's home directory.
func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			messages := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				messages = append(messages, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%s", strings.Join(messages, "; "))
		}
		return err
	}
	return nil
}
