// Package config loads pdfkit command-line settings from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file values when set.
const (
	EnvLogLevel    = "PDFKIT_LOG_LEVEL"
	EnvOCRLanguage = "PDFKIT_OCR_LANGUAGE"
)

// Config holds the settings of the pdfkit command.
type Config struct {
	LogLevel string `yaml:"log_level"`
	Search   Search `yaml:"search"`
	Pages    Pages  `yaml:"pages"`
	OCR      OCR    `yaml:"ocr"`
}

type Search struct {
	CaseSensitive bool `yaml:"case_sensitive"`
}

type Pages struct {
	// Strict turns out-of-range page numbers into an error.
	Strict bool `yaml:"strict"`
}

type OCR struct {
	Enabled  bool   `yaml:"enabled"`
	Language string `yaml:"language"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		OCR: OCR{
			Language: "eng",
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvOCRLanguage); v != "" {
		c.OCR.Language = v
	}
}
