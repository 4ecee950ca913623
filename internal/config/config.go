package config

import (
	"os"
	"path/filepath"

	"ofertadiff/domain/pricelist"
	"ofertadiff/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Input  InputConfig
	Output OutputConfig
	Parse  ParseConfig
}

// InputConfig holds source document settings
type InputConfig struct {
	Dir string
}

// OutputConfig holds report artifact settings
type OutputConfig struct {
	File string
}

// ParseConfig holds extraction and normalization settings
type ParseConfig struct {
	HeaderAnchor string
	Duplicates   pricelist.DuplicatePolicy
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Input: InputConfig{
			Dir: getEnvOrDefault("INPUT_DIR", "."),
		},
		Output: OutputConfig{
			File: getEnvOrDefault("OUTPUT_FILE", ""),
		},
		Parse: ParseConfig{
			HeaderAnchor: getEnvOrDefault("HEADER_ANCHOR", pricelist.DefaultHeaderAnchor),
		},
	}

	policy, ok := pricelist.ParseDuplicatePolicy(os.Getenv("DUPLICATE_POLICY"))
	if !ok {
		return nil, errors.ConfigInvalid("DUPLICATE_POLICY must be keep-first, keep-last or reject")
	}
	config.Parse.Duplicates = policy

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// DefaultOutputFile derives the artifact path from the first document's
// directory when no explicit output file is configured.
func (c *Config) DefaultOutputFile(firstDocument string) string {
	if c.Output.File != "" {
		return c.Output.File
	}
	return filepath.Join(filepath.Dir(firstDocument), "Tabelas_Consolidadas.xlsx")
}

func validateConfig(config *Config) error {
	if config.Input.Dir == "" {
		return errors.ConfigInvalid("input directory is required")
	}
	if config.Parse.HeaderAnchor == "" {
		return errors.ConfigInvalid("header anchor token is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
