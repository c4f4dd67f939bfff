// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all application configuration for caption spell-checking.
type Config struct {
	// CacheDir is where caption downloads, batches, and the store live
	CacheDir string `json:"cache_dir"`
	// MappingFile is the terminology mapping JSON file
	MappingFile string `json:"mapping_file"`
	// StoreFile is the spell-check tracking store
	StoreFile string `json:"store_file"`
	// BatchSize is the default number of videos per review batch
	BatchSize int `json:"batch_size"`
	// Language is the caption language to process
	Language string `json:"language"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		CacheDir:    ".cache",
		MappingFile: filepath.Join(".cache", "terminology_mapping.json"),
		StoreFile:   filepath.Join(".cache", "ccspell.json"),
		BatchSize:   8,
		Language:    "en",
	}
}

// CaptionsDir is where raw caption downloads are kept.
func (c *Config) CaptionsDir() string {
	return filepath.Join(c.CacheDir, "captions")
}

// OriginalsDir is where untouched caption backups are kept.
func (c *Config) OriginalsDir() string {
	return filepath.Join(c.CacheDir, "originals")
}

// OutputDir is where review batches and combined documents are written.
func (c *Config) OutputDir() string {
	return filepath.Join(c.CacheDir, "output")
}

// Load loads configuration from environment variables, config file, and applies defaults.
// Priority: env vars > config file > defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Try to load from config file
	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// Override with environment variables
	cfg.loadFromEnv()

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from ccspell.json in current directory or home directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"ccspell.json",
		filepath.Join(os.Getenv("HOME"), ".config", "ccspell", "ccspell.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("CCSPELL_CACHE_DIR"); v != "" {
		c.CacheDir = v
	}
	if v := os.Getenv("CCSPELL_MAPPING_FILE"); v != "" {
		c.MappingFile = v
	}
	if v := os.Getenv("CCSPELL_STORE_FILE"); v != "" {
		c.StoreFile = v
	}
	if v := os.Getenv("CCSPELL_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BatchSize = n
		}
	}
	if v := os.Getenv("CCSPELL_LANGUAGE"); v != "" {
		c.Language = v
	}
}

// Validate checks that configuration values are valid and consistent.
// It returns an error if any configuration value is invalid.
func (c *Config) Validate() error {
	if c.CacheDir == "" {
		return fmt.Errorf("cache_dir must not be empty")
	}
	if c.MappingFile == "" {
		return fmt.Errorf("mapping_file must not be empty")
	}
	if c.StoreFile == "" {
		return fmt.Errorf("store_file must not be empty")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive")
	}
	if c.Language == "" {
		return fmt.Errorf("language must not be empty")
	}
	return nil
}
