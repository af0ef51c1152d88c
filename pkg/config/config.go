package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the search tool
type Config struct {
	// API client settings
	API APIConfig `yaml:"api" json:"api"`

	// Rate limiting configuration
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// APIConfig holds X API client configuration
type APIConfig struct {
	BaseURL  string        `yaml:"base_url" json:"base_url"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout"`
	PageSize int           `yaml:"page_size" json:"page_size"`
}

// RateLimitConfig holds rate limiting configuration. FallbackWait is
// the wait used when a 429 response carries no reset hint; the true
// window can vary by plan, so it is configurable rather than hardwired.
type RateLimitConfig struct {
	WindowRequests int           `yaml:"window_requests" json:"window_requests"`
	Window         time.Duration `yaml:"window" json:"window"`
	FallbackWait   time.Duration `yaml:"fallback_wait" json:"fallback_wait"`
}

// OutputConfig holds output file configuration
type OutputConfig struct {
	Directory  string `yaml:"directory" json:"directory"`
	Format     string `yaml:"format" json:"format"`
	FilePrefix string `yaml:"file_prefix" json:"file_prefix"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:  "https://api.x.com",
			Timeout:  30 * time.Second,
			PageSize: 50,
		},
		RateLimit: RateLimitConfig{
			WindowRequests: 450,
			Window:         15 * time.Minute,
			FallbackWait:   15 * time.Minute,
		},
		Output: OutputConfig{
			Directory:  "./data",
			Format:     "csv",
			FilePrefix: "tweets",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration overrides from environment variables
func (c *Config) LoadFromEnv() error {
	if baseURL := os.Getenv("XSEARCH_API_BASE_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}
	if pageSize := os.Getenv("XSEARCH_PAGE_SIZE"); pageSize != "" {
		if val, err := strconv.Atoi(pageSize); err == nil && val > 0 {
			c.API.PageSize = val
		}
	}
	if wait := os.Getenv("XSEARCH_FALLBACK_WAIT"); wait != "" {
		if d, err := time.ParseDuration(wait); err == nil && d > 0 {
			c.RateLimit.FallbackWait = d
		}
	}
	if outputDir := os.Getenv("XSEARCH_OUTPUT_DIR"); outputDir != "" {
		c.Output.Directory = outputDir
	}
	if format := os.Getenv("XSEARCH_OUTPUT_FORMAT"); format != "" {
		c.Output.Format = format
	}
	if logLevel := os.Getenv("XSEARCH_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".xsearch.yaml",
		".xsearch.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "xsearch", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "xsearch", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".xsearch.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// ApplyFlags applies command-line flag overrides
func (c *Config) ApplyFlags(flags map[string]interface{}) {
	for key, value := range flags {
		switch key {
		case "output-dir":
			if v, ok := value.(string); ok && v != "" {
				c.Output.Directory = v
			}
		case "format":
			if v, ok := value.(string); ok && v != "" {
				c.Output.Format = v
			}
		case "page-size":
			if v, ok := value.(int); ok && v > 0 {
				c.API.PageSize = v
			}
		case "fallback-wait":
			if v, ok := value.(time.Duration); ok && v > 0 {
				c.RateLimit.FallbackWait = v
			}
		case "log-level":
			if v, ok := value.(string); ok && v != "" {
				c.Logging.Level = v
			}
		}
	}
}

// Load builds the effective configuration: defaults, then config file,
// then environment (including a .env file if present), then flags.
func Load(configFile string, flags map[string]interface{}) (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.LoadFromFile(configFile); err != nil {
		return nil, err
	}

	// .env is optional; only real parse failures are errors
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		if _, statErr := os.Stat(".env"); statErr == nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}

	cfg.ApplyFlags(flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("API base URL is required"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("API timeout must be positive"))
	}
	if c.API.PageSize <= 0 || c.API.PageSize > 100 {
		errs = append(errs, errors.New("page size must be between 1 and 100"))
	}

	if c.RateLimit.WindowRequests <= 0 {
		errs = append(errs, errors.New("window requests must be positive"))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("rate window must be positive"))
	}
	if c.RateLimit.FallbackWait <= 0 {
		errs = append(errs, errors.New("fallback wait must be positive"))
	}

	if c.Output.Directory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if c.Output.Format != "csv" && c.Output.Format != "json" {
		errs = append(errs, errors.New("output format must be csv or json"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}

	return nil
}
