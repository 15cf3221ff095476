// Package config provides configuration management for the vacancy scanner.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingSearchText        = errors.New("search.text is required")
	ErrInvalidPerPage           = errors.New("search.per_page must be between 1 and 100")
	ErrInvalidPages             = errors.New("search.pages must be non-negative")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrMissingOutputDir         = errors.New("output.dir is required")
	ErrInvalidTopCount          = errors.New("output.top_count must be non-negative")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrEmptySynonym             = errors.New("synonyms entries must not be empty")
)

// Config represents the complete scanner configuration.
type Config struct {
	Scanner  ScannerConfig  `yaml:"scanner"`
	Classify ClassifyConfig `yaml:"classify"`
	Features FeaturesConfig `yaml:"features"`
}

// ScannerConfig contains the fetch and report settings.
type ScannerConfig struct {
	Search   SearchConfig        `yaml:"search"`
	Rate     RateConfig          `yaml:"rate"`
	Retry    RetryPolicy         `yaml:"retry"`
	Output   OutputConfig        `yaml:"output"`
	Logging  LoggingConfig       `yaml:"logging"`
	Synonyms map[string][]string `yaml:"synonyms"`
}

// SearchConfig drives the hh.ru vacancy search.
type SearchConfig struct {
	Text      string `yaml:"text"`
	Area      string `yaml:"area"`
	Pages     int    `yaml:"pages"` // 0 means all available pages
	PerPage   int    `yaml:"per_page"`
	UserAgent string `yaml:"user_agent"`
}

// RateConfig spaces out API requests.
type RateConfig struct {
	DetailDelayMs int `yaml:"detail_delay_ms"`
	PageDelayMs   int `yaml:"page_delay_ms"`
}

// GetDetailDelay returns the pause between vacancy detail requests.
func (r *RateConfig) GetDetailDelay() time.Duration {
	return time.Duration(r.DetailDelayMs) * time.Millisecond
}

// GetPageDelay returns the pause between search page requests.
func (r *RateConfig) GetPageDelay() time.Duration {
	return time.Duration(r.PageDelayMs) * time.Millisecond
}

// RetryPolicy defines retry behavior for API calls.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if rp.MaxDelayMs > 0 && int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the per-request timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// OutputConfig defines where reports are written.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	PrettyPrint bool   `yaml:"pretty_print"`
	TopCount    int    `yaml:"top_count"`
}

// VacanciesPath returns the path of the scanned vacancies CSV.
func (o *OutputConfig) VacanciesPath() string {
	return filepath.Join(o.Dir, "vacancies.csv")
}

// CategorizedPath returns the path of the categorized vacancies CSV.
func (o *OutputConfig) CategorizedPath() string {
	return filepath.Join(o.Dir, "categorized.csv")
}

// RatingPath returns the path of the overall technology rating CSV.
func (o *OutputConfig) RatingPath() string {
	return filepath.Join(o.Dir, "tech_rating.csv")
}

// RatingByFieldPath returns the path of the per-field technology rating CSV.
func (o *OutputConfig) RatingByFieldPath() string {
	return filepath.Join(o.Dir, "tech_rating_by_field.csv")
}

// SummaryPath returns the path of the summary JSON report.
func (o *OutputConfig) SummaryPath() string {
	return filepath.Join(o.Dir, "stats_summary.json")
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ClassifyConfig configures the LLM categorization stage.
type ClassifyConfig struct {
	Model      string `yaml:"model"`
	BaseURL    string `yaml:"base_url"`
	SleepMs    int    `yaml:"sleep_ms"`
	MaxRetries int    `yaml:"max_retries"`
}

// GetSleep returns the pause between LLM calls.
func (c *ClassifyConfig) GetSleep() time.Duration {
	return time.Duration(c.SleepMs) * time.Millisecond
}

// FeaturesConfig contains feature flags.
type FeaturesConfig struct {
	EnableLLMCategories   bool `yaml:"enable_llm_categories"`
	ContinueOnFetchErrors bool `yaml:"continue_on_fetch_errors"`
}

// Default returns the configuration used when no file is given. The values
// mirror the public hh.ru API limits.
func Default() *Config {
	return &Config{
		Scanner: ScannerConfig{
			Search: SearchConfig{
				Text:      "C++",
				Area:      "113",
				Pages:     5,
				PerPage:   50,
				UserAgent: "vacradar/1.0 (+https://example.local)",
			},
			Rate: RateConfig{
				DetailDelayMs: 150,
				PageDelayMs:   500,
			},
			Retry: RetryPolicy{
				MaxAttempts:       5,
				InitialDelayMs:    700,
				MaxDelayMs:        8000,
				BackoffMultiplier: 2.0,
				TimeoutSec:        20,
			},
			Output: OutputConfig{
				Dir:         "out",
				PrettyPrint: true,
				TopCount:    20,
			},
			Logging: LoggingConfig{Level: "info"},
		},
		Classify: ClassifyConfig{
			Model:      "gpt-5-mini",
			SleepMs:    7000,
			MaxRetries: 3,
		},
	}
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Scanner.Search.Text == "" {
		return ErrMissingSearchText
	}

	if c.Scanner.Search.PerPage < 1 || c.Scanner.Search.PerPage > 100 {
		return ErrInvalidPerPage
	}

	if c.Scanner.Search.Pages < 0 {
		return ErrInvalidPages
	}

	if c.Scanner.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Scanner.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Scanner.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Scanner.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Scanner.Output.Dir == "" {
		return ErrMissingOutputDir
	}

	if c.Scanner.Output.TopCount < 0 {
		return ErrInvalidTopCount
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Scanner.Logging.Level] {
		return ErrInvalidLogLevel
	}

	for canonical, forms := range c.Scanner.Synonyms {
		if canonical == "" || len(forms) == 0 {
			return ErrEmptySynonym
		}

		for _, form := range forms {
			if form == "" {
				return fmt.Errorf("%w: %q", ErrEmptySynonym, canonical)
			}
		}
	}

	return nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Search: %q, Area: %s, Pages: %d, Output: %s}",
		c.Scanner.Search.Text,
		c.Scanner.Search.Area,
		c.Scanner.Search.Pages,
		c.Scanner.Output.Dir,
	)
}
