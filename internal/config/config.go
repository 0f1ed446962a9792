package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Data     DataConfig     `yaml:"data"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Fallback FallbackConfig `yaml:"fallback"`
}

type ServerConfig struct {
	Port      string `yaml:"port"`
	StaticDir string `yaml:"static_dir"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

type DataConfig struct {
	// Dir holds local copies of the library CSVs; the file source looks
	// here before the remote source is tried.
	Dir string `yaml:"dir"`

	// LibraryBaseURL overrides the Ken French library root, mainly for
	// tests. Empty means the real library.
	LibraryBaseURL string `yaml:"library_base_url"`

	CacheTTL time.Duration `yaml:"cache_ttl"`

	// AllowSynthetic enables the pseudo-random fallback when every real
	// source fails. Output is always flagged synthetic.
	AllowSynthetic bool `yaml:"allow_synthetic"`
}

type AnalysisConfig struct {
	StartYear int     `yaml:"start_year"`
	Capital   float64 `yaml:"capital"`

	// SharpeExcess selects the excess-over-risk-free Sharpe numerator.
	// Default false: raw CAGR over volatility.
	SharpeExcess bool `yaml:"sharpe_excess"`
}

type FallbackConfig struct {
	// Policy is "omit" (default) or "substitute".
	Policy string `yaml:"policy"`

	// DefaultColumn is the portfolio column used by the substitute policy.
	DefaultColumn string `yaml:"default_column"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8080", StaticDir: "./web/dist"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Data: DataConfig{
			Dir:            "./data",
			CacheTTL:       24 * time.Hour,
			AllowSynthetic: true,
		},
		Analysis: AnalysisConfig{StartYear: 1990, Capital: 10000},
		Fallback: FallbackConfig{Policy: "omit"},
	}
}

// Load reads, defaults and validates a config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads the file over the defaults but does not validate.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Analysis.Capital <= 0 {
		return errors.New("analysis.capital must be positive")
	}
	if c.Analysis.StartYear < 0 {
		return errors.New("analysis.start_year must not be negative")
	}
	switch c.Fallback.Policy {
	case "", "omit":
	case "substitute":
		if c.Fallback.DefaultColumn == "" {
			return errors.New("fallback.default_column is required for the substitute policy")
		}
	default:
		return fmt.Errorf("unknown fallback.policy %q", c.Fallback.Policy)
	}
	if c.Data.CacheTTL < 0 {
		return errors.New("data.cache_ttl must not be negative")
	}
	return nil
}

// MergeAnalysis overlays non-zero fields from override onto base.
// Used when a request carries explicit parameter overrides.
func MergeAnalysis(base, override AnalysisConfig) AnalysisConfig {
	out := base
	if override.StartYear != 0 {
		out.StartYear = override.StartYear
	}
	if override.Capital != 0 {
		out.Capital = override.Capital
	}
	if override.SharpeExcess {
		out.SharpeExcess = true
	}
	return out
}
