package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrison/logan/internal/models"
	"github.com/harrison/logan/internal/report"
)

// ReportConfig controls the optional report written at the end of a run
type ReportConfig struct {
	// Path is where the report is written (empty = no report)
	Path string `yaml:"path"`

	// Format is markdown (or md) or html
	Format string `yaml:"format"`
}

// Config represents logan configuration options
type Config struct {
	// Workers is the worker pool size for parallel runs (0 = number of CPUs)
	Workers int `yaml:"workers"`

	// DrainTimeout bounds how long the coordinator waits for each file (0 = no limit)
	DrainTimeout time.Duration `yaml:"drain_timeout"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written (empty = no run log)
	LogDir string `yaml:"log_dir"`

	// Mode selects the runner: parallel, sequential or compare
	Mode string `yaml:"mode"`

	// Extensions are the file extensions picked up from directory arguments
	Extensions []string `yaml:"extensions"`

	// Recursive descends into subdirectories of directory arguments
	Recursive bool `yaml:"recursive"`

	// ExcludeDirs are directory names skipped while descending
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// MaxLines caps the flagged lines printed per file (-1 = all)
	MaxLines int `yaml:"max_lines"`

	// Report configures report export
	Report ReportConfig `yaml:"report"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Workers:      0,
		DrainTimeout: 0,
		LogLevel:     "info",
		LogDir:       "",
		Mode:         models.ModeParallel,
		Extensions:   []string{".log"},
		Recursive:    false,
		ExcludeDirs:  []string{".git", "node_modules"},
		MaxLines:     5,
		Report: ReportConfig{
			Format: report.FormatMarkdown,
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are strings in YAML; pointers mark keys that were present.
	type yamlConfig struct {
		Workers      *int     `yaml:"workers"`
		DrainTimeout string   `yaml:"drain_timeout"`
		LogLevel     string   `yaml:"log_level"`
		LogDir       string   `yaml:"log_dir"`
		Mode         string   `yaml:"mode"`
		Extensions   []string `yaml:"extensions"`
		Recursive    *bool    `yaml:"recursive"`
		ExcludeDirs  []string `yaml:"exclude_dirs"`
		MaxLines     *int     `yaml:"max_lines"`
		Report       struct {
			Path   string `yaml:"path"`
			Format string `yaml:"format"`
		} `yaml:"report"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.Workers != nil {
		cfg.Workers = *yamlCfg.Workers
	}
	if yamlCfg.DrainTimeout != "" {
		d, err := time.ParseDuration(yamlCfg.DrainTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid drain_timeout format %q: %w", yamlCfg.DrainTimeout, err)
		}
		cfg.DrainTimeout = d
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.Mode != "" {
		cfg.Mode = yamlCfg.Mode
	}
	if len(yamlCfg.Extensions) > 0 {
		cfg.Extensions = yamlCfg.Extensions
	}
	if yamlCfg.Recursive != nil {
		cfg.Recursive = *yamlCfg.Recursive
	}
	if yamlCfg.ExcludeDirs != nil {
		cfg.ExcludeDirs = yamlCfg.ExcludeDirs
	}
	if yamlCfg.MaxLines != nil {
		cfg.MaxLines = *yamlCfg.MaxLines
	}
	if yamlCfg.Report.Path != "" {
		cfg.Report.Path = yamlCfg.Report.Path
	}
	if yamlCfg.Report.Format != "" {
		cfg.Report.Format = yamlCfg.Report.Format
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .logan/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".logan", "config.yaml"))
}

// Overrides holds command-line values. Nil fields leave the configuration untouched.
type Overrides struct {
	Workers      *int
	DrainTimeout *time.Duration
	LogLevel     *string
	LogDir       *string
	Mode         *string
	Extensions   *[]string
	Recursive    *bool
	MaxLines     *int
	ReportPath   *string
	ReportFormat *string
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(o Overrides) {
	if o.Workers != nil {
		c.Workers = *o.Workers
	}
	if o.DrainTimeout != nil {
		c.DrainTimeout = *o.DrainTimeout
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.LogDir != nil {
		c.LogDir = *o.LogDir
	}
	if o.Mode != nil {
		c.Mode = *o.Mode
	}
	if o.Extensions != nil {
		c.Extensions = *o.Extensions
	}
	if o.Recursive != nil {
		c.Recursive = *o.Recursive
	}
	if o.MaxLines != nil {
		c.MaxLines = *o.MaxLines
	}
	if o.ReportPath != nil {
		c.Report.Path = *o.ReportPath
	}
	if o.ReportFormat != nil {
		c.Report.Format = *o.ReportFormat
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}

	if c.DrainTimeout < 0 {
		return fmt.Errorf("drain_timeout must be >= 0, got %v", c.DrainTimeout)
	}

	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	switch c.Mode {
	case models.ModeParallel, models.ModeSequential, models.ModeCompare:
	default:
		return fmt.Errorf("invalid mode %q, must be one of: parallel, sequential, compare", c.Mode)
	}

	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions cannot be empty")
	}
	for _, ext := range c.Extensions {
		if strings.TrimSpace(ext) == "" {
			return fmt.Errorf("extensions cannot contain an empty entry")
		}
	}

	if c.MaxLines < -1 {
		return fmt.Errorf("max_lines must be >= -1, got %d", c.MaxLines)
	}

	if _, err := report.NormalizeFormat(c.Report.Format); err != nil {
		return fmt.Errorf("invalid report.format: %w", err)
	}

	return nil
}
