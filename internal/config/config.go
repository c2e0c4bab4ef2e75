// Package config loads segcheck settings from .segcheck/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Dir is the per-project settings directory.
const Dir = ".segcheck"

// ReportConfig controls how check results are rendered.
type ReportConfig struct {
	// Format is console, markdown, html or prometheus.
	Format string `yaml:"format"`

	// Output is the report file. Empty writes to stdout.
	Output string `yaml:"output"`
}

// HistoryConfig controls the run history database.
type HistoryConfig struct {
	// Enabled records every check run.
	Enabled bool `yaml:"enabled"`

	// DBPath is the SQLite database file.
	DBPath string `yaml:"db_path"`

	// KeepRuns prunes older runs after each record (0 keeps all).
	KeepRuns int `yaml:"keep_runs"`
}

// WatchConfig controls --watch mode.
type WatchConfig struct {
	// Debounce coalesces bursts of file events.
	Debounce time.Duration `yaml:"debounce"`
}

// Config represents segcheck configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written
	LogDir string `yaml:"log_dir"`

	// MaxConcurrency bounds parallel segment evaluation (0 = GOMAXPROCS)
	MaxConcurrency int `yaml:"max_concurrency"`

	Report  ReportConfig  `yaml:"report"`
	History HistoryConfig `yaml:"history"`
	Watch   WatchConfig   `yaml:"watch"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		LogDir:         filepath.Join(Dir, "logs"),
		MaxConcurrency: 0,
		Report: ReportConfig{
			Format: "console",
		},
		History: HistoryConfig{
			Enabled:  true,
			DBPath:   filepath.Join(Dir, "history.db"),
			KeepRuns: 100,
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file yields defaults; a malformed one is an error. Keys present
// in the file override defaults, including explicit zero values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are strings in YAML.
	type yamlConfig struct {
		LogLevel       string        `yaml:"log_level"`
		LogDir         string        `yaml:"log_dir"`
		MaxConcurrency int           `yaml:"max_concurrency"`
		Report         ReportConfig  `yaml:"report"`
		History        HistoryConfig `yaml:"history"`
		Watch          struct {
			Debounce string `yaml:"debounce"`
		} `yaml:"watch"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Presence of a key, not its value, decides whether it overrides.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if has(raw, "log_level") {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if has(raw, "log_dir") {
		cfg.LogDir = yamlCfg.LogDir
	}
	if has(raw, "max_concurrency") {
		cfg.MaxConcurrency = yamlCfg.MaxConcurrency
	}

	if report := section(raw, "report"); report != nil {
		if has(report, "format") {
			cfg.Report.Format = yamlCfg.Report.Format
		}
		if has(report, "output") {
			cfg.Report.Output = yamlCfg.Report.Output
		}
	}

	if history := section(raw, "history"); history != nil {
		if has(history, "enabled") {
			cfg.History.Enabled = yamlCfg.History.Enabled
		}
		if has(history, "db_path") {
			cfg.History.DBPath = yamlCfg.History.DBPath
		}
		if has(history, "keep_runs") {
			cfg.History.KeepRuns = yamlCfg.History.KeepRuns
		}
	}

	if watch := section(raw, "watch"); watch != nil && has(watch, "debounce") {
		d, err := time.ParseDuration(yamlCfg.Watch.Debounce)
		if err != nil {
			return nil, fmt.Errorf("invalid watch.debounce %q: %w", yamlCfg.Watch.Debounce, err)
		}
		cfg.Watch.Debounce = d
	}

	return cfg, nil
}

func has(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

func section(m map[string]any, key string) map[string]any {
	s, _ := m[key].(map[string]any)
	return s
}

// LoadConfigFromDir loads configuration from .segcheck/config.yaml in the
// specified directory.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, Dir, "config.yaml"))
}

// Flags carries CLI flag values. Nil fields were not set on the command line.
type Flags struct {
	LogLevel       *string
	LogDir         *string
	MaxConcurrency *int
	Format         *string
	Output         *string
	NoHistory      *bool
}

// MergeWithFlags lets CLI flags take precedence over file settings.
func (c *Config) MergeWithFlags(f Flags) {
	if f.LogLevel != nil {
		c.LogLevel = *f.LogLevel
	}
	if f.LogDir != nil {
		c.LogDir = *f.LogDir
	}
	if f.MaxConcurrency != nil {
		c.MaxConcurrency = *f.MaxConcurrency
	}
	if f.Format != nil {
		c.Report.Format = *f.Format
	}
	if f.Output != nil {
		c.Report.Output = *f.Output
	}
	if f.NoHistory != nil && *f.NoHistory {
		c.History.Enabled = false
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be >= 0, got %d", c.MaxConcurrency)
	}

	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	validFormats := map[string]bool{"console": true, "markdown": true, "html": true, "prometheus": true}
	if !validFormats[c.Report.Format] {
		return fmt.Errorf("invalid report.format %q, must be one of: console, markdown, html, prometheus", c.Report.Format)
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path cannot be empty when history is enabled")
	}
	if c.History.KeepRuns < 0 {
		return fmt.Errorf("history.keep_runs must be >= 0, got %d", c.History.KeepRuns)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must be >= 0, got %v", c.Watch.Debounce)
	}
	return nil
}
