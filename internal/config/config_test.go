package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join(".segcheck", "logs"), cfg.LogDir)
	assert.Equal(t, 0, cfg.MaxConcurrency)
	assert.Equal(t, "console", cfg.Report.Format)
	assert.Empty(t, cfg.Report.Output)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, filepath.Join(".segcheck", "history.db"), cfg.History.DBPath)
	assert.Equal(t, 100, cfg.History.KeepRuns)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, cfg *Config)
		wantErr string
	}{
		{
			name:    "empty file keeps defaults",
			content: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
		{
			name: "overrides top-level and nested keys",
			content: `
log_level: debug
log_dir: /tmp/segcheck-logs
max_concurrency: 4
report:
  format: markdown
  output: report.md
history:
  db_path: db/history.db
  keep_runs: 10
watch:
  debounce: 1s
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "/tmp/segcheck-logs", cfg.LogDir)
				assert.Equal(t, 4, cfg.MaxConcurrency)
				assert.Equal(t, "markdown", cfg.Report.Format)
				assert.Equal(t, "report.md", cfg.Report.Output)
				assert.True(t, cfg.History.Enabled, "unset keys keep defaults")
				assert.Equal(t, "db/history.db", cfg.History.DBPath)
				assert.Equal(t, 10, cfg.History.KeepRuns)
				assert.Equal(t, time.Second, cfg.Watch.Debounce)
			},
		},
		{
			name: "explicit false and zero override defaults",
			content: `
history:
  enabled: false
  keep_runs: 0
`,
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.History.Enabled)
				assert.Equal(t, 0, cfg.History.KeepRuns)
				assert.Equal(t, DefaultConfig().History.DBPath, cfg.History.DBPath)
			},
		},
		{
			name:    "malformed yaml",
			content: "log_level: [unterminated",
			wantErr: "failed to parse config file",
		},
		{
			name:    "bad debounce",
			content: "watch:\n  debounce: soon\n",
			wantErr: "invalid watch.debounce",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.content))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".segcheck"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".segcheck", "config.yaml"), []byte("log_level: warn\n"), 0644))

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	level, format, output := "trace", "html", "out.html"
	conc := 2
	noHistory := true

	cfg.MergeWithFlags(Flags{
		LogLevel:       &level,
		MaxConcurrency: &conc,
		Format:         &format,
		Output:         &output,
		NoHistory:      &noHistory,
	})

	assert.Equal(t, "trace", cfg.LogLevel)
	assert.Equal(t, DefaultConfig().LogDir, cfg.LogDir, "nil flags leave values alone")
	assert.Equal(t, 2, cfg.MaxConcurrency)
	assert.Equal(t, "html", cfg.Report.Format)
	assert.Equal(t, "out.html", cfg.Report.Output)
	assert.False(t, cfg.History.Enabled)

	noHistory = false
	cfg = DefaultConfig()
	cfg.MergeWithFlags(Flags{NoHistory: &noHistory})
	assert.True(t, cfg.History.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"negative concurrency", func(c *Config) { c.MaxConcurrency = -1 }, "max_concurrency"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "invalid log_level"},
		{"bad format", func(c *Config) { c.Report.Format = "pdf" }, "invalid report.format"},
		{"empty db path", func(c *Config) { c.History.DBPath = "" }, "history.db_path"},
		{"empty db path with history disabled", func(c *Config) { c.History.DBPath = ""; c.History.Enabled = false }, ""},
		{"negative keep", func(c *Config) { c.History.KeepRuns = -5 }, "keep_runs"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, "watch.debounce"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
