package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrison/segcheck/internal/config"
	"github.com/harrison/segcheck/internal/display"
	"github.com/harrison/segcheck/internal/filelock"
	"github.com/harrison/segcheck/internal/girder"
	"github.com/harrison/segcheck/internal/logger"
	"github.com/harrison/segcheck/internal/parser"
	"github.com/harrison/segcheck/internal/report"
	"github.com/harrison/segcheck/internal/store"
	"github.com/harrison/segcheck/internal/watch"
)

// ErrChecksFailed is returned by check when any segment failed or any file
// could not be loaded. main turns it into exit status 1.
var ErrChecksFailed = errors.New("one or more segment checks failed")

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file-or-directory>...",
		Short: "Evaluate segment check documents",
		Long: `Evaluate one or more check documents and report pass/fail and required
concrete strengths for every segment.

Directories are searched recursively for .yaml, .yml and .json files.
Configuration is loaded from .segcheck/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  segcheck check girder-a.yaml
  segcheck check results/ --format markdown --output report.md
  segcheck check results/ --format prometheus --output segcheck.prom
  segcheck check girder-a.yaml --watch
  segcheck check girder-a.yaml --no-history`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCheck,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .segcheck/config.yaml)")
	cmd.Flags().String("format", "", "Report format: console, markdown, html, prometheus")
	cmd.Flags().String("output", "", "Write the report to a file instead of stdout")
	cmd.Flags().Int("concurrency", -1, "Segments evaluated in parallel (0 = GOMAXPROCS, -1 = use config)")
	cmd.Flags().Bool("watch", false, "Re-run the check whenever an input file changes")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Directory for run log files")

	return cmd
}

// loadConfig reads --config or .segcheck/config.yaml and applies flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.LoadConfigFromDir(".")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var flags config.Flags
	stringFlag := func(name string) *string {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			v := f.Value.String()
			return &v
		}
		return nil
	}
	flags.LogLevel = stringFlag("log-level")
	flags.LogDir = stringFlag("log-dir")
	flags.Format = stringFlag("format")
	flags.Output = stringFlag("output")
	if cmd.Flags().Changed("concurrency") {
		if v, _ := cmd.Flags().GetInt("concurrency"); v >= 0 {
			flags.MaxConcurrency = &v
		}
	}
	if cmd.Flags().Changed("no-history") {
		v, _ := cmd.Flags().GetBool("no-history")
		flags.NoHistory = &v
	}
	cfg.MergeWithFlags(flags)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}
	paths, err := parser.ExpandPaths(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(cmd.ErrOrStderr(), "\nReceived interrupt signal, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	console := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	loggers := logger.Multi{console}
	if cfg.LogDir != "" {
		fileLogger, err := logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer fileLogger.Close()
		loggers = append(loggers, fileLogger)
	}

	c := &checker{
		cmd:     cmd,
		cfg:     cfg,
		format:  format,
		console: console,
		eval:    girder.NewEvaluator(cfg.MaxConcurrency, loggers),
	}

	run, err := c.once(ctx, paths)
	if err != nil {
		return err
	}

	if watchMode, _ := cmd.Flags().GetBool("watch"); watchMode {
		return c.watch(ctx, args)
	}
	if !run.Passed() {
		return ErrChecksFailed
	}
	return nil
}

type checker struct {
	cmd     *cobra.Command
	cfg     *config.Config
	format  report.Format
	console *logger.ConsoleLogger
	eval    *girder.Evaluator
}

// once evaluates paths, writes the report and warnings, and records history.
func (c *checker) once(ctx context.Context, paths []string) (*girder.Run, error) {
	stderr := c.cmd.ErrOrStderr()

	eval := c.eval
	if len(paths) > 1 {
		progress := display.NewProgressIndicator(stderr, len(paths))
		progress.Start()
		eval = eval.WithLoader(func(path string) (*parser.Project, error) {
			progress.Step(path)
			return parser.Load(path)
		})
		defer progress.Complete()
	} else {
		display.DisplaySingleFile(stderr, paths[0])
	}

	run, err := eval.EvaluateFiles(ctx, paths)
	if err != nil {
		return nil, err
	}

	if err := c.render(run); err != nil {
		return nil, err
	}
	for _, w := range display.RunWarnings(run) {
		w.Display(stderr)
	}

	if c.cfg.History.Enabled {
		id, err := recordHistory(ctx, c.cfg.History, run)
		if err != nil {
			c.console.LogWarn(fmt.Sprintf("failed to record history: %v", err))
		} else {
			c.console.LogInfo(fmt.Sprintf("Recorded run %s", id))
		}
	}
	return run, nil
}

func (c *checker) render(run *girder.Run) error {
	if out := c.cfg.Report.Output; out != "" {
		if err := filelock.AtomicWriteFunc(out, func(w io.Writer) error {
			return report.Render(w, c.format, run, report.Options{})
		}); err != nil {
			return err
		}
		c.console.LogInfo(fmt.Sprintf("Report written to %s", out))
		return nil
	}

	w := c.cmd.OutOrStdout()
	opts := report.Options{Color: w == os.Stdout && isatty.IsTerminal(os.Stdout.Fd())}
	return report.Render(w, c.format, run, opts)
}

// watch re-runs the check for all inputs whenever one of them changes.
func (c *checker) watch(ctx context.Context, args []string) error {
	match := func(p string) bool { return parser.DetectFormat(p) != parser.FormatUnknown }
	w, err := watch.New(args, match, c.cfg.Watch.Debounce, c.console)
	if err != nil {
		return err
	}
	c.console.LogInfo("Watching for changes (Ctrl+C to stop)")

	return w.Run(ctx, func(changed []string) {
		for _, p := range changed {
			c.console.LogInfo(fmt.Sprintf("Changed: %s", p))
		}
		paths, err := parser.ExpandPaths(args)
		if err != nil {
			c.console.LogError(err.Error())
			return
		}
		if _, err := c.once(ctx, paths); err != nil && !errors.Is(err, context.Canceled) {
			c.console.LogError(err.Error())
		}
	})
}

// recordHistory stores run under the history lock and prunes old runs.
func recordHistory(ctx context.Context, cfg config.HistoryConfig, run *girder.Run) (string, error) {
	var id string
	err := filelock.WithLock(ctx, cfg.DBPath, func() error {
		s, err := store.NewStore(cfg.DBPath)
		if err != nil {
			return err
		}
		defer s.Close()

		id, err = s.RecordRun(ctx, run)
		if err != nil {
			return err
		}
		_, err = s.Prune(ctx, cfg.KeepRuns)
		return err
	})
	return id, err
}
