package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/segcheck/internal/segment"
	"github.com/harrison/segcheck/internal/store"
)

// NewHistoryCommand creates the 'segcheck history' command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded check runs",
		Long: `List check runs recorded in the history database, most recent first.

Use 'segcheck history show <run-id>' for the per-segment results of one run.
A unique prefix of the run ID is enough.`,
		Args: cobra.NoArgs,
		RunE: runHistoryList,
	}
	cmd.PersistentFlags().String("config", "", "Path to config file (default: .segcheck/config.yaml)")
	cmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 = all)")

	cmd.AddCommand(&cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the per-segment results of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	})
	return cmd
}

// openHistory opens the configured database. It returns nil without error
// when nothing has been recorded yet.
func openHistory(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(cfg.History.DBPath); os.IsNotExist(err) {
		return nil, nil
	}
	s, err := store.NewStore(cfg.History.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return s, nil
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	s, err := openHistory(cmd)
	if err != nil {
		return err
	}
	if s == nil {
		fmt.Fprintln(out, "No check runs recorded.")
		return nil
	}
	defer s.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := s.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No check runs recorded.")
		return nil
	}

	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	cyan.Fprintf(out, "%-10s %-19s %5s %8s %6s %6s  %s\n", "ID", "STARTED", "FILES", "SEGMENTS", "PASSED", "FAILED", "STATUS")
	for _, r := range runs {
		fmt.Fprintf(out, "%-10s %-19s %5d %8d %6d %6d  ",
			r.ID[:min(8, len(r.ID))], formatTimestamp(r.StartedAt),
			r.Files, r.Segments, r.Passed, r.Failed)
		if r.Success {
			green.Fprintln(out, "PASS")
		} else {
			red.Fprintln(out, "FAIL")
		}
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	s, err := openHistory(cmd)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("%w: %s", store.ErrRunNotFound, args[0])
	}
	defer s.Close()

	run, segments, err := s.GetRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	gray := color.New(color.FgHiBlack)

	cyan.Fprintf(out, "\n=== Check Run %s ===\n\n", run.ID)
	fmt.Fprintf(out, "  Started:  %s\n", formatTimestamp(run.StartedAt))
	fmt.Fprintf(out, "  Duration: %s\n", run.Duration)
	fmt.Fprintf(out, "  Status:   ")
	if run.Success {
		green.Fprint(out, "PASS")
	} else {
		red.Fprint(out, "FAIL")
	}
	fmt.Fprintf(out, " (%d passed, %d failed, %d files not loaded)\n", run.Passed, run.Failed, run.LoadErrors)

	girder := ""
	for _, seg := range segments {
		if seg.Girder != girder {
			girder = seg.Girder
			cyan.Fprintf(out, "\n%s\n", girder)
		}
		fmt.Fprintf(out, "  %-30s ", seg.Key)
		if seg.Passed {
			green.Fprint(out, "pass")
		} else {
			red.Fprint(out, "FAIL")
		}
		fmt.Fprintf(out, "  release %s, final %s, closure joint %s, deck %s\n",
			seg.ReleaseStrength, seg.SegmentStrength, seg.ClosureJointStrength, seg.DeckStrength)
		if len(seg.FailedChecks) > 0 {
			gray.Fprintf(out, "    failed: %s\n", checkList(seg.FailedChecks))
		}
	}
	return nil
}

// formatTimestamp renders t in local time.
func formatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

func checkList(checks []segment.Check) string {
	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
