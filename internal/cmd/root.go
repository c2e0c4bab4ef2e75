package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for segcheck
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segcheck",
		Short: "Structural compliance checks for precast and spliced girder segments",
		Long: `segcheck aggregates the results of a girder segment analysis into
pass/fail verdicts and required concrete strengths.

It reads check documents (YAML or JSON) holding the outcome of each
constituent check, rolls them up per segment and per girder, resolves the
concrete strength required at release and at final, and records every run
in a local history database.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
