package report

import (
	"fmt"
	"strings"

	"github.com/harrison/segcheck/internal/girder"
	"github.com/harrison/segcheck/internal/segment"
)

// Markdown renders run as a Markdown document with one table per girder.
func Markdown(run *girder.Run) string {
	var b strings.Builder

	status := "PASS"
	if !run.Passed() {
		status = "FAIL"
	}
	total, passed, failed := run.Counts()
	fmt.Fprintf(&b, "# Segment Check Report\n\n")
	fmt.Fprintf(&b, "**Status:** %s  \n", status)
	fmt.Fprintf(&b, "**Segments:** %d (%d passed, %d failed)\n\n", total, passed, failed)

	for _, g := range run.Girders {
		fmt.Fprintf(&b, "## %s\n\n", escapeCell(g.Name))
		b.WriteString("| Segment | Result | Release f'c | Final f'c | Closure joint f'c | Deck f'c | Failed checks |\n")
		b.WriteString("|---|---|---|---|---|---|---|\n")
		for _, s := range g.Segments {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
				s.Key, passLabel(s.Passed),
				s.ReleaseStrength, s.SegmentStrength, s.ClosureJointStrength, s.DeckStrength,
				failedList(s))
		}
		fmt.Fprintf(&b, "\nGoverning release f'c: **%s**, final f'c: **%s**\n\n", g.ReleaseStrength, g.SegmentStrength)
	}

	if len(run.Errors) > 0 {
		b.WriteString("## Errors\n\n")
		for _, e := range run.Errors {
			fmt.Fprintf(&b, "- `%s`: %s\n", e.Path, escapeCell(e.Err.Error()))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func passLabel(passed bool) string {
	if passed {
		return "pass"
	}
	return "**FAIL**"
}

func failedList(s segment.Summary) string {
	failed := s.FailedChecks()
	if len(failed) == 0 {
		return "-"
	}
	names := make([]string, len(failed))
	for i, c := range failed {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// escapeCell keeps table cells on one row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
