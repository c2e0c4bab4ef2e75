package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/harrison/segcheck/internal/girder"
	"github.com/harrison/segcheck/internal/segment"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Items      []string // Affected files or segments (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("\x1b[33m")
	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	for i, item := range w.Items {
		fmt.Fprintf(&b, "      %d. %s\n", i+1, item)
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	b.WriteString("\x1b[0m")
	fmt.Fprint(out, b.String())
}

// RunWarnings returns the warnings worth showing after run. Segments without
// a hauling analysis are reported because their final strength ignores
// hauling, and infeasible strengths because no mix can satisfy them.
func RunWarnings(run *girder.Run) []Warning {
	if run == nil {
		return nil
	}

	var warnings []Warning
	if len(run.Errors) > 0 {
		items := make([]string, len(run.Errors))
		for i, e := range run.Errors {
			items[i] = e.Error()
		}
		warnings = append(warnings, Warning{
			Title:      "Check Files Not Loaded",
			Message:    "These files were skipped and are not part of the results.",
			Items:      items,
			Suggestion: "Fix the reported problems and run the check again",
		})
	}

	var noHauling, infeasible []string
	for _, g := range run.Girders {
		for _, s := range g.Segments {
			label := segmentLabel(g, s)
			if !s.HasHauling {
				noHauling = append(noHauling, label)
			}
			if s.ReleaseStrength.IsInfeasible() || s.SegmentStrength.IsInfeasible() ||
				s.ClosureJointStrength.IsInfeasible() || s.DeckStrength.IsInfeasible() {
				infeasible = append(infeasible, label)
			}
		}
	}

	if len(noHauling) > 0 {
		warnings = append(warnings, Warning{
			Title:      "Segments Without Hauling Analysis",
			Message:    "Final concrete strength does not include hauling for these segments.",
			Items:      noHauling,
			Suggestion: "Add a hauling section to each segment",
		})
	}
	if len(infeasible) > 0 {
		warnings = append(warnings, Warning{
			Title:   "No Concrete Strength Satisfies Stress Limits",
			Message: "At least one required strength is infeasible.",
			Items:   infeasible,
		})
	}
	return warnings
}

func segmentLabel(g *girder.Result, s segment.Summary) string {
	if g.Name == "" {
		return s.Key.String()
	}
	return g.Name + ": " + s.Key.String()
}
