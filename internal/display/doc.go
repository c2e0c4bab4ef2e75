// Package display provides terminal output for segcheck commands that is not
// part of a report: load progress and user-facing warnings.
//
// Warnings are printed in yellow:
//
//	display.Warning{
//	    Title:      "Segments Without Hauling Analysis",
//	    Files:      []string{"Group 1 Girder A Segment 2"},
//	    Suggestion: "Add a hauling section to include hauling in the final strength",
//	}.Display(os.Stderr)
//
// All functions accept io.Writer so output can be captured in tests.
package display
