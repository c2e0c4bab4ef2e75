// Package girder rolls segment check results up to girders and runs the
// per-segment summaries of a check run in parallel.
package girder

import (
	"slices"
	"time"

	"github.com/harrison/segcheck/internal/models"
	"github.com/harrison/segcheck/internal/segment"
)

// Result is the rollup of every segment in one check file.
type Result struct {
	Name     string
	FilePath string
	// Segments are ordered by segment key.
	Segments []segment.Summary
	Passed   bool

	ReleaseStrength      models.RequiredStrength
	SegmentStrength      models.RequiredStrength
	ClosureJointStrength models.RequiredStrength
	DeckStrength         models.RequiredStrength
}

// NewResult rolls summaries up. The girder passes when every segment passes;
// governing strengths follow models.GoverningStrength across segments.
func NewResult(name, path string, summaries []segment.Summary) *Result {
	r := &Result{
		Name:     name,
		FilePath: path,
		Segments: slices.Clone(summaries),
		Passed:   true,
	}
	slices.SortFunc(r.Segments, func(a, b segment.Summary) int { return a.Key.Compare(b.Key) })

	var release, final, closure, deck []models.RequiredStrength
	for _, s := range r.Segments {
		if !s.Passed {
			r.Passed = false
		}
		release = append(release, s.ReleaseStrength)
		final = append(final, s.SegmentStrength)
		closure = append(closure, s.ClosureJointStrength)
		deck = append(deck, s.DeckStrength)
	}
	r.ReleaseStrength = models.GoverningStrength(release...)
	r.SegmentStrength = models.GoverningStrength(final...)
	r.ClosureJointStrength = models.GoverningStrength(closure...)
	r.DeckStrength = models.GoverningStrength(deck...)
	return r
}

// FailedSegments returns the summaries of segments that did not pass.
func (r *Result) FailedSegments() []segment.Summary {
	var failed []segment.Summary
	for _, s := range r.Segments {
		if !s.Passed {
			failed = append(failed, s)
		}
	}
	return failed
}

// FileError records a check file that could not be loaded.
type FileError struct {
	Path string
	Err  error
}

// Error returns the path followed by the load error.
func (e FileError) Error() string { return e.Path + ": " + e.Err.Error() }

// Unwrap returns the load error.
func (e FileError) Unwrap() error { return e.Err }

// Run is the outcome of checking a set of files.
type Run struct {
	StartedAt time.Time
	Duration  time.Duration
	Girders   []*Result
	Errors    []FileError
}

// Passed reports whether every file loaded and every girder passed.
func (r *Run) Passed() bool {
	if len(r.Errors) > 0 {
		return false
	}
	for _, g := range r.Girders {
		if !g.Passed {
			return false
		}
	}
	return true
}

// Counts returns the number of segments checked, passed and failed.
func (r *Run) Counts() (total, passed, failed int) {
	for _, g := range r.Girders {
		for _, s := range g.Segments {
			total++
			if s.Passed {
				passed++
			} else {
				failed++
			}
		}
	}
	return total, passed, failed
}
