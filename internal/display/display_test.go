package display

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/segcheck/internal/girder"
	"github.com/harrison/segcheck/internal/models"
	"github.com/harrison/segcheck/internal/segment"
)

func TestWarning_Display(t *testing.T) {
	tests := []struct {
		name     string
		warning  Warning
		contains []string
		absent   []string
	}{
		{
			name:     "title only",
			warning:  Warning{Title: "Configuration Missing"},
			contains: []string{"\x1b[33m", "⚠️  Warning: Configuration Missing\n", "\x1b[0m"},
			absent:   []string{"Suggestion:"},
		},
		{
			name: "all fields",
			warning: Warning{
				Title:      "Segments Without Hauling Analysis",
				Message:    "Final strength ignores hauling.",
				Items:      []string{"Group 1 Girder A Segment 1", "Group 1 Girder A Segment 2"},
				Suggestion: "Add a hauling section",
			},
			contains: []string{
				"    Final strength ignores hauling.\n",
				"      1. Group 1 Girder A Segment 1\n",
				"      2. Group 1 Girder A Segment 2\n",
				"    Suggestion:\n    Add a hauling section\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.warning.Display(&buf)
			out := buf.String()
			assert.True(t, strings.HasPrefix(out, "\x1b[33m"))
			assert.True(t, strings.HasSuffix(out, "\x1b[0m"))
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRunWarnings(t *testing.T) {
	assert.Nil(t, RunWarnings(nil))

	clean := segment.Summary{Key: models.SegmentKey{}, Passed: true, HasHauling: true, ReleaseStrength: models.RequiredFc(4)}
	assert.Empty(t, RunWarnings(&girder.Run{Girders: []*girder.Result{girder.NewResult("a", "", []segment.Summary{clean})}}))

	noHauling := segment.Summary{Key: models.SegmentKey{Segment: 1}, Passed: true}
	infeasible := segment.Summary{Key: models.SegmentKey{Segment: 2}, HasHauling: true, DeckStrength: models.InfeasibleStrength()}
	run := &girder.Run{
		Girders: []*girder.Result{girder.NewResult("girder-a", "", []segment.Summary{clean, noHauling, infeasible})},
		Errors:  []girder.FileError{{Path: "bad.yaml", Err: errors.New("empty check document")}},
	}

	warnings := RunWarnings(run)
	require.Len(t, warnings, 3)

	assert.Equal(t, "Check Files Not Loaded", warnings[0].Title)
	assert.Equal(t, []string{"bad.yaml: empty check document"}, warnings[0].Items)

	assert.Equal(t, "Segments Without Hauling Analysis", warnings[1].Title)
	assert.Equal(t, []string{"girder-a: Group 1 Girder A Segment 2"}, warnings[1].Items)

	assert.Equal(t, "No Concrete Strength Satisfies Stress Limits", warnings[2].Title)
	assert.Equal(t, []string{"girder-a: Group 1 Girder A Segment 3"}, warnings[2].Items)
}

func TestProgressIndicator(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressIndicator(&buf, 3)
	p.Start()

	var wg sync.WaitGroup
	for _, f := range []string{"dir/a.yaml", "dir/b.yaml", "c.json"} {
		wg.Add(1)
		go func(f string) {
			defer wg.Done()
			p.Step(f)
		}(f)
	}
	wg.Wait()
	p.Complete()

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Loading check files:\n"))
	for _, s := range []string{"[1/3]", "[2/3]", "[3/3]", "a.yaml", "b.yaml", "c.json"} {
		assert.Contains(t, out, s)
	}
	assert.NotContains(t, out, "dir/")
	assert.Contains(t, out, "Loaded 3 of 3 check files")
}

func TestDisplaySingleFile(t *testing.T) {
	var buf bytes.Buffer
	DisplaySingleFile(&buf, "girder-a.yaml")
	assert.Equal(t, "Checking girder-a.yaml...\n", buf.String())
}
