package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/segcheck/internal/girder"
	"github.com/harrison/segcheck/internal/models"
	"github.com/harrison/segcheck/internal/segment"
)

func sampleRun() *girder.Run {
	ok := segment.Summary{
		Key:                  models.SegmentKey{Group: 0, Girder: 0, Segment: 0},
		Passed:               true,
		ReleaseStrength:      models.RequiredFc(5.0),
		SegmentStrength:      models.RequiredFc(6.2),
		ClosureJointStrength: models.RequiredFc(5.0),
		DeckStrength:         models.RequiredFc(3.5),
		HasHauling:           true,
	}
	bad := segment.Summary{
		Key:             models.SegmentKey{Group: 0, Girder: 0, Segment: 1},
		Passed:          false,
		ReleaseStrength: models.InfeasibleStrength(),
		SegmentStrength: models.RequiredFc(7.0),
		Checks: []segment.CheckOutcome{
			{Check: segment.CheckHoldDownForce, Evaluated: true, Passed: false},
			{Check: segment.CheckFlexuralStress, Evaluated: true, Passed: false},
			{Check: segment.CheckStirrups, Evaluated: true, Passed: true},
		},
	}
	return &girder.Run{
		StartedAt: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
		Duration:  2 * time.Second,
		Girders:   []*girder.Result{girder.NewResult("girder-a", "testdata/girder-a.yaml", []segment.Summary{bad, ok})},
		Errors:    []girder.FileError{{Path: "missing.yaml", Err: errors.New("file does not exist")}},
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":           FormatConsole,
		"Console":    FormatConsole,
		"md":         FormatMarkdown,
		"markdown":   FormatMarkdown,
		"HTML":       FormatHTML,
		"prometheus": FormatPrometheus,
		"prom":       FormatPrometheus,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "console, markdown, html, prometheus")
}

func TestRender_NilRun(t *testing.T) {
	assert.Error(t, Render(&bytes.Buffer{}, FormatConsole, nil, Options{}))
}

func TestRender_UnknownFormat(t *testing.T) {
	assert.Error(t, Render(&bytes.Buffer{}, Format("pdf"), sampleRun(), Options{}))
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatConsole, sampleRun(), Options{Color: false}))
	out := buf.String()

	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, "girder-a  FAIL")
	assert.Contains(t, out, "testdata/girder-a.yaml")
	assert.Contains(t, out, "x hold-down force")
	assert.Contains(t, out, "x flexural stress")
	assert.NotContains(t, out, "x stirrups")
	assert.Contains(t, out, "no hauling analysis")
	assert.Contains(t, out, "governing f'c: release infeasible, segment 7.000")
	assert.Contains(t, out, "ERROR missing.yaml: file does not exist")
	assert.Contains(t, out, "Total: 2 segments, 1 passed, 1 failed")

	// Segments are listed in key order.
	first := strings.Index(out, "Group 1 Girder A Segment 1")
	second := strings.Index(out, "Group 1 Girder A Segment 2")
	require.True(t, first >= 0 && second >= 0)
	assert.Less(t, first, second)
}

func TestConsole_Color(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatConsole, sampleRun(), Options{Color: true}))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestMarkdown(t *testing.T) {
	out := Markdown(sampleRun())

	assert.True(t, strings.HasPrefix(out, "# Segment Check Report\n"))
	assert.Contains(t, out, "**Status:** FAIL")
	assert.Contains(t, out, "**Segments:** 2 (1 passed, 1 failed)")
	assert.Contains(t, out, "## girder-a")
	assert.Contains(t, out, "| Group 1 Girder A Segment 1 | pass | 5.000 | 6.200 | 5.000 | 3.500 | - |")
	assert.Contains(t, out, "| Group 1 Girder A Segment 2 | **FAIL** | infeasible | 7.000 | none | none | hold-down force, flexural stress |")
	assert.Contains(t, out, "- `missing.yaml`: file does not exist")
}

func TestMarkdown_EscapesCells(t *testing.T) {
	run := &girder.Run{Girders: []*girder.Result{girder.NewResult("a|b", "", nil)}}
	assert.Contains(t, Markdown(run), `## a\|b`)
	assert.Contains(t, Markdown(run), "**Status:** PASS")
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatHTML, sampleRun(), Options{}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<h1>Segment Check Report</h1>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<th>Segment</th>")
	assert.Contains(t, out, "<td>Group 1 Girder A Segment 2</td>")
	assert.Contains(t, out, "<strong>FAIL</strong>")
	assert.True(t, strings.HasSuffix(out, "</html>\n"))
}

func TestPrometheus(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatPrometheus, sampleRun(), Options{}))

	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(strings.NewReader(buf.String()))
	require.NoError(t, err)

	require.Contains(t, mfs, MetricSegmentPassed)
	assert.Len(t, mfs[MetricSegmentPassed].GetMetric(), 2)

	require.Contains(t, mfs, MetricRequiredFc)
	assert.Len(t, mfs[MetricRequiredFc].GetMetric(), 8)

	values := map[string]float64{}
	for _, m := range mfs[MetricRequiredFc].GetMetric() {
		labels := map[string]string{}
		for _, lp := range m.GetLabel() {
			labels[lp.GetName()] = lp.GetValue()
		}
		values[labels["segment"]+"/"+labels["stage"]] = m.GetGauge().GetValue()
	}
	assert.Equal(t, 6.2, values["Group 1 Girder A Segment 1/segment"])
	assert.Equal(t, -1.0, values["Group 1 Girder A Segment 2/release"])
	assert.Equal(t, 0.0, values["Group 1 Girder A Segment 2/deck"])

	require.Contains(t, mfs, MetricGirderPassed)
	assert.Equal(t, 0.0, mfs[MetricGirderPassed].GetMetric()[0].GetGauge().GetValue())
	assert.Equal(t, 1.0, mfs[MetricLoadErrors].GetMetric()[0].GetGauge().GetValue())
	assert.Equal(t, 2.0, mfs[MetricRunDurationSecs].GetMetric()[0].GetGauge().GetValue())
}

func TestPrometheus_EmptyRun(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatPrometheus, &girder.Run{}, Options{}))
	assert.NotContains(t, buf.String(), MetricSegmentPassed)
	assert.Contains(t, buf.String(), MetricLoadErrors+" 0")
}
