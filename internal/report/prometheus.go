package report

import (
	"fmt"
	"io"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/harrison/segcheck/internal/girder"
	"github.com/harrison/segcheck/internal/models"
)

// Metric names in the text exposition.
const (
	MetricSegmentPassed   = "segcheck_segment_passed"
	MetricRequiredFc      = "segcheck_segment_required_fc"
	MetricGirderPassed    = "segcheck_girder_passed"
	MetricLoadErrors      = "segcheck_load_errors"
	MetricRunDurationSecs = "segcheck_run_duration_seconds"
)

// MetricFamilies converts run into gauges. Required strengths use the signed
// encoding: positive required, zero none, negative infeasible.
func MetricFamilies(run *girder.Run) []*dto.MetricFamily {
	segPassed := gaugeFamily(MetricSegmentPassed, "1 when every constituent check of the segment passed.")
	required := gaugeFamily(MetricRequiredFc, "Governing required concrete strength by stage.")
	girderPassed := gaugeFamily(MetricGirderPassed, "1 when every segment of the girder passed.")

	for _, g := range run.Girders {
		girderPassed.Metric = append(girderPassed.Metric, gauge(boolValue(g.Passed), "girder", g.Name))
		for _, s := range g.Segments {
			seg := s.Key.String()
			segPassed.Metric = append(segPassed.Metric, gauge(boolValue(s.Passed), "girder", g.Name, "segment", seg))
			for _, st := range []struct {
				stage string
				fc    models.RequiredStrength
			}{
				{"release", s.ReleaseStrength},
				{"segment", s.SegmentStrength},
				{"closure_joint", s.ClosureJointStrength},
				{"deck", s.DeckStrength},
			} {
				required.Metric = append(required.Metric,
					gauge(st.fc.Sentinel(), "girder", g.Name, "segment", seg, "stage", st.stage))
			}
		}
	}

	loadErrors := gaugeFamily(MetricLoadErrors, "Input files that could not be loaded.")
	loadErrors.Metric = append(loadErrors.Metric, gauge(float64(len(run.Errors))))
	duration := gaugeFamily(MetricRunDurationSecs, "Wall time of the check run.")
	duration.Metric = append(duration.Metric, gauge(run.Duration.Seconds()))

	return []*dto.MetricFamily{segPassed, required, girderPassed, loadErrors, duration}
}

func renderPrometheus(w io.Writer, run *girder.Run) error {
	for _, mf := range MetricFamilies(run) {
		if len(mf.Metric) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func gaugeFamily(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

// gauge builds a metric from a value and label name/value pairs.
func gauge(v float64, labels ...string) *dto.Metric {
	m := &dto.Metric{Gauge: &dto.Gauge{Value: proto.Float64(v)}}
	for i := 0; i+1 < len(labels); i += 2 {
		m.Label = append(m.Label, &dto.LabelPair{
			Name:  proto.String(labels[i]),
			Value: proto.String(labels[i+1]),
		})
	}
	return m
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
