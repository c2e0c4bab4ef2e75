package logger

import (
	"github.com/harrison/segcheck/internal/girder"
	"github.com/harrison/segcheck/internal/segment"
)

// Multi forwards to every non-nil logger in order.
type Multi []girder.Logger

// LogSegmentResult forwards s to every logger.
func (m Multi) LogSegmentResult(s segment.Summary) {
	for _, l := range m {
		if l != nil {
			l.LogSegmentResult(s)
		}
	}
}

// LogRunSummary forwards run to every logger.
func (m Multi) LogRunSummary(run *girder.Run) {
	for _, l := range m {
		if l != nil {
			l.LogRunSummary(run)
		}
	}
}
