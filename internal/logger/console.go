package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/harrison/segcheck/internal/girder"
	"github.com/harrison/segcheck/internal/segment"
)

// ConsoleLogger logs check progress to a writer with timestamps.
// All output is prefixed with [HH:MM:SS]. Color output is enabled only for
// os.Stdout and os.Stderr when color.NoColor is false.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to writer.
// A nil writer discards messages. Unknown levels fall back to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		return !color.NoColor
	}
	return false
}

func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return allows(cl.logLevel, messageLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) { cl.logWithLevel("TRACE", message) }

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) { cl.logWithLevel("DEBUG", message) }

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) { cl.logWithLevel("INFO", message) }

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) { cl.logWithLevel("WARN", message) }

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) { cl.logWithLevel("ERROR", message) }

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	label := level
	if cl.colorOutput {
		label = levelColor(level).Sprint(level)
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", timestamp(), label, message)
}

func levelColor(level string) *color.Color {
	switch level {
	case "TRACE":
		return color.New(color.FgHiBlack)
	case "DEBUG":
		return color.New(color.FgCyan)
	case "WARN":
		return color.New(color.FgYellow)
	case "ERROR":
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}

// LogSegmentResult logs one segment outcome at DEBUG level when it passed
// and at INFO level when it failed.
// Format: "[HH:MM:SS] Group 1 Girder A Segment 1: PASS (release f'c 5.000)"
func (cl *ConsoleLogger) LogSegmentResult(s segment.Summary) {
	level := "debug"
	if !s.Passed {
		level = "info"
	}
	if cl.writer == nil || !cl.shouldLog(level) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	status := "PASS"
	if !s.Passed {
		status = "FAIL"
	}
	if cl.colorOutput {
		if s.Passed {
			status = color.New(color.FgGreen).Sprint(status)
		} else {
			status = color.New(color.FgRed).Sprint(status)
		}
	}

	detail := fmt.Sprintf("release f'c %s, final f'c %s", s.ReleaseStrength, s.SegmentStrength)
	if failed := s.FailedChecks(); len(failed) > 0 {
		names := make([]string, len(failed))
		for i, c := range failed {
			names[i] = string(c)
		}
		detail += "; failed: " + strings.Join(names, ", ")
	}
	fmt.Fprintf(cl.writer, "[%s] %s: %s (%s)\n", timestamp(), s.Key, status, detail)
}

// LogRunSummary logs the run totals at INFO level.
func (cl *ConsoleLogger) LogRunSummary(run *girder.Run) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	total, passed, failed := run.Counts()

	header := "=== Check Summary ==="
	passedText := fmt.Sprintf("Passed: %d", passed)
	failedText := fmt.Sprintf("Failed: %d", failed)
	if cl.colorOutput {
		header = color.New(color.Bold).Sprint(header)
		passedText = color.New(color.FgGreen).Sprint(passedText)
		if failed > 0 {
			failedText = color.New(color.FgRed).Sprint(failedText)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", ts, header)
	fmt.Fprintf(&b, "[%s] Files: %d\n", ts, len(run.Girders)+len(run.Errors))
	fmt.Fprintf(&b, "[%s] Segments: %d\n", ts, total)
	fmt.Fprintf(&b, "[%s] %s\n", ts, passedText)
	fmt.Fprintf(&b, "[%s] %s\n", ts, failedText)
	fmt.Fprintf(&b, "[%s] Duration: %s\n", ts, formatDuration(run.Duration))
	for _, e := range run.Errors {
		fmt.Fprintf(&b, "[%s]   - %s\n", ts, e.Error())
	}
	io.WriteString(cl.writer, b.String())
}

// NoOpLogger discards all log messages.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogSegmentResult discards the summary.
func (n *NoOpLogger) LogSegmentResult(segment.Summary) {}

// LogRunSummary discards the run.
func (n *NoOpLogger) LogRunSummary(*girder.Run) {}
