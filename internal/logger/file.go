package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/segcheck/internal/girder"
	"github.com/harrison/segcheck/internal/segment"
)

// FileLogger logs check runs to timestamped files in a log directory and
// maintains a latest.log symlink pointing to the most recent run.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger writing to .segcheck/logs/ at "info".
func NewFileLogger() (*FileLogger, error) {
	return NewFileLoggerWithDirAndLevel(filepath.Join(".segcheck", "logs"), "info")
}

// NewFileLoggerWithDirAndLevel creates a FileLogger with a custom log
// directory and log level.
func NewFileLoggerWithDirAndLevel(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// run-YYYYMMDD-HHMMSS.log
	stamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", stamp))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	fl.writeRunLog("=== segcheck Run Log ===\n")
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))
	return fl, nil
}

// Path returns the run log file path.
func (fl *FileLogger) Path() string { return fl.runFile }

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return allows(fl.logLevel, messageLevel)
}

// LogTrace, LogDebug, LogInfo, LogWarn and LogError write message at their level.
func (fl *FileLogger) LogTrace(message string) { fl.logWithLevel("TRACE", message) }
func (fl *FileLogger) LogDebug(message string) { fl.logWithLevel("DEBUG", message) }
func (fl *FileLogger) LogInfo(message string)  { fl.logWithLevel("INFO", message) }
func (fl *FileLogger) LogWarn(message string)  { fl.logWithLevel("WARN", message) }
func (fl *FileLogger) LogError(message string) { fl.logWithLevel("ERROR", message) }

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogSegmentResult records every segment at INFO level with its constituent
// checks and governing strengths.
func (fl *FileLogger) LogSegmentResult(s segment.Summary) {
	if !fl.shouldLog("info") {
		return
	}

	ts := timestamp()
	status := "PASS"
	if !s.Passed {
		status = "FAIL"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s\n", ts, s.Key, status)
	for _, c := range s.Checks {
		switch {
		case !c.Evaluated:
			fmt.Fprintf(&b, "[%s]   %-26s not evaluated\n", ts, c.Check)
		case c.Passed:
			fmt.Fprintf(&b, "[%s]   %-26s pass\n", ts, c.Check)
		default:
			fmt.Fprintf(&b, "[%s]   %-26s FAIL\n", ts, c.Check)
		}
	}
	fmt.Fprintf(&b, "[%s]   required f'c: release %s, segment %s, closure joint %s, deck %s\n",
		ts, s.ReleaseStrength, s.SegmentStrength, s.ClosureJointStrength, s.DeckStrength)
	fl.writeRunLog(b.String())
}

// LogRunSummary records run totals at INFO level.
func (fl *FileLogger) LogRunSummary(run *girder.Run) {
	if !fl.shouldLog("info") {
		return
	}

	ts := timestamp()
	total, passed, failed := run.Counts()
	status := "SUCCESS"
	if !run.Passed() {
		status = "FAILED"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n[%s] === CHECK SUMMARY ===\n", ts)
	for _, g := range run.Girders {
		fmt.Fprintf(&b, "[%s] %s: %d segments, release %s, final %s\n",
			ts, g.Name, len(g.Segments), g.ReleaseStrength, g.SegmentStrength)
	}
	for _, e := range run.Errors {
		fmt.Fprintf(&b, "[%s] %s\n", ts, e.Error())
	}
	fmt.Fprintf(&b, "[%s] Segments:     %d\n", ts, total)
	fmt.Fprintf(&b, "[%s] Passed:       %d\n", ts, passed)
	fmt.Fprintf(&b, "[%s] Failed:       %d\n", ts, failed)
	fmt.Fprintf(&b, "[%s] Total time:   %.1fs\n", ts, run.Duration.Seconds())
	fmt.Fprintf(&b, "[%s] Status:       %s\n", ts, status)
	fmt.Fprintf(&b, "[%s] Completed at: %s\n", ts, time.Now().Format(time.RFC3339))
	fl.writeRunLog(b.String())
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}
	return nil
}

func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		fl.runLog.Sync()
	}
}
