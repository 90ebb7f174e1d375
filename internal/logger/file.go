package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/harrison/logan/internal/models"
)

// FileLogger writes a plain-text record of one run to <logDir>/run-YYYYMMDD-HHMMSS.log
// and points <logDir>/latest.log at it. Unlike the console it records every
// flagged line. It is safe for concurrent use.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLoggerWithDirAndLevel creates a FileLogger with a custom log directory and log level.
func NewFileLoggerWithDirAndLevel(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", time.Now().Format("20060102-150405")))
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
	fl.writeRunLog("=== Logan Run Log ===\n")
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return fl, nil
}

// Path returns the run log file path.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message.
func (fl *FileLogger) LogTrace(message string) { fl.logWithLevel("TRACE", message) }

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) { fl.logWithLevel("DEBUG", message) }

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) { fl.logWithLevel("INFO", message) }

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) { fl.logWithLevel("WARN", message) }

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) { fl.logWithLevel("ERROR", message) }

func (fl *FileLogger) logWithLevel(level, message string) {
	if !fl.shouldLog(levelKey(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), level, message))
}

func levelKey(level string) string {
	switch level {
	case "TRACE":
		return "trace"
	case "DEBUG":
		return "debug"
	case "WARN":
		return "warn"
	case "ERROR":
		return "error"
	default:
		return "info"
	}
}

// LogRunStart records the run parameters.
func (fl *FileLogger) LogRunStart(mode string, files, workers int) {
	fl.LogInfo(fmt.Sprintf("Starting %s analysis: %d files, %d workers", mode, files, workers))
}

// LogFileResult records a file's level counts, every flagged line and its
// non-zero signature tallies.
func (fl *FileLogger) LogFileResult(result models.AnalysisResult) {
	if !fl.shouldLog("info") {
		return
	}

	out := fmt.Sprintf("[%s] [INFO] %s: %s\n", time.Now().Format("2006-01-02 15:04:05"),
		result.Source, formatLevelCounts(result.LevelCounts))
	for _, line := range result.FlaggedLines {
		out += "  | " + line + "\n"
	}
	for _, sig := range result.SignatureCounts.NonZero() {
		out += fmt.Sprintf("  %s: %d\n", sig, result.SignatureCounts[sig])
	}
	fl.writeRunLog(out)
}

// LogDiagnostic records a failure at WARN level.
func (fl *FileLogger) LogDiagnostic(diag models.Diagnostic) {
	source := diag.Source
	if source == "" {
		source = "-"
	}
	fl.LogWarn(fmt.Sprintf("%s: %s: %s", source, diag.Kind, diag.Message()))
}

// LogProgress records drain progress at DEBUG level.
func (fl *FileLogger) LogProgress(completed, total int) {
	fl.LogDebug(fmt.Sprintf("Progress: %d/%d", completed, total))
}

// LogSummary writes the run summary including the run ID.
func (fl *FileLogger) LogSummary(summary models.GlobalSummary) {
	out := "\n=== Run Summary ===\n"
	out += fmt.Sprintf("Run ID: %s\n", summary.RunID)
	out += fmt.Sprintf("Mode: %s (%d workers)\n", summary.Mode, summary.Workers)
	out += fmt.Sprintf("Files: %d (%d failed)\n", summary.Files, summary.FailedFiles)
	out += fmt.Sprintf("Levels: %s\n", formatLevelCounts(summary.LevelCounts))
	for _, sig := range models.KnownSignatures() {
		out += fmt.Sprintf("  %s: %d\n", sig, summary.SignatureCounts[sig])
	}
	out += fmt.Sprintf("Duration: %s\n", formatDuration(summary.Elapsed))
	fl.writeRunLog(out)
}

// writeRunLog writes a message to the run log file (thread-safe).
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return
	}
	fl.runLog.WriteString(message)
	fl.runLog.Sync()
}

// Close closes the run log file. It is safe to call more than once.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return nil
	}
	err := fl.runLog.Close()
	fl.runLog = nil
	return err
}
