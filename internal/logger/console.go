// Package logger provides logging implementations for logan runs.
//
// Loggers receive per-file results, diagnostics, progress and the final
// summary from the executor. Output goes to the console (optionally
// colored) and to a per-run log file.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/logan/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
)

// DefaultMaxFlaggedLines is how many flagged lines per file the console prints.
const DefaultMaxFlaggedLines = 5

// ConsoleLogger writes run progress to a writer with [HH:MM:SS] timestamps.
// Messages below the configured level are dropped. Color output is enabled
// when the writer is a terminal and NO_COLOR is unset.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
	maxFlagged  int
	progress    *ProgressBar
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive); anything
// else means info.
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
		maxFlagged:  DefaultMaxFlaggedLines,
	}
}

// SetMaxFlaggedLines caps the flagged-line preview per file. Zero hides the
// preview; a negative value prints every flagged line.
func (cl *ConsoleLogger) SetMaxFlaggedLines(n int) {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	cl.maxFlagged = n
}

// isTerminal reports whether w is a TTY that should receive colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLogLevel lowercases level and returns "info" for unknown values.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// ValidLogLevel reports whether level names one of the supported levels.
func ValidLogLevel(level string) bool {
	normalized := strings.ToLower(strings.TrimSpace(level))
	return normalizeLogLevel(normalized) == normalized
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// LogTrace logs a trace-level message.
func (cl *ConsoleLogger) LogTrace(message string) { cl.logWithLevel("TRACE", message) }

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) { cl.logWithLevel("DEBUG", message) }

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) { cl.logWithLevel("INFO", message) }

// LogWarn logs a warning-level message.
// Format: "[HH:MM:SS] [WARN] <message>"
func (cl *ConsoleLogger) LogWarn(message string) { cl.logWithLevel("WARN", message) }

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) { cl.logWithLevel("ERROR", message) }

func (cl *ConsoleLogger) logWithLevel(level, message string) {
	if cl.writer == nil || !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	label := level
	if cl.colorOutput {
		label = cl.levelColor(level).Sprint(level)
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", timestamp(), label, message)
}

func (cl *ConsoleLogger) levelColor(level string) *color.Color {
	switch strings.ToUpper(level) {
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

// writeLines prints each line with the same timestamp prefix. Callers hold the mutex.
func (cl *ConsoleLogger) writeLines(lines []string) {
	ts := timestamp()
	for _, line := range lines {
		fmt.Fprintf(cl.writer, "[%s] %s\n", ts, line)
	}
}

func (cl *ConsoleLogger) paint(attr color.Attribute, s string) string {
	if !cl.colorOutput {
		return s
	}
	return color.New(attr).Sprint(s)
}

// LogRunStart logs the start of a run at INFO level and resets the progress bar.
// Format: "[HH:MM:SS] Starting <mode> analysis: <n> files, <w> workers"
func (cl *ConsoleLogger) LogRunStart(mode string, files, workers int) {
	if cl.writer == nil {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	cl.progress = NewProgressBar(files, 20, cl.colorOutput)
	if !cl.shouldLog("info") {
		return
	}
	cl.writeLines([]string{fmt.Sprintf("Starting %s analysis: %d files, %d workers",
		cl.paint(color.Bold, mode), files, workers)})
}

// LogFileResult logs one file's counts at INFO level, followed by a preview
// of its flagged lines and its non-zero signature tallies.
func (cl *ConsoleLogger) LogFileResult(result models.AnalysisResult) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	lines := []string{fmt.Sprintf("%s: %d lines, %s, %s",
		cl.paint(color.Bold, result.Source),
		result.LevelCounts.Total(),
		cl.paint(color.FgYellow, fmt.Sprintf("%d warn", result.LevelCounts[models.LevelWarn])),
		cl.paint(color.FgRed, fmt.Sprintf("%d error", result.LevelCounts[models.LevelError])),
	)}

	if cl.shouldLog("debug") {
		lines = append(lines, "  levels: "+formatLevelCounts(result.LevelCounts))
	}

	preview := result.FlaggedLines
	if cl.maxFlagged >= 0 && len(preview) > cl.maxFlagged {
		preview = preview[:cl.maxFlagged]
	}
	for _, line := range preview {
		lines = append(lines, "  | "+line)
	}
	if hidden := len(result.FlaggedLines) - len(preview); hidden > 0 {
		lines = append(lines, fmt.Sprintf("  ... %d more flagged lines", hidden))
	}

	for _, sig := range result.SignatureCounts.NonZero() {
		lines = append(lines, fmt.Sprintf("  %s: %d", sig, result.SignatureCounts[sig]))
	}

	cl.writeLines(lines)
}

// LogDiagnostic logs a failure at WARN level. Empty input is reported the same way.
// Format: "[HH:MM:SS] [WARN] <source>: <kind>: <message>"
func (cl *ConsoleLogger) LogDiagnostic(diag models.Diagnostic) {
	if diag.Source == "" {
		cl.LogWarn(fmt.Sprintf("%s: %s", diag.Kind, diag.Message()))
		return
	}
	cl.LogWarn(fmt.Sprintf("%s: %s: %s", diag.Source, diag.Kind, diag.Message()))
}

// LogProgress logs the progress bar at DEBUG level.
func (cl *ConsoleLogger) LogProgress(completed, total int) {
	if cl.writer == nil || !cl.shouldLog("debug") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	if cl.progress == nil || cl.progress.total != total {
		cl.progress = NewProgressBar(total, 20, cl.colorOutput)
	}
	cl.progress.Set(completed)
	cl.writeLines([]string{"Progress: " + cl.progress.Render()})
}

// LogSummary logs the run summary at INFO level.
// Format:
//
//	[HH:MM:SS] === Parallel Summary ===
//	[HH:MM:SS] Files: <n> (<f> failed)
//	[HH:MM:SS] Levels: TRACE=<n> DEBUG=<n> INFO=<n> WARN=<n> ERROR=<n>
//	[HH:MM:SS] Signatures:
//	[HH:MM:SS]   <signature>: <n>
//	[HH:MM:SS] Flagged lines: <n>
//	[HH:MM:SS] Duration: <d>
func (cl *ConsoleLogger) LogSummary(summary models.GlobalSummary) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	failed := fmt.Sprintf("%d failed", summary.FailedFiles)
	if summary.FailedFiles > 0 {
		failed = cl.paint(color.FgRed, failed)
	}

	lines := []string{
		cl.paint(color.Bold, fmt.Sprintf("=== %s Summary ===", titleCase(summary.Mode))),
		fmt.Sprintf("Files: %d (%s)", summary.Files, failed),
		"Levels: " + formatLevelCounts(summary.LevelCounts),
		"Signatures:",
	}
	for _, sig := range models.KnownSignatures() {
		lines = append(lines, fmt.Sprintf("  %s: %d", sig, summary.SignatureCounts[sig]))
	}
	lines = append(lines,
		fmt.Sprintf("Flagged lines: %d", summary.LevelCounts.Flagged()),
		fmt.Sprintf("Duration: %s", formatDuration(summary.Elapsed)),
	)

	cl.writeLines(lines)
}

// formatLevelCounts renders counts in severity order: "TRACE=0 DEBUG=1 ...".
func formatLevelCounts(counts models.LevelCounts) string {
	parts := make([]string, 0, len(models.Levels()))
	for _, level := range models.Levels() {
		parts = append(parts, fmt.Sprintf("%s=%d", level, counts[level]))
	}
	return strings.Join(parts, " ")
}

func titleCase(s string) string {
	if s == "" {
		return "Run"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// timestamp returns the current time formatted as HH:MM:SS.
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration formats a duration as a human-readable string.
// Examples: "850ms", "5.2s", "1m30s", "1h2m"
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % 60
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
}
