package executor

import (
	"github.com/harrison/logan/internal/models"
)

// Logger receives progress and results from a runner.
// Calls are made from the collecting goroutine only, never from workers.
type Logger interface {
	LogRunStart(mode string, files, workers int)
	LogFileResult(result models.AnalysisResult)
	LogDiagnostic(diag models.Diagnostic)
	LogProgress(completed, total int)
	LogSummary(summary models.GlobalSummary)
	LogWarn(message string)
}

// nopLogger discards everything. It stands in when a runner is built with a nil logger.
type nopLogger struct{}

func (nopLogger) LogRunStart(string, int, int)        {}
func (nopLogger) LogFileResult(models.AnalysisResult) {}
func (nopLogger) LogDiagnostic(models.Diagnostic)     {}
func (nopLogger) LogProgress(int, int)                {}
func (nopLogger) LogSummary(models.GlobalSummary)     {}
func (nopLogger) LogWarn(string)                      {}

func orNop(l Logger) Logger {
	if l == nil {
		return nopLogger{}
	}
	return l
}

// MultiLogger forwards every call to each of its loggers in order.
type MultiLogger []Logger

// LogRunStart forwards to all loggers
func (ml MultiLogger) LogRunStart(mode string, files, workers int) {
	for _, l := range ml {
		l.LogRunStart(mode, files, workers)
	}
}

// LogFileResult forwards to all loggers
func (ml MultiLogger) LogFileResult(result models.AnalysisResult) {
	for _, l := range ml {
		l.LogFileResult(result)
	}
}

// LogDiagnostic forwards to all loggers
func (ml MultiLogger) LogDiagnostic(diag models.Diagnostic) {
	for _, l := range ml {
		l.LogDiagnostic(diag)
	}
}

// LogProgress forwards to all loggers
func (ml MultiLogger) LogProgress(completed, total int) {
	for _, l := range ml {
		l.LogProgress(completed, total)
	}
}

// LogSummary forwards to all loggers
func (ml MultiLogger) LogSummary(summary models.GlobalSummary) {
	for _, l := range ml {
		l.LogSummary(summary)
	}
}

// LogWarn forwards to all loggers
func (ml MultiLogger) LogWarn(message string) {
	for _, l := range ml {
		l.LogWarn(message)
	}
}
