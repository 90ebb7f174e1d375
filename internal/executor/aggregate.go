package executor

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/logan/internal/models"
)

// FileAnalyzer analyzes one log file. Implementations must return an all-zero
// result alongside any error and must be safe for concurrent use.
type FileAnalyzer interface {
	Analyze(ctx context.Context, path string) (models.AnalysisResult, error)
}

// FileAnalyzerFunc adapts a function to the FileAnalyzer interface.
type FileAnalyzerFunc func(ctx context.Context, path string) (models.AnalysisResult, error)

// Analyze calls f(ctx, path).
func (f FileAnalyzerFunc) Analyze(ctx context.Context, path string) (models.AnalysisResult, error) {
	return f(ctx, path)
}

// collector folds per-file outcomes into a run. It is used from a single
// goroutine, so the fold needs no synchronization.
type collector struct {
	run    models.Run
	total  int
	logger Logger
	start  time.Time
}

func newCollector(mode string, workers, total int, logger Logger) *collector {
	return &collector{
		run: models.Run{
			Summary: models.NewGlobalSummary(uuid.NewString(), mode, workers),
			Results: make([]models.AnalysisResult, 0, total),
		},
		total:  total,
		logger: logger,
		start:  time.Now(),
	}
}

// add folds one file outcome. A non-nil err replaces result with a zeroed
// contribution and records a diagnostic.
func (c *collector) add(source string, result models.AnalysisResult, err error) {
	if err != nil {
		diag := models.Diagnostic{Source: source, Kind: classify(err), Err: err}
		c.run.Diagnostics = append(c.run.Diagnostics, diag)
		c.run.Summary.FailedFiles++
		c.logger.LogDiagnostic(diag)
		result = models.NewAnalysisResult(source)
	}
	if result.Source == "" {
		result.Source = source
	}

	c.run.Summary.Fold(result)
	c.run.Results = append(c.run.Results, result)

	c.logger.LogFileResult(result)
	c.logger.LogProgress(len(c.run.Results), c.total)
}

// empty records the empty-input condition.
func (c *collector) empty() {
	diag := models.Diagnostic{Kind: models.DiagnosticEmptyInput, Err: ErrNoInputFiles}
	c.run.Diagnostics = append(c.run.Diagnostics, diag)
	c.logger.LogDiagnostic(diag)
}

// finish stamps the elapsed time and logs the summary.
func (c *collector) finish() models.Run {
	c.run.Summary.Elapsed = time.Since(c.start)
	c.logger.LogSummary(c.run.Summary)
	return c.run
}

// classify maps an error from a task to its diagnostic kind.
func classify(err error) models.DiagnosticKind {
	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		return models.DiagnosticTimeout
	}
	var taskErr *TaskError
	if errors.As(err, &taskErr) {
		return models.DiagnosticTask
	}
	return models.DiagnosticRead
}
