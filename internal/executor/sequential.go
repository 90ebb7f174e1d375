package executor

import (
	"context"

	"github.com/harrison/logan/internal/models"
)

// SequentialRunner analyzes files one at a time in list order.
// It is the baseline the parallel coordinator is compared against.
type SequentialRunner struct {
	analyzer FileAnalyzer
	logger   Logger
}

// NewSequentialRunner creates a SequentialRunner. The logger may be nil.
func NewSequentialRunner(analyzer FileAnalyzer, logger Logger) *SequentialRunner {
	if analyzer == nil {
		panic("file analyzer cannot be nil")
	}
	return &SequentialRunner{analyzer: analyzer, logger: orNop(logger)}
}

// Run analyzes every file in order and returns the aggregated run.
// Each result is logged as soon as it is produced. Read failures are folded
// in as zeroed contributions and never stop the run.
func (s *SequentialRunner) Run(ctx context.Context, files []string) models.Run {
	col := newCollector(models.ModeSequential, 1, len(files), s.logger)
	s.logger.LogRunStart(models.ModeSequential, len(files), 1)

	if len(files) == 0 {
		col.empty()
		return col.finish()
	}

	for _, file := range files {
		result, err := s.analyzeOne(ctx, file)
		col.add(file, result, err)
	}

	return col.finish()
}

// analyzeOne shields the loop from a panicking analyzer the same way the
// pool shields its workers.
func (s *SequentialRunner) analyzeOne(ctx context.Context, file string) (result models.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = models.NewAnalysisResult(file)
			err = NewTaskError(file, panicMessage(r), ErrTaskPanic)
		}
	}()
	return s.analyzer.Analyze(ctx, file)
}
