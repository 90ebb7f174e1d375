package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/harrison/logan/internal/models"
)

// Coordinator fans file analysis out to a bounded worker pool and folds the
// results into one summary.
//
// All files are submitted up front. Handles are drained in submission order,
// so per-file reporting matches the sequential runner regardless of which
// worker finishes first. The fold runs on the draining goroutine only.
type Coordinator struct {
	analyzer     FileAnalyzer
	logger       Logger
	workers      int
	drainTimeout time.Duration
}

// NewCoordinator creates a Coordinator with workers pool slots.
// workers <= 0 uses DefaultWorkers. The logger may be nil.
func NewCoordinator(analyzer FileAnalyzer, logger Logger, workers int) *Coordinator {
	if analyzer == nil {
		panic("file analyzer cannot be nil")
	}
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	return &Coordinator{
		analyzer: analyzer,
		logger:   orNop(logger),
		workers:  workers,
	}
}

// SetDrainTimeout bounds how long draining waits on any single handle.
// Zero (the default) waits indefinitely.
func (c *Coordinator) SetDrainTimeout(d time.Duration) {
	if d < 0 {
		d = 0
	}
	c.drainTimeout = d
}

// Workers returns the configured pool size.
func (c *Coordinator) Workers() int {
	return c.workers
}

// Run analyzes files concurrently and returns the aggregated run with results
// in input order. A file whose task fails, panics or misses the drain deadline
// contributes a zeroed result and a diagnostic; the remaining files are still
// collected. The pool is shut down before Run returns.
func (c *Coordinator) Run(ctx context.Context, files []string) models.Run {
	col := newCollector(models.ModeParallel, c.workers, len(files), c.logger)
	c.logger.LogRunStart(models.ModeParallel, len(files), c.workers)

	if len(files) == 0 {
		col.empty()
		return col.finish()
	}

	pool := NewPool(c.workers, len(files))
	defer c.shutdown(pool)

	handles := make([]*Handle, 0, len(files))
	for _, file := range files {
		path := file
		handles = append(handles, pool.Submit(ctx, path, func(ctx context.Context) (models.AnalysisResult, error) {
			return c.analyzer.Analyze(ctx, path)
		}))
	}

	for _, h := range handles {
		result, err := h.WaitTimeout(ctx, c.drainTimeout)
		col.add(h.Name(), result, err)
	}

	return col.finish()
}

// shutdown joins the pool. With a drain timeout configured, tasks that are
// still hung get the same budget before the coordinator stops waiting.
func (c *Coordinator) shutdown(pool *Pool) {
	ctx := context.Background()
	if c.drainTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.drainTimeout)
		defer cancel()
	}

	if err := pool.Shutdown(ctx); err != nil {
		c.logger.LogWarn(fmt.Sprintf("abandoning unfinished analysis tasks: %v", err))
	}
}
