package executor

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/harrison/logan/internal/models"
)

// Task is one unit of work submitted to a Pool.
type Task func(ctx context.Context) (models.AnalysisResult, error)

// Handle represents the eventual outcome of a submitted task.
// The outcome is written once by the worker before done is closed.
type Handle struct {
	name   string
	done   chan struct{}
	result models.AnalysisResult
	err    error
}

func newHandle(name string) *Handle {
	return &Handle{name: name, done: make(chan struct{})}
}

// Name returns the identifier the task was submitted under.
func (h *Handle) Name() string {
	return h.name
}

// Done is closed once the task has completed.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the task completes or ctx ends.
// A completed task always wins over an expired context. When ctx ends first
// the returned error is a *TimeoutError and the task keeps running.
func (h *Handle) Wait(ctx context.Context) (models.AnalysisResult, error) {
	return h.WaitTimeout(ctx, 0)
}

// WaitTimeout is Wait bounded by timeout. A timeout <= 0 waits for ctx only.
func (h *Handle) WaitTimeout(ctx context.Context, timeout time.Duration) (models.AnalysisResult, error) {
	select {
	case <-h.done:
		return h.result, h.err
	default:
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	select {
	case <-h.done:
		return h.result, h.err
	case <-ctx.Done():
		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			timeout = 0
		}
		return models.NewAnalysisResult(h.name), NewTimeoutError(h.name, timeout, ctx.Err())
	}
}

func (h *Handle) complete(result models.AnalysisResult, err error) {
	h.result = result
	h.err = err
	close(h.done)
}

type job struct {
	ctx    context.Context
	task   Task
	handle *Handle
}

// Pool runs submitted tasks on a fixed number of worker goroutines.
// Tasks beyond the worker count wait in a FIFO queue.
type Pool struct {
	size     int
	queue    chan job
	wg       sync.WaitGroup
	mu       sync.Mutex
	closed   bool
	closing  chan struct{}
	senders  sync.WaitGroup
	shutdown chan struct{}
}

// DefaultWorkers returns the number of parallel execution units on the host.
func DefaultWorkers() int {
	return runtime.NumCPU()
}

// NewPool starts size workers with room for capacity queued tasks.
// A size <= 0 uses DefaultWorkers. Submit blocks only when the queue is full,
// and a blocked Submit is released by Shutdown.
func NewPool(size, capacity int) *Pool {
	if size <= 0 {
		size = DefaultWorkers()
	}
	if capacity < 0 {
		capacity = 0
	}

	p := &Pool{
		size:     size,
		queue:    make(chan job, capacity),
		closing:  make(chan struct{}),
		shutdown: make(chan struct{}),
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Submit queues task under name and returns its handle.
// Submitting to a shut-down pool returns a handle that already failed, as
// does a Submit still waiting for queue space when Shutdown begins.
func (p *Pool) Submit(ctx context.Context, name string, task Task) *Handle {
	h := newHandle(name)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		h.complete(models.NewAnalysisResult(name), NewTaskError(name, "not scheduled", ErrPoolClosed))
		return h
	}
	p.senders.Add(1)
	p.mu.Unlock()
	defer p.senders.Done()

	j := job{ctx: ctx, task: task, handle: h}
	select {
	case p.queue <- j:
		return h
	default:
	}

	select {
	case p.queue <- j:
	case <-p.closing:
		h.complete(models.NewAnalysisResult(name), NewTaskError(name, "not scheduled", ErrPoolClosed))
	}
	return h
}

// Shutdown stops accepting tasks and waits for queued and running tasks to
// finish. If ctx ends first the workers are left to drain on their own and
// ctx's error is returned. Calling Shutdown more than once is safe.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.closing)
		go func() {
			// The queue is closed only once no Submit can still send on it.
			p.senders.Wait()
			close(p.queue)
			p.wg.Wait()
			close(p.shutdown)
		}()
	}
	p.mu.Unlock()

	select {
	case <-p.shutdown:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("worker pool did not stop: %w", ctx.Err())
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for j := range p.queue {
		p.run(j)
	}
}

// run executes one job. A panic inside the task is converted into a
// TaskError so the worker survives and the handle is always completed.
func (p *Pool) run(j job) {
	var (
		result models.AnalysisResult
		err    error
	)

	defer func() {
		if r := recover(); r != nil {
			result = models.NewAnalysisResult(j.handle.name)
			err = NewTaskError(j.handle.name, panicMessage(r), ErrTaskPanic)
		}
		j.handle.complete(result, err)
	}()

	result, err = j.task(j.ctx)
}

func panicMessage(r any) string {
	return fmt.Sprintf("panic: %v", r)
}
