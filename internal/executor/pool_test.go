package executor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/logan/internal/models"
)

func countingTask(counter *atomic.Int32, name string) Task {
	return func(ctx context.Context) (models.AnalysisResult, error) {
		counter.Add(1)
		r := models.NewAnalysisResult(name)
		r.LevelCounts[models.LevelInfo] = 1
		return r, nil
	}
}

func TestPool_RunsEveryTaskOnce(t *testing.T) {
	var counter atomic.Int32
	p := NewPool(2, 10)

	var handles []*Handle
	for i := 0; i < 10; i++ {
		handles = append(handles, p.Submit(context.Background(), "f", countingTask(&counter, "f")))
	}

	for _, h := range handles {
		r, err := h.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, r.LevelCounts[models.LevelInfo])
	}

	require.NoError(t, p.Shutdown(context.Background()))
	assert.EqualValues(t, 10, counter.Load())
}

func TestPool_DefaultSize(t *testing.T) {
	p := NewPool(0, 0)
	defer p.Shutdown(context.Background())
	assert.Equal(t, DefaultWorkers(), p.Size())
}

func TestPool_PanicBecomesTaskError(t *testing.T) {
	p := NewPool(1, 2)
	defer p.Shutdown(context.Background())

	h := p.Submit(context.Background(), "bad.log", func(ctx context.Context) (models.AnalysisResult, error) {
		panic("kaboom")
	})
	r, err := h.Wait(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTaskPanic))
	assert.True(t, IsTaskError(err))
	assert.True(t, r.Empty())
	assert.Equal(t, "bad.log", r.Source)

	// The worker survives and keeps serving tasks.
	var counter atomic.Int32
	_, err = p.Submit(context.Background(), "ok.log", countingTask(&counter, "ok.log")).Wait(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, counter.Load())
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	p := NewPool(1, 1)
	require.NoError(t, p.Shutdown(context.Background()))
	require.NoError(t, p.Shutdown(context.Background()), "shutdown is idempotent")

	h := p.Submit(context.Background(), "late.log", func(ctx context.Context) (models.AnalysisResult, error) {
		t.Error("task must not run after shutdown")
		return models.AnalysisResult{}, nil
	})

	select {
	case <-h.Done():
	default:
		t.Fatal("handle should already be complete")
	}

	r, err := h.Wait(context.Background())
	assert.ErrorIs(t, err, ErrPoolClosed)
	assert.True(t, r.Empty())
}

func TestPool_ShutdownReleasesBlockedSubmit(t *testing.T) {
	p := NewPool(1, 0)
	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	p.Submit(context.Background(), "slow.log", func(ctx context.Context) (models.AnalysisResult, error) {
		close(started)
		<-release
		return models.NewAnalysisResult("slow.log"), nil
	})
	<-started

	// The only worker is busy and the queue has no room, so this Submit blocks.
	submitted := make(chan *Handle, 1)
	go func() {
		submitted <- p.Submit(context.Background(), "late.log", func(ctx context.Context) (models.AnalysisResult, error) {
			t.Error("task must not run after shutdown")
			return models.AnalysisResult{}, nil
		})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := p.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded, "slow task is still running")

	select {
	case h := <-submitted:
		r, err := h.Wait(context.Background())
		assert.ErrorIs(t, err, ErrPoolClosed)
		assert.True(t, r.Empty())
	case <-time.After(2 * time.Second):
		t.Fatal("Submit still blocked after Shutdown")
	}
}

func TestHandle_WaitTimeout(t *testing.T) {
	p := NewPool(1, 1)
	release := make(chan struct{})

	h := p.Submit(context.Background(), "slow.log", func(ctx context.Context) (models.AnalysisResult, error) {
		<-release
		return models.NewAnalysisResult("slow.log"), nil
	})

	r, err := h.WaitTimeout(context.Background(), 20*time.Millisecond)
	require.Error(t, err)
	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 20*time.Millisecond, te.TimeoutDuration)
	assert.True(t, r.Empty())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, p.Shutdown(ctx), "shutdown must give up while the task is hung")

	close(release)
	_, err = h.Wait(context.Background())
	assert.NoError(t, err, "the task still completes after the drain gave up")
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestHandle_CompletedWinsOverExpiredContext(t *testing.T) {
	p := NewPool(1, 1)
	defer p.Shutdown(context.Background())

	h := p.Submit(context.Background(), "fast.log", func(ctx context.Context) (models.AnalysisResult, error) {
		return models.NewAnalysisResult("fast.log"), nil
	})
	<-h.Done()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Wait(ctx)
	assert.NoError(t, err)
}

func TestHandle_CancelledWait(t *testing.T) {
	p := NewPool(1, 1)
	release := make(chan struct{})
	defer func() {
		close(release)
		p.Shutdown(context.Background())
	}()

	h := p.Submit(context.Background(), "x.log", func(ctx context.Context) (models.AnalysisResult, error) {
		<-release
		return models.NewAnalysisResult("x.log"), nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.WaitTimeout(ctx, time.Hour)
	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Zero(t, te.TimeoutDuration)
	assert.ErrorIs(t, err, context.Canceled)
}
