package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GradShootBooking/pkg/logger"
	"github.com/m04kA/SMC-GradShootBooking/pkg/metrics"
)

func TestDispatcher_RunsAndDrains(t *testing.T) {
	d := NewDispatcher(3, 10, logger.NewNop(), metrics.New("test"))
	d.Start()

	var n atomic.Int32
	for i := 0; i < 10; i++ {
		ok := d.Submit(Job{Name: "count", Run: func(ctx context.Context) {
			time.Sleep(5 * time.Millisecond)
			n.Add(1)
		}})
		require.True(t, ok)
	}

	require.NoError(t, d.Stop(context.Background()))
	assert.Equal(t, int32(10), n.Load())
}

func TestDispatcher_SubmitNeverBlocksWhenFull(t *testing.T) {
	d := NewDispatcher(1, 1, logger.NewNop(), nil)
	d.Start()

	release := make(chan struct{})
	started := make(chan struct{})
	require.True(t, d.Submit(Job{Name: "blocker", Run: func(ctx context.Context) {
		close(started)
		<-release
	}}))
	<-started

	require.True(t, d.Submit(Job{Name: "queued", Run: func(ctx context.Context) {}}))

	begin := time.Now()
	assert.False(t, d.Submit(Job{Name: "overflow", Run: func(ctx context.Context) {}}))
	assert.Less(t, time.Since(begin), 100*time.Millisecond)

	close(release)
	require.NoError(t, d.Stop(context.Background()))
}

func TestDispatcher_SubmitAfterStop(t *testing.T) {
	d := NewDispatcher(1, 4, logger.NewNop(), nil)
	d.Start()
	require.NoError(t, d.Stop(context.Background()))

	assert.False(t, d.Submit(Job{Name: "late", Run: func(ctx context.Context) {}}))
	assert.ErrorIs(t, d.Stop(context.Background()), ErrStopped)
}

func TestDispatcher_StopDeadlineCancelsJobs(t *testing.T) {
	d := NewDispatcher(1, 1, logger.NewNop(), nil)
	d.Start()

	var cancelled atomic.Bool
	started := make(chan struct{})
	d.Submit(Job{Name: "slow", Run: func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
	}})
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, d.Stop(ctx), context.DeadlineExceeded)
	assert.Eventually(t, cancelled.Load, time.Second, 5*time.Millisecond)
}

func TestDispatcher_PanicDoesNotKillWorker(t *testing.T) {
	d := NewDispatcher(1, 4, logger.NewNop(), nil)
	d.Start()

	var wg sync.WaitGroup
	wg.Add(1)
	d.Submit(Job{Name: "panics", Run: func(ctx context.Context) { panic("boom") }})
	d.Submit(Job{Name: "after", Run: func(ctx context.Context) { wg.Done() }})

	wg.Wait()
	require.NoError(t, d.Stop(context.Background()))
}
