package batch

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdesk/metagen/internal/domain"
	"github.com/assetdesk/metagen/internal/generation"
)

func makeTasks(n int) []domain.Task {
	tasks := make([]domain.Task, n)
	for i := range tasks {
		tasks[i] = testTask(i)
	}
	return tasks
}

// responseFor returns a well-formed service response whose English name
// encodes the task index, so tests can verify slot alignment.
func responseFor(index int) string {
	return fmt.Sprintf("Asset Name: Item %03d / عنصر\nTags: test", index)
}

func TestCoordinatorPreservesInputOrder(t *testing.T) {
	t.Parallel()

	const n = 40
	describer := &mockDescriber{
		describe: func(_ context.Context, img generation.Image, _ string) (string, error) {
			// Random settle order; the result list must still come back
			// in task order.
			time.Sleep(time.Duration(rand.Intn(20)) * time.Millisecond)
			return responseFor(int(img.Data[0])), nil
		},
	}

	tasks := makeTasks(n)
	for i := range tasks {
		tasks[i].Payload = []byte{byte(i)}
	}
	b := domain.NewBatch(tasks, nil)

	worker := NewWorker(describer, 0, testLogger())
	coord := NewCoordinator(worker, NewLimiter(8), testLogger())

	results, err := coord.Run(context.Background(), b)
	require.NoError(t, err)
	require.Len(t, results, n)

	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, fmt.Sprintf("Item %03d", i), r.EnglishName)
	}
	assert.Equal(t, domain.BatchStatusCompleted, b.Status())
}

func TestCoordinatorSettlesEveryTask(t *testing.T) {
	t.Parallel()

	const n = 25
	describer := &mockDescriber{
		describe: func(_ context.Context, _ generation.Image, _ string) (string, error) {
			return validResponse, nil
		},
	}
	b := domain.NewBatch(makeTasks(n), nil)

	worker := NewWorker(describer, 0, testLogger())
	coord := NewCoordinator(worker, NewLimiter(4), testLogger())

	results, err := coord.Run(context.Background(), b)
	require.NoError(t, err)
	assert.Len(t, results, n)

	progress := b.Progress()
	assert.Equal(t, n, progress.Settled)
	assert.Equal(t, n, progress.Total)
	assert.Equal(t, domain.BatchStatusCompleted, progress.Status)
	assert.Len(t, b.Results(), n)
}

func TestCoordinatorRespectsConcurrencyCap(t *testing.T) {
	t.Parallel()

	const limit = 3
	var inFlight, maxInFlight atomic.Int64

	describer := &mockDescriber{
		describe: func(_ context.Context, _ generation.Image, _ string) (string, error) {
			cur := inFlight.Add(1)
			for {
				prev := maxInFlight.Load()
				if cur <= prev || maxInFlight.CompareAndSwap(prev, cur) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			return validResponse, nil
		},
	}
	b := domain.NewBatch(makeTasks(30), nil)

	worker := NewWorker(describer, 0, testLogger())
	coord := NewCoordinator(worker, NewLimiter(limit), testLogger())

	_, err := coord.Run(context.Background(), b)
	require.NoError(t, err)

	assert.LessOrEqual(t, maxInFlight.Load(), int64(limit))
	assert.Positive(t, maxInFlight.Load())
}

func TestCoordinatorIsolatesTaskFailures(t *testing.T) {
	t.Parallel()

	const n = 10
	const failing = 4

	describer := &mockDescriber{
		describe: func(_ context.Context, img generation.Image, _ string) (string, error) {
			if int(img.Data[0]) == failing {
				return "", fmt.Errorf("boom: %w", generation.ErrServiceFailure)
			}
			return validResponse, nil
		},
	}

	tasks := makeTasks(n)
	for i := range tasks {
		tasks[i].Payload = []byte{byte(i)}
	}
	b := domain.NewBatch(tasks, nil)

	worker := NewWorker(describer, 0, testLogger())
	coord := NewCoordinator(worker, NewLimiter(4), testLogger())

	results, err := coord.Run(context.Background(), b)
	require.NoError(t, err)
	require.Len(t, results, n)

	for i, r := range results {
		if i == failing {
			assert.True(t, r.Failed())
			assert.Equal(t, domain.FailureService, r.FailureCode)
			continue
		}
		assert.False(t, r.Failed(), "task %d should have succeeded", i)
	}
}

func TestCoordinatorStopsAdmissionOnCancellation(t *testing.T) {
	t.Parallel()

	const n = 20
	const limit = 2

	ctx, cancel := context.WithCancel(context.Background())

	var started atomic.Int64
	release := make(chan struct{})
	var once sync.Once

	describer := &mockDescriber{
		describe: func(_ context.Context, _ generation.Image, _ string) (string, error) {
			started.Add(1)
			// Cancel while the first admitted tasks hold every slot, so
			// later admissions block on the limiter and observe ctx.Done.
			once.Do(cancel)
			<-release
			return validResponse, nil
		},
	}
	b := domain.NewBatch(makeTasks(n), nil)

	worker := NewWorker(describer, 0, testLogger())
	coord := NewCoordinator(worker, NewLimiter(limit), testLogger())

	done := make(chan struct{})
	var results []domain.TaskResult
	var runErr error
	go func() {
		results, runErr = coord.Run(ctx, b)
		close(done)
	}()

	// Let the blocked workers finish so Run can return.
	time.Sleep(20 * time.Millisecond)
	close(release)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("coordinator did not return after cancellation")
	}

	require.Error(t, runErr)
	assert.ErrorIs(t, runErr, context.Canceled)
	assert.Nil(t, results)
	// In-flight tasks ran to completion; nothing beyond the admitted ones
	// was dispatched.
	assert.Less(t, started.Load(), int64(n))
	assert.NotEqual(t, domain.BatchStatusCompleted, b.Status())
}

func TestCoordinatorEmptyBatch(t *testing.T) {
	t.Parallel()

	describer := &mockDescriber{
		describe: func(_ context.Context, _ generation.Image, _ string) (string, error) {
			t.Fatal("describer must not be called for an empty batch")
			return "", nil
		},
	}
	b := domain.NewBatch(nil, nil)

	worker := NewWorker(describer, 0, testLogger())
	coord := NewCoordinator(worker, NewLimiter(4), testLogger())

	results, err := coord.Run(context.Background(), b)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, domain.BatchStatusCompleted, b.Status())
}
