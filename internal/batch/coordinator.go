package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/assetdesk/metagen/internal/domain"
)

// Coordinator owns one batch's lifecycle: it admits every task through the
// limiter in sequence order, collects each worker's result as it settles,
// and restores input order by writing results into index-addressed slots.
type Coordinator struct {
	worker  *Worker
	limiter *Limiter
	logger  *slog.Logger
}

// NewCoordinator creates a coordinator dispatching through the given worker
// and limiter.
func NewCoordinator(worker *Worker, limiter *Limiter, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		worker:  worker,
		limiter: limiter,
		logger:  logger,
	}
}

// Run processes every task of the batch and returns the ordered result list.
// Admission follows task sequence order; completion order is unconstrained.
// Each worker goroutine writes only its own task's slot, so the result slice
// needs no locking.
//
// If ctx is cancelled before all tasks have been admitted, no further tasks
// are dispatched; already-admitted calls run to completion (their spend is
// not wasted) and Run returns the context error once they settle.
func (c *Coordinator) Run(ctx context.Context, b *domain.Batch) ([]domain.TaskResult, error) {
	results := make([]domain.TaskResult, len(b.Tasks))

	// Admitted tasks keep running even when the batch is abandoned;
	// cancellation only stops new admissions.
	workCtx := context.WithoutCancel(ctx)

	c.logger.InfoContext(ctx, "batch dispatch started",
		"batch_id", b.ID,
		"task_count", len(b.Tasks),
		"max_in_flight", c.limiter.Capacity())

	var wg sync.WaitGroup
	var admitErr error
	for i := range b.Tasks {
		if err := c.limiter.Acquire(ctx); err != nil {
			admitErr = err
			break
		}
		task := b.Tasks[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer c.limiter.Release()
			results[task.Index] = c.worker.Process(workCtx, task)
			b.TaskSettled()
		}()
	}

	if admitErr == nil {
		b.MarkRunning()
	}

	wg.Wait()

	if admitErr != nil {
		c.logger.WarnContext(ctx, "batch abandoned before full dispatch",
			"batch_id", b.ID,
			"error", admitErr)
		return nil, fmt.Errorf("batch %s cancelled during dispatch: %w", b.ID, admitErr)
	}

	b.MarkCompleted(results)

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	c.logger.InfoContext(ctx, "batch completed",
		"batch_id", b.ID,
		"task_count", len(results),
		"failed_count", failed)

	return results, nil
}
