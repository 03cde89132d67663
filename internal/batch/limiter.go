package batch

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Limiter bounds how many tasks may execute against the vision service at
// any instant. Admission order follows the caller's acquire order; it places
// no constraint on completion order.
type Limiter struct {
	sem      *semaphore.Weighted
	capacity int64
}

// NewLimiter creates a limiter admitting at most maxInFlight concurrent
// holders. Values below 1 are raised to 1.
func NewLimiter(maxInFlight int) *Limiter {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &Limiter{
		sem:      semaphore.NewWeighted(int64(maxInFlight)),
		capacity: int64(maxInFlight),
	}
}

// Acquire blocks until a slot is free or the context is done.
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.sem.Acquire(ctx, 1)
}

// Release returns a slot to the limiter.
func (l *Limiter) Release() {
	l.sem.Release(1)
}

// Capacity returns the configured maximum in-flight count.
func (l *Limiter) Capacity() int {
	return int(l.capacity)
}
