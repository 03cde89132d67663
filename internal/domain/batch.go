package domain

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// BatchStatus represents the lifecycle state of a batch.
type BatchStatus string

// Batch state model: pending (dispatch in progress) -> running (all tasks
// dispatched, results still arriving) -> completed (every task settled).
// There is no failed state; individual task failures are carried in the
// per-task results and never fail the batch.
const (
	BatchStatusPending   BatchStatus = "pending"
	BatchStatusRunning   BatchStatus = "running"
	BatchStatusCompleted BatchStatus = "completed"
)

// WarningCode classifies a decomposition-time file rejection.
type WarningCode string

// File-level warning classifications
const (
	// WarningUnsupportedFileType marks a file whose format the decomposer
	// does not accept. The file produces no tasks; the batch continues.
	WarningUnsupportedFileType WarningCode = "unsupported_file_type"

	// WarningConversionFailed marks a presentation file the conversion
	// collaborator could not turn into slide images, or an accepted image
	// that could not be decoded. The batch continues without it.
	WarningConversionFailed WarningCode = "conversion_failed"
)

// Warning records a whole-file rejection during decomposition. Warnings are
// batch-level and distinct from per-task failures: a rejected file never
// becomes a result row.
type Warning struct {
	FileName string      `json:"file_name"`
	Code     WarningCode `json:"code"`
	Reason   string      `json:"reason"`
}

// Progress is a point-in-time snapshot of a batch's completion state, safe
// to read while the batch is running.
type Progress struct {
	Status  BatchStatus `json:"status"`
	Settled int         `json:"settled"`
	Total   int         `json:"total"`
}

// Batch is one user submission: the full ordered task list decomposed from
// the uploaded files plus any file-level warnings. A batch is owned by a
// single coordinator for its lifetime; only the settled counter and status
// are touched from multiple goroutines.
type Batch struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Tasks     []Task
	Warnings  []Warning

	mu      sync.Mutex
	status  BatchStatus
	results []TaskResult

	settled atomic.Int64
}

// NewBatch creates a pending batch around an already-decomposed task list.
func NewBatch(tasks []Task, warnings []Warning) *Batch {
	return &Batch{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Tasks:     tasks,
		Warnings:  warnings,
		status:    BatchStatusPending,
	}
}

// Status returns the batch's current lifecycle state.
func (b *Batch) Status() BatchStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// MarkRunning transitions the batch to running once every task has been
// handed to the limiter.
func (b *Batch) MarkRunning() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status == BatchStatusPending {
		b.status = BatchStatusRunning
	}
}

// MarkCompleted transitions the batch to completed and records the final
// ordered result list.
func (b *Batch) MarkCompleted(results []TaskResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = BatchStatusCompleted
	b.results = results
}

// TaskSettled records that one more task has produced its result.
func (b *Batch) TaskSettled() {
	b.settled.Add(1)
}

// Progress returns a snapshot of how many tasks have settled. It is safe to
// call concurrently with the coordinator's dispatch loop.
func (b *Batch) Progress() Progress {
	return Progress{
		Status:  b.Status(),
		Settled: int(b.settled.Load()),
		Total:   len(b.Tasks),
	}
}

// Results returns the final ordered result list, or nil while the batch is
// still running.
func (b *Batch) Results() []TaskResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.results
}
