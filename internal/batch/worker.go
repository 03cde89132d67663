package batch

import (
	"context"
	"errors"
	"log/slog"

	"github.com/assetdesk/metagen/internal/domain"
	"github.com/assetdesk/metagen/internal/generation"
	"github.com/assetdesk/metagen/internal/metadata"
	"github.com/assetdesk/metagen/internal/redact"
)

// Worker turns one task into exactly one result. Every failure mode is
// converted into a failed TaskResult at this boundary; nothing propagates to
// the coordinator as an error.
type Worker struct {
	describer generation.Describer

	// transientRetries is how many immediate retries to apply to transport
	// and rate-limit failures. The pipeline is correct with zero retries;
	// this only trades latency against wasted quota.
	transientRetries int

	logger *slog.Logger
}

// NewWorker creates a worker calling the given describer.
func NewWorker(describer generation.Describer, transientRetries int, logger *slog.Logger) *Worker {
	if transientRetries < 0 {
		transientRetries = 0
	}
	return &Worker{
		describer:        describer,
		transientRetries: transientRetries,
		logger:           logger,
	}
}

// Process executes one task end to end: service call, response parse,
// result construction.
func (w *Worker) Process(ctx context.Context, task domain.Task) domain.TaskResult {
	raw, err := w.describe(ctx, task)
	if err != nil {
		code := classifyFailure(err)
		w.logger.WarnContext(ctx, "task failed",
			"task_index", task.Index,
			"display_name", task.DisplayName,
			"failure_code", code,
			"error", err)
		return domain.NewFailedResult(task, code, redact.Error(err))
	}

	meta, err := metadata.Parse(raw)
	if err != nil {
		w.logger.WarnContext(ctx, "task response unparseable",
			"task_index", task.Index,
			"display_name", task.DisplayName,
			"response_length", len(raw),
			"error", err)
		result := domain.NewFailedResult(task, domain.FailureParse, redact.Error(err))
		result.RawText = raw
		return result
	}

	w.logger.DebugContext(ctx, "task completed",
		"task_index", task.Index,
		"tag_count", len(meta.Tags))

	return domain.NewSuccessResult(task, meta.EnglishName, meta.ArabicName, meta.Tags, raw)
}

// describe calls the vision service, retrying transient failures up to the
// configured count with no delay between attempts.
func (w *Worker) describe(ctx context.Context, task domain.Task) (string, error) {
	img := generation.Image{Data: task.Payload, MIMEType: task.MIMEType}

	var lastErr error
	for attempt := 0; attempt <= w.transientRetries; attempt++ {
		raw, err := w.describer.Describe(ctx, img, task.Instructions)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !isTransient(err) {
			break
		}
	}
	return "", lastErr
}

func isTransient(err error) bool {
	return errors.Is(err, generation.ErrTransport) || errors.Is(err, generation.ErrRateLimited)
}

// classifyFailure maps a describe error onto the task failure taxonomy.
// Rate limits and malformed service output count as service errors; only
// network-level problems are transport errors.
func classifyFailure(err error) domain.FailureCode {
	if errors.Is(err, generation.ErrTransport) {
		return domain.FailureTransport
	}
	return domain.FailureService
}
