package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/assetdesk/metagen/internal/api/shared"
	"github.com/assetdesk/metagen/internal/batch"
	"github.com/assetdesk/metagen/internal/dedup"
	"github.com/assetdesk/metagen/internal/domain"
	"github.com/assetdesk/metagen/internal/events"
	"github.com/assetdesk/metagen/internal/export"
	"github.com/assetdesk/metagen/internal/prompt"
)

// maxUploadMemory bounds how much of a multipart upload is held in memory
// before spilling to temp files.
const maxUploadMemory = 64 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BatchHandler handles batch submission, progress, and download requests.
type BatchHandler struct {
	decomposer  *batch.Decomposer
	coordinator *batch.Coordinator
	registry    *batch.Registry
	emitter     events.EventEmitter
	maxFiles    int
	logger      *slog.Logger
}

// NewBatchHandler creates a BatchHandler wired to the pipeline components.
func NewBatchHandler(
	decomposer *batch.Decomposer,
	coordinator *batch.Coordinator,
	registry *batch.Registry,
	emitter events.EventEmitter,
	maxFiles int,
	logger *slog.Logger,
) *BatchHandler {
	return &BatchHandler{
		decomposer:  decomposer,
		coordinator: coordinator,
		registry:    registry,
		emitter:     emitter,
		maxFiles:    maxFiles,
		logger:      logger,
	}
}

// emitLifecycleEvent publishes a batch lifecycle event. Emission is best
// effort; a failing handler never fails the request.
func (h *BatchHandler) emitLifecycleEvent(ctx context.Context, eventType string, batchID uuid.UUID, payload interface{}) {
	event, err := events.NewBatchEvent(eventType, batchID, payload)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to build lifecycle event",
			"event_type", eventType, "batch_id", batchID, "error", err)
		return
	}
	if err := h.emitter.EmitEvent(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "lifecycle event handler failed",
			"event_type", eventType, "batch_id", batchID, "error", err)
	}
}

// ProcessBatch handles POST /api/process requests. It decomposes the uploaded
// files into tasks, runs the whole batch to completion, and responds with the
// ordered results plus a download link for the exported workbook. The request
// blocks until every task has settled.
func (h *BatchHandler) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No files uploaded")
		return
	}
	if len(fileHeaders) > h.maxFiles {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			fmt.Sprintf("Too many files: %d uploaded, limit is %d", len(fileHeaders), h.maxFiles))
		return
	}

	files := make([]batch.File, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		data, err := readUpload(fh)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
				fmt.Sprintf("Could not read uploaded file %q", fh.Filename), err)
			return
		}
		files = append(files, batch.File{Name: fh.Filename, Data: data})
	}

	instructions := prompt.Compose(r.FormValue("prompt"))

	tasks, warnings := h.decomposer.Decompose(r.Context(), files, instructions)
	b := domain.NewBatch(tasks, warnings)
	h.registry.Add(b)

	h.logger.InfoContext(r.Context(), "batch accepted",
		"batch_id", b.ID,
		"file_count", len(files),
		"task_count", len(tasks),
		"warning_count", len(warnings))
	h.emitLifecycleEvent(r.Context(), events.EventBatchAccepted, b.ID, map[string]int{
		"file_count":    len(files),
		"task_count":    len(tasks),
		"warning_count": len(warnings),
	})

	results, err := h.coordinator.Run(r.Context(), b)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Batch processing was interrupted", err)
		return
	}

	results = dedup.ApplySuffixes(results)

	workbook, err := export.Workbook(results)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to build export workbook", err)
		return
	}
	h.registry.StoreArtifact(b.ID, workbook)

	failed := 0
	resultDTOs := make([]TaskResultResponse, len(results))
	for i, res := range results {
		if res.Failed() {
			failed++
		}
		resultDTOs[i] = resultToResponse(res)
	}

	h.emitLifecycleEvent(r.Context(), events.EventBatchCompleted, b.ID, map[string]int{
		"task_count":   len(results),
		"failed_count": failed,
	})

	shared.RespondWithJSON(w, r, http.StatusOK, ProcessResponse{
		BatchID:     b.ID.String(),
		CreatedAt:   b.CreatedAt,
		TaskCount:   len(results),
		FailedCount: failed,
		DownloadURL: "/api/download/" + b.ID.String(),
		PromptUsed:  instructions,
		Results:     resultDTOs,
		Warnings:    b.Warnings,
	})
}

// GetBatch handles GET /api/batches/{id} requests with a progress snapshot.
func (h *BatchHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid batch ID")
		return
	}

	b, err := h.registry.Get(id)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Batch not found")
		return
	}

	progress := b.Progress()
	shared.RespondWithJSON(w, r, http.StatusOK, ProgressResponse{
		BatchID: b.ID.String(),
		Status:  string(progress.Status),
		Settled: progress.Settled,
		Total:   progress.Total,
	})
}

// DownloadBatch handles GET /api/download/{id} requests, serving the exported
// workbook for a completed batch.
func (h *BatchHandler) DownloadBatch(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid batch ID")
		return
	}

	workbook, err := h.registry.Artifact(id)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "No export found for this batch")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "asset_metadata_"+id.String()+".xlsx"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(workbook); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write workbook response",
			"batch_id", id, "error", err)
	}
}

// Health handles GET /api/health requests.
func (h *BatchHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}

// readUpload reads one multipart file fully into memory.
func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}
