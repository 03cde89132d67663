package api

import (
	"time"

	"github.com/assetdesk/metagen/internal/domain"
)

// TaskResultResponse is the per-task entry of a batch response.
type TaskResultResponse struct {
	Index          int      `json:"index"`
	DisplayName    string   `json:"display_name"`
	Status         string   `json:"status"`
	EnglishName    string   `json:"english_name,omitempty"`
	ArabicName     string   `json:"arabic_name,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	FailureCode    string   `json:"failure_code,omitempty"`
	FailureMessage string   `json:"failure_message,omitempty"`
}

// ProcessResponse is the full response for a processed batch.
type ProcessResponse struct {
	BatchID     string               `json:"batch_id"`
	CreatedAt   time.Time            `json:"created_at"`
	TaskCount   int                  `json:"task_count"`
	FailedCount int                  `json:"failed_count"`
	DownloadURL string               `json:"download_url"`
	PromptUsed  string               `json:"prompt_used"`
	Results     []TaskResultResponse `json:"results"`
	Warnings    []domain.Warning     `json:"warnings,omitempty"`
}

// ProgressResponse reports how far along a batch is.
type ProgressResponse struct {
	BatchID string `json:"batch_id"`
	Status  string `json:"status"`
	Settled int    `json:"settled"`
	Total   int    `json:"total"`
}

// HealthResponse is the body of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// resultToResponse converts a domain.TaskResult to its wire form.
func resultToResponse(r domain.TaskResult) TaskResultResponse {
	return TaskResultResponse{
		Index:          r.Index,
		DisplayName:    r.DisplayName,
		Status:         string(r.Status),
		EnglishName:    r.EnglishName,
		ArabicName:     r.ArabicName,
		Tags:           r.Tags,
		FailureCode:    string(r.FailureCode),
		FailureMessage: r.FailureMessage,
	}
}
