package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Batch lifecycle event types.
const (
	// EventBatchAccepted is emitted once a batch has been decomposed and
	// registered, before any task is dispatched.
	EventBatchAccepted = "batch.accepted"

	// EventBatchCompleted is emitted once every task of a batch has settled
	// and the export workbook has been stored.
	EventBatchCompleted = "batch.completed"
)

// BatchEvent describes one lifecycle transition of a batch. Consumers receive
// it without direct dependencies on the pipeline packages.
type BatchEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Event* constants
	Type string `json:"type"`

	// BatchID identifies the batch the event belongs to
	BatchID uuid.UUID `json:"batch_id"`

	// Payload contains event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *BatchEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewBatchEvent creates a BatchEvent of the given type for the given batch.
func NewBatchEvent(eventType string, batchID uuid.UUID, payload interface{}) (*BatchEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &BatchEvent{
		ID:        uuid.New(),
		Type:      eventType,
		BatchID:   batchID,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *BatchEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows the pipeline to publish lifecycle transitions without direct
// knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *BatchEvent) error
}
