package batch

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/assetdesk/metagen/internal/domain"
)

// ErrBatchNotFound indicates a lookup for a batch ID the registry has never
// seen.
var ErrBatchNotFound = errors.New("batch not found")

// Registry is the in-memory index of batches and their export artifacts.
// Batches live only for the process lifetime; restarting the server forgets
// them.
type Registry struct {
	mu        sync.Mutex
	batches   map[uuid.UUID]*domain.Batch
	artifacts map[uuid.UUID][]byte
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		batches:   make(map[uuid.UUID]*domain.Batch),
		artifacts: make(map[uuid.UUID][]byte),
	}
}

// Add records a batch under its ID.
func (r *Registry) Add(b *domain.Batch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches[b.ID] = b
}

// Get returns the batch with the given ID, or ErrBatchNotFound.
func (r *Registry) Get(id uuid.UUID) (*domain.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return nil, ErrBatchNotFound
	}
	return b, nil
}

// StoreArtifact keeps the exported workbook bytes for later download.
func (r *Registry) StoreArtifact(id uuid.UUID, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.artifacts[id] = data
}

// Artifact returns the stored workbook for the given batch ID, or
// ErrBatchNotFound when no artifact exists for it.
func (r *Registry) Artifact(id uuid.UUID) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, ok := r.artifacts[id]
	if !ok {
		return nil, ErrBatchNotFound
	}
	return data, nil
}
