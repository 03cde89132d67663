package batch

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdesk/metagen/internal/domain"
)

func TestRegistryAddAndGet(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	b := domain.NewBatch(makeTasks(2), nil)
	r.Add(b)

	got, err := r.Get(b.ID)
	require.NoError(t, err)
	assert.Same(t, b, got)
}

func TestRegistryGetUnknownID(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	_, err := r.Get(uuid.New())
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestRegistryArtifactRoundTrip(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	id := uuid.New()

	_, err := r.Artifact(id)
	require.ErrorIs(t, err, ErrBatchNotFound)

	data := []byte("workbook bytes")
	r.StoreArtifact(id, data)

	got, err := r.Artifact(id)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}
