package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	tr := NewTracker()

	assert.False(t, tr.Has("r/golang/abc123"))
	assert.Zero(t, tr.Len())

	tr.Add("r/golang/abc123")
	assert.True(t, tr.Has("r/golang/abc123"))
	assert.Equal(t, 1, tr.Len())

	// Re-adding the same key is a no-op.
	tr.Add("r/golang/abc123")
	assert.Equal(t, 1, tr.Len())

	tr.Add("r/golang/def456")
	assert.Equal(t, 2, tr.Len())
	assert.True(t, tr.Has("r/golang/def456"))
	assert.False(t, tr.Has("r/rust/abc123"))
}
