package domain

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_StrictlyIncreasing(t *testing.T) {
	prev := int64(0)
	for i := 0; i < 100; i++ {
		id, err := strconv.ParseInt(NewID(), 10, 64)
		require.NoError(t, err)
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestDefaultName(t *testing.T) {
	assert.Equal(t, "Residence 1700000000000", DefaultName("1700000000000"))
}

func TestStripTransient(t *testing.T) {
	item := DesignItem{
		ID:           "1",
		SourceImage:  "https://example.com/a.png",
		SourcePath:   "/tmp/a.png",
		RenderedPath: "/tmp/b.png",
		PublicPath:   "/pub/a.png",
	}

	stripped := item.StripTransient()
	assert.Empty(t, stripped.SourcePath)
	assert.Empty(t, stripped.RenderedPath)
	assert.Empty(t, stripped.PublicPath)
	assert.Equal(t, item.ID, stripped.ID)
	assert.Equal(t, item.SourceImage, stripped.SourceImage)

	// Value receiver: the original is untouched.
	assert.Equal(t, "/tmp/a.png", item.SourcePath)
}
