package upload

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastUploader compresses the simulated timing so tests stay quick without
// changing the sequencing.
func fastUploader() *Uploader {
	return &Uploader{
		Interval:      time.Millisecond,
		CompleteDelay: 5 * time.Millisecond,
	}
}

func TestUploader_Process_ProgressSequence(t *testing.T) {
	u := fastUploader()
	meta := FileMeta{Name: "plan.png", MIMEType: "image/png", Size: 4}

	var steps []int
	var completed []string

	err := u.Process(context.Background(), meta, []byte("data"),
		func(p int) { steps = append(steps, p) },
		func(payload string) { completed = append(completed, payload) },
	)
	require.NoError(t, err)

	require.NotEmpty(t, steps)
	assert.Equal(t, []int{15, 30, 45, 60, 75, 90, 100}, steps)
	assert.Equal(t, 100, steps[len(steps)-1])

	require.Len(t, completed, 1, "onComplete must fire exactly once")
	assert.True(t, strings.HasPrefix(completed[0], "data:image/png;base64,"))
	assert.Greater(t, len(completed[0]), len("data:image/png;base64,"))
}

func TestUploader_Process_CompleteAfterFullProgress(t *testing.T) {
	u := fastUploader()
	meta := FileMeta{Name: "plan.jpg", MIMEType: "image/jpeg", Size: 4}

	sawFull := false
	err := u.Process(context.Background(), meta, []byte("data"),
		func(p int) {
			if p == 100 {
				sawFull = true
			}
		},
		func(string) {
			assert.True(t, sawFull, "completion must come after progress reaches 100")
		},
	)
	require.NoError(t, err)
	assert.True(t, sawFull)
}

func TestUploader_Process_RejectsInvalidFile(t *testing.T) {
	u := fastUploader()
	meta := FileMeta{Name: "plan.gif", MIMEType: "image/gif", Size: 4}

	called := false
	err := u.Process(context.Background(), meta, []byte("data"),
		func(int) { called = true },
		func(string) { called = true },
	)
	assert.ErrorIs(t, err, ErrInvalidType)
	assert.False(t, called, "callbacks must not fire for a rejected file")
}

func TestUploader_Process_CancelSuppressesCompletion(t *testing.T) {
	u := &Uploader{
		Interval:      time.Millisecond,
		CompleteDelay: time.Minute,
	}
	meta := FileMeta{Name: "plan.png", MIMEType: "image/png", Size: 4}

	ctx, cancel := context.WithCancel(context.Background())
	completed := false

	err := u.Process(ctx, meta, []byte("data"),
		func(p int) {
			if p == 100 {
				// Abort during the completion delay.
				cancel()
			}
		},
		func(string) { completed = true },
	)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, completed, "onComplete must not fire after cancellation")
}

func TestUploader_Process_CancelMidProgress(t *testing.T) {
	u := fastUploader()
	meta := FileMeta{Name: "plan.png", MIMEType: "image/png", Size: 4}

	ctx, cancel := context.WithCancel(context.Background())
	completed := false

	err := u.Process(ctx, meta, []byte("data"),
		func(p int) {
			if p >= 30 {
				cancel()
			}
		},
		func(string) { completed = true },
	)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, completed)
}
