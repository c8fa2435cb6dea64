package upload

import (
	"context"
	"time"

	"github.com/roomify-labs/roomify-backend/internal/imaging"
)

// Progress simulation constants. The progress loop runs on a fixed
// interval independent of real I/O; no transfer-progress events exist on
// the underlying transport.
const (
	ProgressIncrement = 15
	ProgressInterval  = 100 * time.Millisecond
	CompleteDelay     = 600 * time.Millisecond
)

// Uploader validates a file, encodes it as an inline payload and drives the
// simulated progress sequence. Zero fields select the defaults, so the
// timing can be compressed in tests.
type Uploader struct {
	Increment     int
	Interval      time.Duration
	CompleteDelay time.Duration
}

// Process runs the upload sequence for one file. onProgress observes each
// step from the first increment to 100; onComplete fires exactly once, after
// the completion delay, with the non-empty inline payload. Cancelling ctx
// stops the timers and suppresses onComplete. Either callback may be nil.
//
// Process blocks for the duration of the simulation; run it on its own
// goroutine when driving UI state.
func (u *Uploader) Process(ctx context.Context, meta FileMeta, payload []byte, onProgress func(int), onComplete func(string)) error {
	if err := Validate(meta); err != nil {
		return err
	}

	increment := u.Increment
	if increment <= 0 {
		increment = ProgressIncrement
	}
	interval := u.Interval
	if interval <= 0 {
		interval = ProgressInterval
	}
	completeDelay := u.CompleteDelay
	if completeDelay <= 0 {
		completeDelay = CompleteDelay
	}

	dataURL := imaging.EncodeDataURL(meta.MIMEType, payload)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	progress := 0
	for progress < 100 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			progress += increment
			if progress > 100 {
				progress = 100
			}
			if onProgress != nil {
				onProgress(progress)
			}
		}
	}
	ticker.Stop()

	timer := time.NewTimer(completeDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	if onComplete != nil {
		onComplete(dataURL)
	}
	return nil
}
