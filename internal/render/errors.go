package render

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout means the generation deadline elapsed before the AI
	// service produced a result.
	ErrTimeout = errors.New("rendering timed out, please try again")
	// ErrInvalidPayload means the normalized source image lacks a
	// resolvable MIME type or encoded body.
	ErrInvalidPayload = errors.New("invalid source image payload")
)

// GenerationError wraps an underlying transport or service failure.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
