package render

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/roomify-labs/roomify-backend/internal/imaging"
)

const (
	// DefaultTimeout is the hard deadline for a single generation.
	DefaultTimeout = 120 * time.Second
	// DefaultMaxInputDimension bounds the input's longest side before
	// submission to keep latency and cost down.
	DefaultMaxInputDimension = 768
)

// Result is the outcome of a successful generation. RenderedImage is
// always an inline payload: transient third-party URLs never reach the
// caller.
type Result struct {
	RenderedImage string
}

// Invoker wraps the AI image service call with input normalization,
// downsampling and a cancellable deadline.
type Invoker struct {
	gen         Generator
	timeout     time.Duration
	maxDim      int
	fetchClient *http.Client
}

// NewInvoker creates an invoker over the given generator. Zero timeout and
// maxDim select the defaults.
func NewInvoker(gen Generator, timeout time.Duration, maxDim int) *Invoker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxDim == 0 {
		maxDim = DefaultMaxInputDimension
	}
	return &Invoker{
		gen:     gen,
		timeout: timeout,
		maxDim:  maxDim,
		fetchClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Render converts a floor plan image into a 3D render. sourceImage may be
// an inline payload or a remote URL. The service call runs under a context
// deadline; cancelling ctx cancels the call itself rather than merely
// abandoning it.
func (inv *Invoker) Render(ctx context.Context, sourceImage string) (*Result, error) {
	dataURL := sourceImage
	if !strings.HasPrefix(sourceImage, "data:") {
		fetched, err := imaging.FetchAsDataURL(ctx, inv.fetchClient, sourceImage)
		if err != nil {
			return nil, &GenerationError{Err: err}
		}
		dataURL = fetched
	}

	mimeType, data, err := imaging.DecodeDataURL(dataURL)
	if err != nil {
		return nil, ErrInvalidPayload
	}

	data, mimeType = imaging.Downsample(data, mimeType, inv.maxDim)

	callCtx, cancel := context.WithTimeout(ctx, inv.timeout)
	defer cancel()

	out, remoteURL, err := inv.gen.Generate(callCtx, RenderPrompt, mimeType, data)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded), errors.Is(callCtx.Err(), context.DeadlineExceeded):
			return nil, ErrTimeout
		case ctx.Err() != nil:
			// The caller cancelled; report that rather than a service failure.
			return nil, ctx.Err()
		default:
			return nil, &GenerationError{Err: err}
		}
	}

	if len(out) == 0 && remoteURL != "" {
		// The service handed back a transient URL; re-encode it inline so
		// the caller never sees a third-party reference.
		inline, err := imaging.FetchAsDataURL(ctx, inv.fetchClient, remoteURL)
		if err != nil {
			return nil, &GenerationError{Err: err}
		}
		return &Result{RenderedImage: inline}, nil
	}

	if len(out) == 0 {
		return nil, &GenerationError{Err: errors.New("empty image from service")}
	}

	return &Result{RenderedImage: imaging.EncodeDataURL("image/png", out)}, nil
}
