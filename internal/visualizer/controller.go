// Package visualizer holds the per-project view state driving the render
// flow: exactly one generation in flight per visualized project, and no
// state mutation after cancellation.
package visualizer

import (
	"context"
	"log"
	"sync"

	"github.com/roomify-labs/roomify-backend/internal/projects/domain"
	"github.com/roomify-labs/roomify-backend/internal/projects/store"
	"github.com/roomify-labs/roomify-backend/internal/render"
)

// Renderer is the generation entry point the controller depends on.
type Renderer interface {
	Render(ctx context.Context, sourceImage string) (*render.Result, error)
}

// Controller owns the visualizer state for a single project.
type Controller struct {
	renderer Renderer
	store    store.Store

	mu         sync.Mutex
	project    domain.DesignItem
	generating bool
	// started latches once a generation has been initiated so re-renders
	// of the view never auto-invoke a second one.
	started bool
	lastErr error
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewController(renderer Renderer, st store.Store, project domain.DesignItem) *Controller {
	c := &Controller{renderer: renderer, store: st, project: project}
	if project.RenderedImage != "" {
		// An existing render counts as initiated.
		c.started = true
	}
	return c
}

// StartRender kicks off generation unless one is already in flight or the
// project already has a render. Returns false when the guard suppressed the
// invocation.
func (c *Controller) StartRender(ctx context.Context) bool {
	if c.renderer == nil {
		return false
	}

	c.mu.Lock()
	if c.started || c.generating {
		c.mu.Unlock()
		return false
	}

	genCtx, cancel := context.WithCancel(ctx)
	c.generating = true
	c.started = true
	c.lastErr = nil
	c.cancel = cancel
	c.done = make(chan struct{})
	source := c.project.SourceImage
	id := c.project.ID
	c.mu.Unlock()

	go func() {
		defer close(c.done)
		defer cancel()

		result, err := c.renderer.Render(genCtx, source)

		c.mu.Lock()
		defer c.mu.Unlock()
		c.generating = false

		// A cancelled generation must not touch state, even if the
		// underlying call completed.
		if genCtx.Err() != nil {
			return
		}

		if err != nil {
			c.lastErr = err
			log.Printf("Generation failed for project %q: %v", id, err)
			return
		}

		c.project.RenderedImage = result.RenderedImage
		if c.store != nil {
			c.store.UpdateRender(genCtx, id, result.RenderedImage)
		}
	}()

	return true
}

// Retry clears the guard so the user-facing retry action can start another
// generation after a failure.
func (c *Controller) Retry(ctx context.Context) bool {
	c.mu.Lock()
	if c.generating {
		c.mu.Unlock()
		return false
	}
	c.started = false
	c.mu.Unlock()
	return c.StartRender(ctx)
}

// Close aborts any in-flight generation, e.g. when navigating away.
func (c *Controller) Close() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Wait blocks until the current generation goroutine has finished. Intended
// for tests and teardown.
func (c *Controller) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Snapshot returns a copy of the current project state.
func (c *Controller) Snapshot() domain.DesignItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.project
}

// Generating reports whether a generation is in flight.
func (c *Controller) Generating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generating
}

// Err returns the last generation failure, if any. The caller surfaces it
// with a retry affordance.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
