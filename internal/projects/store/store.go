// Package store exposes the project persistence operations behind a single
// interface with two interchangeable implementations: a direct key-value
// path for local/dev contexts and a remote worker path for the hosted
// environment. The implementation is selected once at startup; call sites
// never re-branch on the environment.
//
// Failures are contained at this boundary: every operation logs and returns
// a neutral result (nil or an empty slice) instead of propagating errors to
// the view layer.
package store

import (
	"context"
	"log"

	"github.com/roomify-labs/roomify-backend/internal/hosting"
	"github.com/roomify-labs/roomify-backend/internal/projects/domain"
	"github.com/roomify-labs/roomify-backend/internal/projects/repository"
	"github.com/roomify-labs/roomify-backend/internal/transport"
)

// Store is the project persistence contract shared by both paths.
type Store interface {
	// Save persists the item, first resolving its images to permanent
	// hosting. Returns the saved record or nil on any failure.
	Save(ctx context.Context, item domain.DesignItem, visibility domain.Visibility) *domain.DesignItem
	// UpdateRender attaches a rendered image to an existing project.
	// Best-effort: never fails the caller.
	UpdateRender(ctx context.Context, id, renderedImage string)
	// List returns the user's projects; empty on any failure.
	List(ctx context.Context) []domain.DesignItem
	// GetByID returns one project, or nil on miss or failure.
	GetByID(ctx context.Context, id string) *domain.DesignItem
}

// Options carries everything either implementation might need.
type Options struct {
	Detector   *transport.Detector
	Repo       *repository.ProjectRepository
	Resolver   *hosting.Resolver
	Client     *transport.Client
	WorkerBase string
}

// New selects the implementation for this process: the remote worker path
// when executing on the hosting platform, the direct key-value path
// otherwise.
func New(opts Options) Store {
	if opts.Detector.IsHosted() {
		return NewWorkerStore(opts.Client, opts.Resolver, opts.WorkerBase)
	}
	return NewDirectStore(opts.Repo, opts.Resolver)
}

// prepareForSave runs the mode-independent half of Save: resolve the source
// (and, when present, the rendered) image to permanent hosting and strip
// transient fields. Returns nil when no hosted source URL can be produced;
// a project must never be saved with an ephemeral image reference.
func prepareForSave(ctx context.Context, resolver *hosting.Resolver, item domain.DesignItem) *domain.DesignItem {
	var hostedSource *hosting.Hosted
	if item.ID != "" {
		hostedSource = resolver.EnsureHosted(ctx, item.SourceImage, item.ID, "source")
	}

	var hostedRender *hosting.Hosted
	if item.ID != "" && item.RenderedImage != "" {
		hostedRender = resolver.EnsureHosted(ctx, item.RenderedImage, item.ID, "rendered")
	}

	resolvedSource := ""
	if hostedSource != nil {
		resolvedSource = hostedSource.URL
	} else if resolver.IsHostedURL(item.SourceImage) {
		resolvedSource = item.SourceImage
	}

	if resolvedSource == "" {
		log.Printf("Failed to host source image for project %q, skipping save", item.ID)
		return nil
	}

	resolvedRender := ""
	if hostedRender != nil {
		resolvedRender = hostedRender.URL
	} else if item.RenderedImage != "" && resolver.IsHostedURL(item.RenderedImage) {
		resolvedRender = item.RenderedImage
	}

	payload := item.StripTransient()
	payload.SourceImage = resolvedSource
	payload.RenderedImage = resolvedRender
	if payload.Name == "" {
		payload.Name = domain.DefaultName(payload.ID)
	}

	return &payload
}
