// Package app is the client-side application facade: it wires the upload
// flow, the session echo, the project store and the visualizer together the
// way the pages consume them.
package app

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/roomify-labs/roomify-backend/internal/projects/domain"
	"github.com/roomify-labs/roomify-backend/internal/projects/store"
	"github.com/roomify-labs/roomify-backend/internal/session"
	"github.com/roomify-labs/roomify-backend/internal/upload"
	"github.com/roomify-labs/roomify-backend/internal/visualizer"
)

// Service drives the upload, save and visualize flow.
type Service struct {
	store    store.Store
	echo     *session.EchoCache
	janitor  *session.Janitor
	uploader *upload.Uploader
	renderer visualizer.Renderer
}

func NewService(st store.Store, renderer visualizer.Renderer) *Service {
	echo := session.NewEchoCache(0)
	janitor := session.NewJanitor(echo)
	janitor.Start()

	return &Service{
		store:    st,
		echo:     echo,
		janitor:  janitor,
		uploader: &upload.Uploader{},
		renderer: renderer,
	}
}

// Uploader exposes the progress-simulating uploader for the upload widget.
func (s *Service) Uploader() *upload.Uploader {
	return s.uploader
}

// CreateFromUpload creates a new project from a completed upload. The inline
// payload is echoed into session storage as a local fallback, then the
// record is saved (which resolves it to permanent hosting). Save failures
// are tolerated: the UI proceeds optimistically with the local state.
func (s *Service) CreateFromUpload(ctx context.Context, inlineImage string) domain.DesignItem {
	item := domain.DesignItem{
		ID:          domain.NewID(),
		SourceImage: inlineImage,
	}
	item.Name = domain.DefaultName(item.ID)
	item.Timestamp = timestampFromID(item.ID)

	s.echo.Put(item.ID, inlineImage)

	if saved := s.store.Save(ctx, item, domain.VisibilityPrivate); saved != nil {
		return *saved
	}

	log.Printf("Project %q not persisted; continuing with local state", item.ID)
	return item
}

// OpenVisualizer loads a project and returns its view controller. Missing
// records fall back to the session echo so a just-uploaded plan can still
// be visualized while persistence catches up; nil means the project is
// unknown entirely.
func (s *Service) OpenVisualizer(ctx context.Context, id string) *visualizer.Controller {
	item := s.store.GetByID(ctx, id)
	if item == nil {
		payload, ok := s.echo.Get(id)
		if !ok {
			return nil
		}
		item = &domain.DesignItem{
			ID:          id,
			Name:        domain.DefaultName(id),
			SourceImage: payload,
			Timestamp:   timestampFromID(id),
		}
	}

	return visualizer.NewController(s.renderer, s.store, *item)
}

// ListProjects returns the user's project history.
func (s *Service) ListProjects(ctx context.Context) []domain.DesignItem {
	return s.store.List(ctx)
}

// Close stops background work.
func (s *Service) Close() {
	s.janitor.Stop()
}

// timestampFromID recovers the creation time from a timestamp-derived ID.
func timestampFromID(id string) int64 {
	ts, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return time.Now().UnixMilli()
	}
	return ts
}
