package store

import (
	"context"
	"errors"
	"log"

	"github.com/roomify-labs/roomify-backend/internal/hosting"
	"github.com/roomify-labs/roomify-backend/internal/projects/domain"
	"github.com/roomify-labs/roomify-backend/internal/projects/repository"
)

// DirectStore persists projects through local key-value calls. Used when
// the app is not running on the hosting platform.
type DirectStore struct {
	repo     *repository.ProjectRepository
	resolver *hosting.Resolver
}

func NewDirectStore(repo *repository.ProjectRepository, resolver *hosting.Resolver) *DirectStore {
	return &DirectStore{repo: repo, resolver: resolver}
}

func (s *DirectStore) Save(ctx context.Context, item domain.DesignItem, visibility domain.Visibility) *domain.DesignItem {
	prepared := prepareForSave(ctx, s.resolver, item)
	if prepared == nil {
		return nil
	}

	saved, err := s.repo.Save(ctx, *prepared)
	if err != nil {
		log.Printf("Failed to save project %q to kv: %v", item.ID, err)
		return nil
	}
	return &saved
}

func (s *DirectStore) UpdateRender(ctx context.Context, id, renderedImage string) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Printf("Failed to update render for project %q: %v", id, err)
		return
	}

	// Best effort: keep the inline payload if hosting is unavailable.
	if hosted := s.resolver.EnsureHosted(ctx, renderedImage, id, "rendered"); hosted != nil {
		renderedImage = hosted.URL
	}

	existing.RenderedImage = renderedImage
	if _, err := s.repo.Save(ctx, *existing); err != nil {
		log.Printf("Failed to update render for project %q: %v", id, err)
	}
}

func (s *DirectStore) List(ctx context.Context) []domain.DesignItem {
	items, err := s.repo.List(ctx)
	if err != nil {
		log.Printf("Failed to list projects from kv: %v", err)
		return []domain.DesignItem{}
	}
	return items
}

func (s *DirectStore) GetByID(ctx context.Context, id string) *domain.DesignItem {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrProjectNotFound) {
			log.Printf("Failed to get project %q from kv: %v", id, err)
		}
		return nil
	}
	return item
}
