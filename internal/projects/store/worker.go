package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/roomify-labs/roomify-backend/internal/hosting"
	"github.com/roomify-labs/roomify-backend/internal/projects/domain"
	"github.com/roomify-labs/roomify-backend/internal/transport"
)

// WorkerStore persists projects through the remote worker API, dispatched
// via the routed transport client. Used in the hosted environment.
//
// An empty worker base URL is a misconfiguration that degrades every
// operation to a logged no-op instead of crashing.
type WorkerStore struct {
	client     *transport.Client
	resolver   *hosting.Resolver
	workerBase string
	// Token supplies the caller's credential for proxied requests; nil
	// when the in-process channel carries identity implicitly.
	Token func(ctx context.Context) string
}

func NewWorkerStore(client *transport.Client, resolver *hosting.Resolver, workerBase string) *WorkerStore {
	return &WorkerStore{client: client, resolver: resolver, workerBase: workerBase}
}

type saveRequest struct {
	Project    *domain.DesignItem `json:"project"`
	Visibility domain.Visibility  `json:"visibility,omitempty"`
}

type projectResponse struct {
	Project *domain.DesignItem `json:"project"`
}

type listResponse struct {
	Projects []domain.DesignItem `json:"projects"`
}

func (s *WorkerStore) Save(ctx context.Context, item domain.DesignItem, visibility domain.Visibility) *domain.DesignItem {
	prepared := prepareForSave(ctx, s.resolver, item)
	if prepared == nil {
		return nil
	}

	if s.workerBase == "" {
		log.Printf("Warning: WORKER_BASE_URL not set; skip save")
		return nil
	}

	body, resp, err := s.post(ctx, "/api/projects/save", saveRequest{Project: prepared, Visibility: visibility})
	if err != nil {
		log.Printf("Failed to save project %q: %v", item.ID, err)
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("Failed to save project %q: %s", item.ID, string(body))
		return nil
	}

	var out projectResponse
	if err := json.Unmarshal(body, &out); err != nil {
		log.Printf("Failed to decode save response for project %q: %v", item.ID, err)
		return nil
	}
	return out.Project
}

func (s *WorkerStore) UpdateRender(ctx context.Context, id, renderedImage string) {
	if s.workerBase == "" {
		log.Printf("Warning: WORKER_BASE_URL not set; skip render update")
		return
	}

	partial := &domain.DesignItem{ID: id, RenderedImage: renderedImage}
	body, resp, err := s.post(ctx, "/api/projects/save", saveRequest{Project: partial})
	if err != nil {
		log.Printf("Failed to update render for project %q: %v", id, err)
		return
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("Failed to update render for project %q: %s", id, string(body))
	}
}

// List returns whatever ordering the worker provides; no client-side
// re-sort happens on this path.
func (s *WorkerStore) List(ctx context.Context) []domain.DesignItem {
	if s.workerBase == "" {
		log.Printf("Warning: WORKER_BASE_URL not set; skip history fetch")
		return []domain.DesignItem{}
	}

	body, resp, err := s.get(ctx, "/api/projects/list")
	if err != nil {
		log.Printf("Failed to fetch projects: %v", err)
		return []domain.DesignItem{}
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("Failed to fetch history: %s", string(body))
		return []domain.DesignItem{}
	}

	var out listResponse
	if err := json.Unmarshal(body, &out); err != nil {
		log.Printf("Failed to decode project list: %v", err)
		return []domain.DesignItem{}
	}
	if out.Projects == nil {
		return []domain.DesignItem{}
	}
	return out.Projects
}

func (s *WorkerStore) GetByID(ctx context.Context, id string) *domain.DesignItem {
	if s.workerBase == "" {
		log.Printf("Warning: WORKER_BASE_URL not set; skip project fetch")
		return nil
	}

	body, resp, err := s.get(ctx, "/api/projects/get?id="+url.QueryEscape(id))
	if err != nil {
		log.Printf("Failed to fetch project %q: %v", id, err)
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode != http.StatusNotFound {
			log.Printf("Failed to fetch project %q: %s", id, string(body))
		}
		return nil
	}

	var out projectResponse
	if err := json.Unmarshal(body, &out); err != nil {
		log.Printf("Failed to decode project %q: %v", id, err)
		return nil
	}
	return out.Project
}

func (s *WorkerStore) post(ctx context.Context, path string, payload any) ([]byte, *http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.workerBase+path, bytes.NewBuffer(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	s.authorize(ctx, req)

	return s.roundTrip(req)
}

func (s *WorkerStore) get(ctx context.Context, path string) ([]byte, *http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.workerBase+path, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	s.authorize(ctx, req)

	return s.roundTrip(req)
}

func (s *WorkerStore) authorize(ctx context.Context, req *http.Request) {
	if s.Token == nil {
		return
	}
	if tok := s.Token(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

func (s *WorkerStore) roundTrip(req *http.Request) ([]byte, *http.Response, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp, fmt.Errorf("failed to read response: %w", err)
	}
	return body, resp, nil
}
