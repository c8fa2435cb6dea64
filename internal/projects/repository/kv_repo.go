package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roomify-labs/roomify-backend/internal/projects/domain"
)

// Key prefix for project records: roomify-projects_{project_id}.
// In the direct path the Redis database is already the user's own key-value
// namespace, so keys carry no user component. The worker API scopes records
// per user via ForUser.
const projectKeyPrefix = "roomify-projects_"

// ProjectRepository stores DesignItem records as JSON values in Redis.
type ProjectRepository struct {
	client    *redis.Client
	namespace string
}

// NewProjectRepository creates a repository over the given Redis client.
func NewProjectRepository(client *redis.Client) *ProjectRepository {
	return &ProjectRepository{client: client}
}

// ForUser returns a view of the repository whose keys are scoped to one
// user's namespace. Used by the worker API; the direct path uses the
// unscoped repository.
func (r *ProjectRepository) ForUser(userID string) *ProjectRepository {
	return &ProjectRepository{
		client:    r.client,
		namespace: fmt.Sprintf("user:%s:", userID),
	}
}

// Save writes the record, stamping UpdatedAt. Create and full update are
// the same operation.
func (r *ProjectRepository) Save(ctx context.Context, item domain.DesignItem) (domain.DesignItem, error) {
	if item.ID == "" {
		return domain.DesignItem{}, domain.ErrMissingID
	}

	item.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.Marshal(item)
	if err != nil {
		return domain.DesignItem{}, fmt.Errorf("failed to marshal project: %w", err)
	}

	if err := r.client.Set(ctx, r.projectKey(item.ID), data, 0).Err(); err != nil {
		return domain.DesignItem{}, fmt.Errorf("failed to save project: %w", err)
	}

	return item, nil
}

// Get retrieves a record by ID.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.DesignItem, error) {
	data, err := r.client.Get(ctx, r.projectKey(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	var item domain.DesignItem
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project: %w", err)
	}

	return &item, nil
}

// List enumerates all records under the key prefix and batch-fetches them,
// sorted by Timestamp descending (most recent first). Records that fail to
// decode are skipped rather than failing the whole listing.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.DesignItem, error) {
	keys, err := r.client.Keys(ctx, r.projectKey("*")).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list project keys: %w", err)
	}
	if len(keys) == 0 {
		return []domain.DesignItem{}, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	items := make([]domain.DesignItem, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var item domain.DesignItem
		if err := json.Unmarshal([]byte(s), &item); err != nil {
			continue
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})

	return items, nil
}

func (r *ProjectRepository) projectKey(id string) string {
	return fmt.Sprintf("%s%s%s", r.namespace, projectKeyPrefix, id)
}
