package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomify-labs/roomify-backend/internal/auth"
	"github.com/roomify-labs/roomify-backend/internal/projects/domain"
	"github.com/roomify-labs/roomify-backend/internal/projects/repository"
)

func setupRouter(t *testing.T) (*gin.Engine, *repository.ProjectRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := repository.NewProjectRepository(client)

	r := gin.New()
	Register(r, repo, auth.OptionalUser())
	return r, repo
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSaveHandler(t *testing.T) {
	r, repo := setupRouter(t)

	t.Run("saves a full project", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/projects/save", saveRequest{
			Project: &domain.DesignItem{
				ID:          "1700000000000",
				Name:        "Residence 1700000000000",
				SourceImage: "https://cdn.roomify.site/roomify/sources/1700000000000-source.png",
				Timestamp:   1700000000000,
			},
			Visibility: domain.VisibilityPrivate,
		}, nil)

		require.Equal(t, http.StatusOK, w.Code)

		var resp saveResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Saved)
		assert.Equal(t, "1700000000000", resp.ID)
		require.NotNil(t, resp.Project)
		assert.NotEmpty(t, resp.Project.UpdatedAt)

		got, err := repo.ForUser("demo-user").Get(context.Background(), "1700000000000")
		require.NoError(t, err)
		assert.Equal(t, "Residence 1700000000000", got.Name)
	})

	t.Run("rejects missing id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/projects/save", saveRequest{
			Project: &domain.DesignItem{SourceImage: "https://cdn.roomify.site/x.png"},
		}, nil)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Missing required fields: id or sourceImage", resp.Error)
	})

	t.Run("rejects missing project", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/projects/save", map[string]any{}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/projects/save", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("partial body merges into existing record", func(t *testing.T) {
		_, err := repo.ForUser("demo-user").Save(context.Background(), domain.DesignItem{
			ID:          "77",
			Name:        "Residence 77",
			SourceImage: "https://cdn.roomify.site/roomify/sources/77-source.png",
			Timestamp:   77,
		})
		require.NoError(t, err)

		w := doJSON(t, r, http.MethodPost, "/api/projects/save", saveRequest{
			Project: &domain.DesignItem{
				ID:            "77",
				RenderedImage: "https://cdn.roomify.site/roomify/renders/77-rendered.jpg",
			},
		}, nil)
		require.Equal(t, http.StatusOK, w.Code)

		got, err := repo.ForUser("demo-user").Get(context.Background(), "77")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.roomify.site/roomify/renders/77-rendered.jpg", got.RenderedImage)
		assert.Equal(t, "https://cdn.roomify.site/roomify/sources/77-source.png", got.SourceImage)
		assert.Equal(t, "Residence 77", got.Name)
	})

	t.Run("partial body for unknown project is rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/projects/save", saveRequest{
			Project: &domain.DesignItem{ID: "nope", RenderedImage: "https://cdn.roomify.site/x.jpg"},
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListHandler(t *testing.T) {
	r, repo := setupRouter(t)
	ctx := context.Background()

	for _, ts := range []int64{100, 300, 200} {
		_, err := repo.ForUser("demo-user").Save(ctx, domain.DesignItem{
			ID:          fmt.Sprintf("p%d", ts),
			Timestamp:   ts,
			SourceImage: "https://cdn.roomify.site/plan.png",
		})
		require.NoError(t, err)
	}
	// Another user's project stays invisible.
	_, err := repo.ForUser("other-user").Save(ctx, domain.DesignItem{
		ID: "x", Timestamp: 999, SourceImage: "https://cdn.roomify.site/plan.png",
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/projects/list", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Projects, 3)
	assert.Equal(t, int64(300), resp.Projects[0].Timestamp)
	assert.Equal(t, int64(100), resp.Projects[2].Timestamp)
}

func TestGetHandler(t *testing.T) {
	r, repo := setupRouter(t)

	_, err := repo.ForUser("demo-user").Save(context.Background(), domain.DesignItem{
		ID: "42", SourceImage: "https://cdn.roomify.site/plan.png", Timestamp: 42,
	})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/projects/get?id=42", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp getResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Project)
		assert.Equal(t, "42", resp.Project.ID)
	})

	t.Run("missing id parameter", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/projects/get", nil, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Project ID required", resp.Error)
	})

	t.Run("not found", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/projects/get?id=missing", nil, nil)
		require.Equal(t, http.StatusNotFound, w.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Project not found", resp.Error)
	})

	t.Run("scoped to the requesting user", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/projects/get?id=42", nil, map[string]string{
			"X-User-Id": "someone-else",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBannerHandler(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp bannerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Roomify API", resp.Service)
	assert.Contains(t, resp.Endpoints, "POST /api/projects/save")
}

func TestHandlers_RequireAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	// A pass-through middleware that never sets a uid.
	r := gin.New()
	Register(r, repository.NewProjectRepository(client), func(c *gin.Context) { c.Next() })

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodPost, "/api/projects/save"},
		{http.MethodGet, "/api/projects/list"},
		{http.MethodGet, "/api/projects/get?id=1"},
	} {
		w := doJSON(t, r, tc.method, tc.path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Authentication failed", resp.Error)
	}
}
