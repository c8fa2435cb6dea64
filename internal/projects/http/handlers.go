package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomify-labs/roomify-backend/internal/auth"
	"github.com/roomify-labs/roomify-backend/internal/projects/domain"
	"github.com/roomify-labs/roomify-backend/internal/projects/repository"
)

// Handler serves the worker API over the per-user key-value namespace.
type Handler struct {
	repo *repository.ProjectRepository
}

func NewHandler(repo *repository.ProjectRepository) *Handler {
	return &Handler{repo: repo}
}

// Save persists a project for the authenticated user. A body carrying only
// {id, renderedImage} merges into the existing record so render updates
// stay a partial write.
func (h *Handler) Save(c *gin.Context) {
	uid := auth.UserUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Authentication failed"})
		return
	}

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Project == nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Missing required fields: id or sourceImage"})
		return
	}

	project := *req.Project
	if project.ID == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Missing required fields: id or sourceImage"})
		return
	}

	repo := h.repo.ForUser(uid)

	if project.SourceImage == "" {
		// Partial update: merge into the stored record.
		existing, err := repo.Get(c.Request.Context(), project.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "Missing required fields: id or sourceImage"})
			return
		}
		if project.RenderedImage != "" {
			existing.RenderedImage = project.RenderedImage
		}
		if project.Name != "" {
			existing.Name = project.Name
		}
		project = *existing
	}

	saved, err := repo.Save(c.Request.Context(), project.StripTransient())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to save project", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, saveResponse{Saved: true, ID: saved.ID, Project: &saved})
}

// List returns the user's projects in store order.
func (h *Handler) List(c *gin.Context) {
	uid := auth.UserUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Authentication failed"})
		return
	}

	items, err := h.repo.ForUser(uid).List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to list projects", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, listResponse{Projects: items})
}

// Get returns a single project by ID.
func (h *Handler) Get(c *gin.Context) {
	uid := auth.UserUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Authentication failed"})
		return
	}

	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Project ID required"})
		return
	}

	item, err := h.repo.ForUser(uid).Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to get project", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, getResponse{Project: item})
}

// Banner announces the service and its endpoints at the root path.
func (h *Handler) Banner(c *gin.Context) {
	c.JSON(http.StatusOK, bannerResponse{
		Status:  "ok",
		Service: "Roomify API",
		Endpoints: []string{
			"POST /api/projects/save",
			"GET /api/projects/list",
			"GET /api/projects/get",
		},
	})
}
