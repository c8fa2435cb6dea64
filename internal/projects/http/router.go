package http

import (
	"github.com/gin-gonic/gin"

	"github.com/roomify-labs/roomify-backend/internal/projects/repository"
)

// Register mounts the worker API routes. authMW supplies the user identity
// (Firebase verification in production, OptionalUser in development).
func Register(r gin.IRouter, repo *repository.ProjectRepository, authMW gin.HandlerFunc) {
	h := NewHandler(repo)

	r.GET("/", h.Banner)

	api := r.Group("/api/projects")
	api.Use(authMW)

	api.POST("/save", h.Save)
	api.GET("/list", h.List)
	api.GET("/get", h.Get)
}
