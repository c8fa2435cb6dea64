package bootstrap

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/roomify-labs/roomify-backend/internal/api/http"
	"github.com/roomify-labs/roomify-backend/internal/api/http/middleware"
	"github.com/roomify-labs/roomify-backend/internal/auth"
	authmw "github.com/roomify-labs/roomify-backend/internal/auth/middleware"
	projectshttp "github.com/roomify-labs/roomify-backend/internal/projects/http"
	"github.com/roomify-labs/roomify-backend/internal/projects/repository"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	KV          *redis.Client
	// AuthClient enforces Firebase auth when set; nil falls back to the
	// development identity middleware.
	AuthClient    *fbauth.Client
	RatePerSecond float64
	RateBurst     int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	// The worker API is consumed cross-origin from both the hosted app and
	// the local dev proxy.
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-User-Id", "X-Request-Id")
	r.Use(cors.New(corsCfg))

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RateLimitMiddleware(dep.RatePerSecond, dep.RateBurst))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.KV)
	healthHandler.RegisterRoutes(r)

	var authMW gin.HandlerFunc
	if dep.AuthClient != nil {
		authMW = authmw.FirebaseAuthMiddleware(dep.AuthClient)
	} else {
		authMW = auth.OptionalUser()
	}

	projectRepo := repository.NewProjectRepository(dep.KV)
	projectshttp.Register(r, projectRepo, authMW)

	return r
}
