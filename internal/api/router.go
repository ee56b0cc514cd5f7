package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"nearbite/internal/api/controllers"
	"nearbite/internal/config"
	"nearbite/pkg/middleware"
)

func NewRouter(cfg *config.Config, log *slog.Logger, searchController *controllers.SearchController) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	RegisterRoutes(r, cfg, searchController)

	return r
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, searchController *controllers.SearchController) {
	r.GET("/healthz", searchController.Health)

	apiGroup := r.Group("/api")
	if cfg.JWTSecret != "" {
		apiGroup.Use(middleware.JWTAuthMiddleware([]byte(cfg.JWTSecret)))
	}
	apiGroup.POST("/search", searchController.Search)
	apiGroup.GET("/resolve", searchController.Resolve)
}
