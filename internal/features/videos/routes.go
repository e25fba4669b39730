package videos

import (
	"github.com/gin-gonic/gin"
	"github.com/hazra-dev/vidtube/internal/config"
	"github.com/hazra-dev/vidtube/internal/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRoutes registers the video-related routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, history WatchHistory, media MediaStore, cleanup Cleaner) {
	repo := NewRepository(db)
	handler := NewHandler(repo, history, media, cleanup)

	authMiddleware := middleware.Auth(cfg)
	optionalAuth := middleware.OptionalAuth(cfg)

	videos := router.Group("/videos")
	{
		// Public routes with optional auth: the viewer identity drives
		// visibility and view accounting when present.
		videos.GET("", handler.List)
		videos.GET("/:id", optionalAuth, handler.Get)
		videos.GET("/owner/:ownerId", optionalAuth, handler.ListByOwner)

		// Protected routes
		videos.POST("", authMiddleware, handler.Upload)
		videos.PATCH("/:id", authMiddleware, handler.Update)
		videos.DELETE("/:id", authMiddleware, handler.Delete)
		videos.PATCH("/:id/publish", authMiddleware, handler.TogglePublish)
	}
}
