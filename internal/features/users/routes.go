package users

import (
	"github.com/gin-gonic/gin"
	"github.com/hazra-dev/vidtube/internal/config"
	"github.com/hazra-dev/vidtube/internal/features/videos"
	"github.com/hazra-dev/vidtube/internal/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRoutes registers the user-related routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)
	videosRepo := videos.NewRepository(db)

	handler := NewHandler(repo, videosRepo)

	authMiddleware := middleware.Auth(cfg)

	users := router.Group("/users")
	{
		users.GET("/me", authMiddleware, handler.Me)
		users.GET("/watch-history", authMiddleware, handler.WatchHistory)
		users.PATCH("/watch-history", authMiddleware, handler.RemoveFromHistory)
		users.DELETE("/watch-history", authMiddleware, handler.ClearHistory)
	}
}
