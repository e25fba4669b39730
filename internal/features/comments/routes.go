package comments

import (
	"github.com/gin-gonic/gin"
	"github.com/hazra-dev/vidtube/internal/config"
	"github.com/hazra-dev/vidtube/internal/features/videos"
	"github.com/hazra-dev/vidtube/internal/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRoutes registers the comment-related routes. Listing and
// creation live under the video resource; deletion addresses the
// comment directly.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)
	videosRepo := videos.NewRepository(db)

	handler := NewHandler(repo, videosRepo)

	authMiddleware := middleware.Auth(cfg)

	router.GET("/videos/:id/comments", handler.List)
	router.POST("/videos/:id/comments", authMiddleware, handler.Create)
	router.DELETE("/comments/:id", authMiddleware, handler.Delete)
}
