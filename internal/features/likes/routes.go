package likes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hazra-dev/vidtube/internal/config"
	"github.com/hazra-dev/vidtube/internal/features/comments"
	"github.com/hazra-dev/vidtube/internal/features/videos"
	"github.com/hazra-dev/vidtube/internal/middleware"
	"github.com/hazra-dev/vidtube/internal/pkg/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRoutes registers the like-related routes. They hang off the
// video and comment resources rather than a /likes prefix, so the
// param name must match what those features register.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)
	videosRepo := videos.NewRepository(db)
	commentsRepo := comments.NewRepository(db)

	handler := NewHandler(repo, videosRepo, commentsRepo)

	authMiddleware := middleware.Auth(cfg)

	// Toggles are cheap to spam; throttle them per user.
	toggleLimiter := ratelimit.New(60, time.Minute)
	toggleLimiter.StartCleanup(5 * time.Minute)
	throttle := ratelimit.Middleware(toggleLimiter)

	// Protected routes
	router.POST("/videos/:id/like", authMiddleware, throttle, handler.ToggleVideoLike)
	router.POST("/comments/:id/like", authMiddleware, throttle, handler.ToggleCommentLike)
	router.GET("/likes/videos", authMiddleware, handler.LikedVideos)

	// Public status routes; viewer identity comes from the uId query
	// parameter
	router.GET("/videos/:id/like/status", handler.VideoLikeStatus)
	router.GET("/comments/:id/like/status", handler.CommentLikeStatus)
}
