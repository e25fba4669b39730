package routes

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/hazra-dev/vidtube/internal/config"
	"github.com/hazra-dev/vidtube/internal/features/comments"
	"github.com/hazra-dev/vidtube/internal/features/likes"
	"github.com/hazra-dev/vidtube/internal/features/users"
	"github.com/hazra-dev/vidtube/internal/features/videos"
	"github.com/hazra-dev/vidtube/internal/pkg/cloudinary"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// videoCleanup removes comments and likes left behind when a video is
// deleted. It satisfies videos.Cleaner.
type videoCleanup struct {
	comments *comments.Repository
	likes    *likes.Repository
}

func (vc *videoCleanup) CleanupVideo(ctx context.Context, videoID primitive.ObjectID) error {
	commentIDs, err := vc.comments.IDsByVideo(ctx, videoID)
	if err != nil {
		return err
	}
	// Likes on the video itself and on each of its comments.
	if err := vc.likes.DeleteByTargets(ctx, append(commentIDs, videoID)); err != nil {
		return err
	}
	return vc.comments.DeleteByVideo(ctx, videoID)
}

// SetupRoutes registers all application routes
func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) {
	api := router.Group("/api/v1")

	// Cloudinary is optional at startup: without credentials uploads
	// fail soft and the rest of the API keeps working.
	var cld *cloudinary.Service
	if cfg.CloudinaryCloudName != "" {
		var err error
		cld, err = cloudinary.NewService(
			cfg.CloudinaryCloudName,
			cfg.CloudinaryAPIKey,
			cfg.CloudinaryAPISecret,
			cfg.CloudinaryFolder,
		)
		if err != nil {
			log.Printf("cloudinary unavailable: %v", err)
		}
	}

	// The users repository backs the view accounting and watch history
	// recency hooks in the videos feature.
	usersRepo := users.NewRepository(db)

	// A nil *cloudinary.Service must not leak into the interface, or
	// the handler's nil checks stop working.
	var media videos.MediaStore
	if cld != nil {
		media = cld
	}

	cleanup := &videoCleanup{
		comments: comments.NewRepository(db),
		likes:    likes.NewRepository(db),
	}

	videos.RegisterRoutes(api, db, cfg, usersRepo, media, cleanup)
	users.RegisterRoutes(api, db, cfg)
	comments.RegisterRoutes(api, db, cfg)
	likes.RegisterRoutes(api, db, cfg)
}
