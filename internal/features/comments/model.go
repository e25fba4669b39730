package comments

import (
	"time"

	"github.com/hazra-dev/vidtube/internal/features/videos"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a video
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Video     primitive.ObjectID `bson:"video" json:"video"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CommentWithOwner is a comment joined with its author's summary.
type CommentWithOwner struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Video     primitive.ObjectID `bson:"video" json:"video"`
	Content   string             `bson:"content" json:"content"`
	Owner     *videos.Owner      `bson:"owner" json:"owner,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateRequest is the payload for posting a comment
type CreateRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListQuery carries pagination parameters for comment listings.
type ListQuery struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=10"`
}
