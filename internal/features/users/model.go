package users

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a platform user. WatchHistory holds video ids in
// recency order, most recent first.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Username     string               `bson:"username" json:"username"`
	Email        string               `bson:"email" json:"email"`
	FullName     string               `bson:"fullName" json:"fullName"`
	Avatar       string               `bson:"avatar" json:"avatar,omitempty"`
	CoverImage   string               `bson:"coverImage" json:"coverImage,omitempty"`
	WatchHistory []primitive.ObjectID `bson:"watchHistory" json:"-"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// RemoveHistoryRequest names the video to drop from the watch history.
type RemoveHistoryRequest struct {
	VideoID string `json:"videoId" binding:"required"`
}

// ListQuery carries pagination parameters for watch history listings.
type ListQuery struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=10"`
}
