package likes

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Target kinds a like can attach to.
const (
	KindVideo   = "video"
	KindComment = "comment"
)

// Like represents one user's like on a single target. The unique index
// on (likedBy, targetId) makes the pair the identity of the document.
type Like struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TargetID   primitive.ObjectID `bson:"targetId" json:"targetId"`
	TargetKind string             `bson:"targetKind" json:"targetKind"`
	LikedBy    primitive.ObjectID `bson:"likedBy" json:"likedBy"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// VideoToggleResponse is returned after toggling a video like.
type VideoToggleResponse struct {
	Liked      bool  `json:"liked"`
	TotalLikes int64 `json:"totalLikes"`
}

// CommentToggleResponse is returned after toggling a comment like.
type CommentToggleResponse struct {
	Liked bool `json:"liked"`
}

// StatusResponse reports the like count for a target, plus the viewer's
// own state when a viewer identity was supplied. Liked is omitted
// entirely for anonymous lookups.
type StatusResponse struct {
	TotalLikes int64 `json:"totalLikes"`
	Liked      *bool `json:"liked,omitempty"`
}

// ListQuery carries pagination parameters for liked-video listings.
type ListQuery struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=10"`
}
