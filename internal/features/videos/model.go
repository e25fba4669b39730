package videos

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video is a stored video record. The owner field holds the uploader's
// user id; listings replace it with an Owner summary via $lookup.
type Video struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VideoFile         string             `bson:"videoFile" json:"videoFile"`
	VideoPublicID     string             `bson:"videoPublicId" json:"-"`
	Thumbnail         string             `bson:"thumbnail" json:"thumbnail"`
	ThumbnailPublicID string             `bson:"thumbnailPublicId" json:"-"`
	Title             string             `bson:"title" json:"title"`
	Description       string             `bson:"description" json:"description"`
	Duration          float64            `bson:"duration" json:"duration"`
	Views             int64              `bson:"views" json:"views"`
	IsPublished       bool               `bson:"isPublished" json:"isPublished"`
	Owner             primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Owner is the public projection of the uploading user joined into
// listings.
type Owner struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Username string             `bson:"username" json:"username"`
	FullName string             `bson:"fullName" json:"fullName"`
	Avatar   string             `bson:"avatar" json:"avatar"`
}

// VideoWithOwner is the aggregation result of a video joined with its
// owner summary. Owner is nil when the owner reference does not resolve.
type VideoWithOwner struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	VideoFile   string             `bson:"videoFile" json:"videoFile"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Duration    float64            `bson:"duration" json:"duration"`
	Views       int64              `bson:"views" json:"views"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	Owner       *Owner             `bson:"owner" json:"owner"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// ListQuery for paginated listing endpoints
type ListQuery struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=10"`
}

// OwnerListingResponse for GET /videos/owner/:ownerId
type OwnerListingResponse struct {
	Items            []VideoWithOwner `json:"items"`
	Total            int64            `json:"total"`
	TotalPages       int              `json:"totalPages"`
	Page             int              `json:"page"`
	Limit            int              `json:"limit"`
	TotalPublished   int64            `json:"totalPublished"`
	TotalUnpublished int64            `json:"totalUnpublished"`
}

// PublishToggleResponse after PATCH /videos/:id/publish
type PublishToggleResponse struct {
	IsPublished bool `json:"isPublished"`
}
