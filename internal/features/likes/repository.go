package likes

import (
	"context"
	"time"

	"github.com/hazra-dev/vidtube/internal/features/videos"
	apperrors "github.com/hazra-dev/vidtube/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles database interactions for the likes feature
type Repository struct {
	collection *mongo.Collection
}

// NewRepository creates repository and ensures indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("likes")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			// Unique compound index. Concurrent toggle attempts race to
			// insert; the loser gets a duplicate key error.
			Keys: bson.D{
				{Key: "likedBy", Value: 1},
				{Key: "targetId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			// Count and status queries for a target
			Keys: bson.D{
				{Key: "targetId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
		{
			// Liked-videos listing for a user
			Keys: bson.D{
				{Key: "likedBy", Value: 1},
				{Key: "targetKind", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
	})

	return &Repository{
		collection: collection,
	}
}

// Find returns the like a user holds on a target, or ErrNotFound.
func (r *Repository) Find(ctx context.Context, userID, targetID primitive.ObjectID, targetKind string) (*Like, error) {
	filter := bson.M{
		"likedBy":    userID,
		"targetId":   targetID,
		"targetKind": targetKind,
	}

	var like Like
	if err := r.collection.FindOne(ctx, filter).Decode(&like); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return &like, nil
}

// Create inserts a like. A duplicate key error means another request
// already liked the target for this user and surfaces as ErrConflict.
func (r *Repository) Create(ctx context.Context, userID, targetID primitive.ObjectID, targetKind string) error {
	like := &Like{
		ID:         primitive.NewObjectID(),
		TargetID:   targetID,
		TargetKind: targetKind,
		LikedBy:    userID,
		CreatedAt:  time.Now(),
	}

	_, err := r.collection.InsertOne(ctx, like)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrConflict
		}
		return err
	}

	return nil
}

// DeleteByID removes a like by its document id.
func (r *Repository) DeleteByID(ctx context.Context, likeID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": likeID})
	return err
}

// DeleteByTargets removes every like pointing at any of the given
// targets, regardless of kind. Used when a video and its comments are
// deleted together.
func (r *Repository) DeleteByTargets(ctx context.Context, targetIDs []primitive.ObjectID) error {
	if len(targetIDs) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"targetId": bson.M{"$in": targetIDs}})
	return err
}

// Exists checks whether a user's like on a target exists
func (r *Repository) Exists(ctx context.Context, userID, targetID primitive.ObjectID, targetKind string) (bool, error) {
	filter := bson.M{
		"likedBy":    userID,
		"targetId":   targetID,
		"targetKind": targetKind,
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Count aggregates the live like total for a target.
func (r *Repository) Count(ctx context.Context, targetID primitive.ObjectID, targetKind string) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"targetId": targetID, "targetKind": targetKind}}},
		{{Key: "$count", Value: "totalLikes"}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var result []struct {
		TotalLikes int64 `bson:"totalLikes"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, err
	}

	// $count emits no document at all for an unliked target.
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].TotalLikes, nil
}

// CountLikedVideos returns how many videos a user has liked.
func (r *Repository) CountLikedVideos(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"likedBy":    userID,
		"targetKind": KindVideo,
	})
}

// ListLikedVideos joins a user's video likes against the videos
// collection, most recently liked first.
func (r *Repository) ListLikedVideos(ctx context.Context, userID primitive.ObjectID, offset, limit int) ([]videos.VideoWithOwner, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"likedBy":    userID,
			"targetKind": KindVideo,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$skip", Value: offset}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "videos",
			"localField":   "targetId",
			"foreignField": "_id",
			"as":           "video",
		}}},
		{{Key: "$unwind", Value: "$video"}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$video"}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "ownerDetails",
			"pipeline": mongo.Pipeline{
				{{Key: "$project", Value: bson.M{
					"username": 1,
					"fullName": 1,
					"avatar":   1,
				}}},
			},
		}}},
		{{Key: "$addFields", Value: bson.M{
			"owner": bson.M{"$first": "$ownerDetails"},
		}}},
		{{Key: "$project", Value: bson.M{"ownerDetails": 0}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := make([]videos.VideoWithOwner, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}
