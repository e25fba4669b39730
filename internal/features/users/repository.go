package users

import (
	"context"

	apperrors "github.com/hazra-dev/vidtube/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles database interactions for the users feature
type Repository struct {
	collection *mongo.Collection
}

// NewRepository creates repository and ensures indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("users")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})

	return &Repository{
		collection: collection,
	}
}

// FindByID returns a user by id, or ErrNotFound.
func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var user User
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// HasWatched reports whether a video is already in the user's history.
func (r *Repository) HasWatched(ctx context.Context, userID, videoID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"_id":          userID,
		"watchHistory": videoID,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecordVisit moves a video to the front of the user's watch history.
// Remove and prepend happen in one update so two concurrent visits to
// the same video can never leave a duplicate entry at rest.
func (r *Repository) RecordVisit(ctx context.Context, userID, videoID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, recordVisitUpdate(videoID))
	return err
}

// recordVisitUpdate builds the single-stage pipeline update that drops
// any existing entry for the video and puts it at position 0.
func recordVisitUpdate(videoID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"watchHistory": bson.M{
				"$concatArrays": bson.A{
					bson.A{videoID},
					bson.M{"$filter": bson.M{
						"input": bson.M{"$ifNull": bson.A{"$watchHistory", bson.A{}}},
						"as":    "entry",
						"cond":  bson.M{"$ne": bson.A{"$$entry", videoID}},
					}},
				},
			},
		}}},
	}
}

// RemoveVisit drops a video from the user's history. Removing an
// absent entry is a no-op.
func (r *Repository) RemoveVisit(ctx context.Context, userID, videoID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$pull": bson.M{"watchHistory": videoID},
	})
	return err
}

// ClearHistory empties the user's watch history.
func (r *Repository) ClearHistory(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{"watchHistory": bson.A{}},
	})
	return err
}

// WatchHistoryIDs returns the user's full history in stored order,
// most recent first.
func (r *Repository) WatchHistoryIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	opts := options.FindOne().SetProjection(bson.M{"watchHistory": 1})

	var user User
	if err := r.collection.FindOne(ctx, bson.M{"_id": userID}, opts).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return user.WatchHistory, nil
}
