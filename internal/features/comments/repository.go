package comments

import (
	"context"
	"time"

	apperrors "github.com/hazra-dev/vidtube/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles database interactions for the comments feature
type Repository struct {
	collection *mongo.Collection
}

// NewRepository creates repository and ensures indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("comments")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			// Comment listing for a video, newest first
			Keys: bson.D{
				{Key: "video", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
	})

	return &Repository{
		collection: collection,
	}
}

// Insert stores a new comment and fills in its generated fields.
func (r *Repository) Insert(ctx context.Context, comment *Comment) error {
	comment.ID = primitive.NewObjectID()
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// FindByID returns a comment by id, or ErrNotFound.
func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (*Comment, error) {
	var comment Comment
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// CountByVideo returns the number of comments on a video.
func (r *Repository) CountByVideo(ctx context.Context, videoID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"video": videoID})
}

// ListByVideo returns a page of a video's comments with author
// summaries, newest first.
func (r *Repository) ListByVideo(ctx context.Context, videoID primitive.ObjectID, offset, limit int) ([]CommentWithOwner, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"video": videoID}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$skip", Value: offset}},
		{{Key: "$limit", Value: limit}},
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

	results := make([]CommentWithOwner, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}

// Delete removes a comment. Missing documents map to ErrNotFound.
func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteByVideo removes all comments attached to a video.
func (r *Repository) DeleteByVideo(ctx context.Context, videoID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"video": videoID})
	return err
}

// IDsByVideo returns the ids of all comments on a video. Used when a
// video is deleted so likes on its comments can be removed too.
func (r *Repository) IDsByVideo(ctx context.Context, videoID primitive.ObjectID) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"video": videoID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}
