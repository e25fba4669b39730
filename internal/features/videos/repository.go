package videos

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/hazra-dev/vidtube/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles database interactions for the videos feature
type Repository struct {
	collection *mongo.Collection
}

// NewRepository creates repository and ensures indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("videos")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			// Owner-scoped listings, newest first
			Keys: bson.D{
				{Key: "owner", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
		{
			// Global published feed
			Keys: bson.D{
				{Key: "isPublished", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
	})

	return &Repository{collection: collection}
}

// publishedByOwner matches only the published videos of an owner.
func publishedByOwner(ownerID primitive.ObjectID) bson.M {
	return bson.M{"owner": ownerID, "isPublished": true}
}

// anyByOwner matches all videos of an owner, drafts included.
func anyByOwner(ownerID primitive.ObjectID) bson.M {
	return bson.M{"owner": ownerID}
}

// ownerLookupStages joins the owner summary and collapses the lookup
// array to its first element, leaving owner absent when unresolved.
func ownerLookupStages() []bson.M {
	return []bson.M{
		{
			"$lookup": bson.M{
				"from":         "users",
				"localField":   "owner",
				"foreignField": "_id",
				"as":           "owner",
				"pipeline": bson.A{
					bson.M{
						"$project": bson.M{
							"username": 1,
							"fullName": 1,
							"avatar":   1,
						},
					},
				},
			},
		},
		{
			"$addFields": bson.M{
				"owner": bson.M{"$first": "$owner"},
			},
		},
	}
}

// Insert stores a new video record
func (r *Repository) Insert(ctx context.Context, video *Video) error {
	video.ID = primitive.NewObjectID()
	video.CreatedAt = time.Now()
	video.UpdatedAt = video.CreatedAt

	_, err := r.collection.InsertOne(ctx, video)
	return err
}

// FindByID retrieves a single video record without the owner join
func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (*Video, error) {
	var video Video
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&video)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

// FindWithOwner retrieves a video joined with its owner summary
func (r *Repository) FindWithOwner(ctx context.Context, id primitive.ObjectID) (*VideoWithOwner, error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{"_id": id}},
	}
	for _, stage := range ownerLookupStages() {
		pipeline = append(pipeline, stage)
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []VideoWithOwner
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &results[0], nil
}

// FindWithOwnerByIDs retrieves the videos matching ids, owner-joined.
// Result order is whatever the aggregation yields; callers needing a
// specific order must rearrange.
func (r *Repository) FindWithOwnerByIDs(ctx context.Context, ids []primitive.ObjectID) ([]VideoWithOwner, error) {
	if len(ids) == 0 {
		return []VideoWithOwner{}, nil
	}

	pipeline := bson.A{
		bson.M{"$match": bson.M{"_id": bson.M{"$in": ids}}},
	}
	for _, stage := range ownerLookupStages() {
		pipeline = append(pipeline, stage)
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []VideoWithOwner
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// CountPublished counts the globally visible videos
func (r *Repository) CountPublished(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"isPublished": true})
}

// ListPublished returns a page of published videos joined with owner
// summaries, newest first.
func (r *Repository) ListPublished(ctx context.Context, offset, limit int) ([]VideoWithOwner, error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{"isPublished": true}},
		bson.M{"$sort": bson.M{"createdAt": -1}},
		bson.M{"$skip": int64(offset)},
		bson.M{"$limit": int64(limit)},
	}
	for _, stage := range ownerLookupStages() {
		pipeline = append(pipeline, stage)
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []VideoWithOwner{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ListByOwner returns a page of an owner's videos. includeDrafts selects
// between the two visibility variants; it must be computed once by the
// caller from the viewer identity.
func (r *Repository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID, includeDrafts bool, offset, limit int) ([]VideoWithOwner, error) {
	filter := publishedByOwner(ownerID)
	if includeDrafts {
		filter = anyByOwner(ownerID)
	}

	pipeline := bson.A{
		bson.M{"$match": filter},
		bson.M{"$sort": bson.M{"createdAt": -1}},
		bson.M{"$skip": int64(offset)},
		bson.M{"$limit": int64(limit)},
	}
	for _, stage := range ownerLookupStages() {
		pipeline = append(pipeline, stage)
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []VideoWithOwner{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// CountByOwner counts an owner's published and unpublished videos
func (r *Repository) CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (published, unpublished int64, err error) {
	published, err = r.collection.CountDocuments(ctx, publishedByOwner(ownerID))
	if err != nil {
		return 0, 0, err
	}
	unpublished, err = r.collection.CountDocuments(ctx, bson.M{"owner": ownerID, "isPublished": false})
	if err != nil {
		return 0, 0, err
	}
	return published, unpublished, nil
}

// UpdateDetails sets title, description and optionally the thumbnail
// reference, returning the updated record.
func (r *Repository) UpdateDetails(ctx context.Context, id primitive.ObjectID, title, description, thumbnail, thumbnailPublicID string) (*Video, error) {
	set := bson.M{
		"title":       title,
		"description": description,
		"updatedAt":   time.Now(),
	}
	if thumbnail != "" {
		set["thumbnail"] = thumbnail
		set["thumbnailPublicId"] = thumbnailPublicID
	}

	var updated Video
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// SetPublished persists a new publish state
func (r *Repository) SetPublished(ctx context.Context, id primitive.ObjectID, published bool) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isPublished": published, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// IncrementViews bumps the view counter by one
func (r *Repository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"views": 1}},
	)
	return err
}

// Delete removes the video record. Media release must only happen after
// this returns nil.
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
