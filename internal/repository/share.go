package repository

import (
	"context"

	"github.com/alumnet-lab/backend/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const shareCollection = "shares"

type PlatformCount struct {
	Platform entity.SharePlatform `bson:"_id"`
	Count    int64                `bson:"count"`
}

// ShareRepository is an append-only log of share events. It is backed by
// MongoDB instead of the SQL database.
type ShareRepository interface {
	Insert(ctx context.Context, share *entity.Share) error
	CountByPlatform(ctx context.Context, tenantID, postID string) ([]PlatformCount, error)
}

type shareRepository struct {
	collection *mongo.Collection
}

func NewShareRepository(db *mongo.Database) *shareRepository {
	return &shareRepository{collection: db.Collection(shareCollection)}
}

func (r *shareRepository) Insert(ctx context.Context, share *entity.Share) error {
	_, err := r.collection.InsertOne(ctx, share)
	return err
}

func (r *shareRepository) CountByPlatform(ctx context.Context, tenantID, postID string) ([]PlatformCount, error) {
	match := bson.M{"tenant_id": tenantID}
	if postID != "" {
		match["post_id"] = postID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": "$platform", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []PlatformCount
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}

	return result, nil
}
