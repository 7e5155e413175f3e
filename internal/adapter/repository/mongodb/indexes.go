package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes region search depends on: the
// 2dsphere index on location points and the denormalized search keys on
// the properties root. Index creation is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collLocations).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "point", Value: "2dsphere"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create 2dsphere index: %w", err)
	}

	_, err = db.Collection(collProperties).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "location_id", Value: 1},
			{Key: "property_type_id", Value: 1},
			{Key: "relation_type_id", Value: 1},
		}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{
			{Key: "created_at", Value: 1},
			{Key: "_id", Value: 1},
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to create property indexes: %w", err)
	}

	_, err = db.Collection(collPhotos).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "property_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create photo index: %w", err)
	}

	return nil
}
