package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/casafinder/listing-service/internal/platform/logger"
	"github.com/casafinder/listing-service/internal/property/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// LocationRepository is the spatial store: one GeoJSON point per property
// location, indexed 2dsphere. Write operations join the ambient session
// transaction when the caller's context carries one.
type LocationRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewLocationRepository(db *mongo.Database, log *logger.Logger) *LocationRepository {
	return &LocationRepository{
		collection: db.Collection(collLocations),
		logger:     log,
	}
}

func (r *LocationRepository) GetPoint(ctx context.Context, locationID string) (domain.GeoPoint, error) {
	var doc locationDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": locationID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.GeoPoint{}, domain.ErrLocationNotFound
		}
		return domain.GeoPoint{}, fmt.Errorf("failed to load location %s: %w", locationID, err)
	}
	return pointFromDocument(doc), nil
}

func (r *LocationRepository) CreatePoint(ctx context.Context, latitude, longitude float64) (string, error) {
	doc := locationDocument{
		ID:    uuid.NewString(),
		Point: newGeoJSONPoint(latitude, longitude),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to insert location: %w", err)
	}
	return doc.ID, nil
}

func (r *LocationRepository) UpdatePoint(ctx context.Context, locationID string, latitude, longitude float64) error {
	result, err := r.collection.UpdateByID(ctx, locationID,
		bson.M{"$set": bson.M{"point": newGeoJSONPoint(latitude, longitude)}})
	if err != nil {
		return fmt.Errorf("failed to update location %s: %w", locationID, err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrLocationNotFound
	}
	return nil
}

// QueryRegion returns every stored point contained in the region. The
// region's ring is already closed and, for 4-corner input, already
// normalized to a rectangle, so a single $geoWithin polygon query covers
// both shapes.
func (r *LocationRepository) QueryRegion(ctx context.Context, region domain.Region) (map[string]domain.GeoPoint, error) {
	ring := region.Ring()
	coordinates := make([][]float64, 0, len(ring))
	for _, vertex := range ring {
		coordinates = append(coordinates, []float64{vertex.Longitude, vertex.Latitude})
	}

	filter := bson.M{
		"point": bson.M{
			"$geoWithin": bson.M{
				"$geometry": bson.M{
					"type":        "Polygon",
					"coordinates": []interface{}{coordinates},
				},
			},
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations in region: %w", err)
	}
	var docs []locationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode locations in region: %w", err)
	}

	points := make(map[string]domain.GeoPoint, len(docs))
	for _, doc := range docs {
		points[doc.ID] = pointFromDocument(doc)
	}
	return points, nil
}

func pointFromDocument(doc locationDocument) domain.GeoPoint {
	if len(doc.Point.Coordinates) != 2 {
		return domain.GeoPoint{}
	}
	return domain.GeoPoint{
		Latitude:  doc.Point.Coordinates[1],
		Longitude: doc.Point.Coordinates[0],
	}
}
