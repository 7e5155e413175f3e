package mongodb

import (
	"context"
	"fmt"

	"github.com/casafinder/listing-service/internal/property/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LookupCache resolves seeded reference codes to stored identifiers and
// back. The mapping is loaded once at startup; the lookup collections are
// immutable at runtime, so no locking or re-reads are needed on the hot
// write path.
type LookupCache struct {
	byCode map[domain.LookupKind]map[string]string
	byID   map[domain.LookupKind]map[string]string
}

var lookupKinds = []domain.LookupKind{
	domain.LookupRelationType,
	domain.LookupPropertyType,
	domain.LookupPropertyFurniture,
	domain.LookupPropertyCondition,
	domain.LookupContactPreference,
}

// NewLookupCache reads every lookup collection into memory. The seeding
// bootstrap must have run before this is called.
func NewLookupCache(ctx context.Context, db *mongo.Database) (*LookupCache, error) {
	cache := &LookupCache{
		byCode: make(map[domain.LookupKind]map[string]string, len(lookupKinds)),
		byID:   make(map[domain.LookupKind]map[string]string, len(lookupKinds)),
	}

	for _, kind := range lookupKinds {
		cursor, err := db.Collection(string(kind)).Find(ctx, bson.M{})
		if err != nil {
			return nil, fmt.Errorf("failed to load lookup collection %s: %w", kind, err)
		}
		var docs []lookupDocument
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, fmt.Errorf("failed to decode lookup collection %s: %w", kind, err)
		}

		cache.byCode[kind] = make(map[string]string, len(docs))
		cache.byID[kind] = make(map[string]string, len(docs))
		for _, doc := range docs {
			cache.byCode[kind][doc.Type] = doc.ID
			cache.byID[kind][doc.ID] = doc.Type
		}
	}

	return cache, nil
}

func (c *LookupCache) Resolve(kind domain.LookupKind, code string) (string, error) {
	if id, ok := c.byCode[kind][code]; ok {
		return id, nil
	}
	return "", fmt.Errorf("%w: %s %q", domain.ErrUnknownReferenceValue, kind, code)
}

func (c *LookupCache) CodeOf(kind domain.LookupKind, id string) (string, error) {
	if code, ok := c.byID[kind][id]; ok {
		return code, nil
	}
	return "", fmt.Errorf("%w: %s id %q", domain.ErrUnknownReferenceValue, kind, id)
}

// SeedLookups upserts the fixed code values into their collections. It is
// idempotent and meant to run from the bootstrap before the service
// accepts writes.
func SeedLookups(ctx context.Context, db *mongo.Database) error {
	for kind, codes := range domain.SeedCodes {
		coll := db.Collection(string(kind))
		for _, code := range codes {
			filter := bson.M{"type": code}
			update := bson.M{"$setOnInsert": bson.M{"_id": uuid.NewString(), "type": code}}
			if _, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
				return fmt.Errorf("failed to seed %s %q: %w", kind, code, err)
			}
		}
	}
	return nil
}
