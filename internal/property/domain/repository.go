package domain

import "context"

// LocationStore persists and queries the 2D point of each property
// location. CreatePoint and UpdatePoint join the ambient transaction when
// the context carries one, so a point commits or rolls back together with
// the rest of the aggregate write.
type LocationStore interface {
	GetPoint(ctx context.Context, locationID string) (GeoPoint, error)
	CreatePoint(ctx context.Context, latitude, longitude float64) (string, error)
	UpdatePoint(ctx context.Context, locationID string, latitude, longitude float64) error
	QueryRegion(ctx context.Context, region Region) (map[string]GeoPoint, error)
}

// PropertyRepository owns the transactional create/update protocol for
// the full listing sub-entity graph.
type PropertyRepository interface {
	Create(ctx context.Context, userID string, payload *PropertyPayload) (string, error)
	Update(ctx context.Context, refs AggregateRefs, payload *PropertyPayload) error
	FindRefs(ctx context.Context, propertyID string) (AggregateRefs, error)
}

// SearchRepository is the read side: one explicit query per read model.
type SearchRepository interface {
	FindPins(ctx context.Context, locationIDs []string, propertyType PropertyType, relationType RelationType) ([]PinRecord, error)
	CountInLocations(ctx context.Context, locationIDs []string, propertyType PropertyType, relationType RelationType) (int64, error)
	FindPreviews(ctx context.Context, locationIDs []string, propertyType PropertyType, relationType RelationType, skip, limit int64) ([]PreviewRecord, error)
	FindByID(ctx context.Context, propertyID string) (*PropertyRecord, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	FindByUser(ctx context.Context, userID string, skip, limit int64) ([]*PropertyRecord, error)
}

// LookupResolver maps seeded reference codes to stored identifiers and
// back. Implementations cache the mapping once at startup; an unknown
// code resolves to ErrUnknownReferenceValue.
type LookupResolver interface {
	Resolve(kind LookupKind, code string) (string, error)
	CodeOf(kind LookupKind, id string) (string, error)
}

// UploadVerifier checks that an uploaded photo reference carries a
// signature issued by the upload provider.
type UploadVerifier interface {
	IsUploadOk(publicID string, version int64, signature string) bool
}
