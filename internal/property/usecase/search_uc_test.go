package usecase

import (
	"context"
	"testing"

	"github.com/casafinder/listing-service/internal/platform/logger"
	"github.com/casafinder/listing-service/internal/property/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocationStore struct {
	points       map[string]domain.GeoPoint
	regionCalls  int
	pointsByID   map[string]domain.GeoPoint
	getPointErr  error
	queryRegionE error
}

func (f *fakeLocationStore) GetPoint(ctx context.Context, locationID string) (domain.GeoPoint, error) {
	if f.getPointErr != nil {
		return domain.GeoPoint{}, f.getPointErr
	}
	point, ok := f.pointsByID[locationID]
	if !ok {
		return domain.GeoPoint{}, domain.ErrLocationNotFound
	}
	return point, nil
}

func (f *fakeLocationStore) CreatePoint(ctx context.Context, latitude, longitude float64) (string, error) {
	return "loc-new", nil
}

func (f *fakeLocationStore) UpdatePoint(ctx context.Context, locationID string, latitude, longitude float64) error {
	return nil
}

func (f *fakeLocationStore) QueryRegion(ctx context.Context, region domain.Region) (map[string]domain.GeoPoint, error) {
	f.regionCalls++
	if f.queryRegionE != nil {
		return nil, f.queryRegionE
	}
	return f.points, nil
}

type fakeSearchRepo struct {
	pins          []domain.PinRecord
	previews      []domain.PreviewRecord
	total         int64
	record        *domain.PropertyRecord
	userTotal     int64
	userRecords   []*domain.PropertyRecord
	findPinsCalls int
	countCalls    int
	previewCalls  int
	lastSkip      int64
	lastLimit     int64
}

func (f *fakeSearchRepo) FindPins(ctx context.Context, locationIDs []string, propertyType domain.PropertyType, relationType domain.RelationType) ([]domain.PinRecord, error) {
	f.findPinsCalls++
	return f.pins, nil
}

func (f *fakeSearchRepo) CountInLocations(ctx context.Context, locationIDs []string, propertyType domain.PropertyType, relationType domain.RelationType) (int64, error) {
	f.countCalls++
	return f.total, nil
}

func (f *fakeSearchRepo) FindPreviews(ctx context.Context, locationIDs []string, propertyType domain.PropertyType, relationType domain.RelationType, skip, limit int64) ([]domain.PreviewRecord, error) {
	f.previewCalls++
	f.lastSkip = skip
	f.lastLimit = limit
	return f.previews, nil
}

func (f *fakeSearchRepo) FindByID(ctx context.Context, propertyID string) (*domain.PropertyRecord, error) {
	if f.record == nil {
		return nil, domain.ErrPropertyNotFound
	}
	return f.record, nil
}

func (f *fakeSearchRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	return f.userTotal, nil
}

func (f *fakeSearchRepo) FindByUser(ctx context.Context, userID string, skip, limit int64) ([]*domain.PropertyRecord, error) {
	return f.userRecords, nil
}

type fakeCache struct {
	stored  map[string]*domain.PropertyDto
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{stored: make(map[string]*domain.PropertyDto)}
}

func (f *fakeCache) GetProperty(ctx context.Context, propertyID string) (*domain.PropertyDto, error) {
	return f.stored[propertyID], nil
}

func (f *fakeCache) SetProperty(ctx context.Context, dto *domain.PropertyDto) error {
	f.stored[dto.PropertyID] = dto
	return nil
}

func (f *fakeCache) DeleteProperty(ctx context.Context, propertyID string) error {
	f.deleted = append(f.deleted, propertyID)
	delete(f.stored, propertyID)
	return nil
}

var rectangle = []domain.GeoPoint{
	{Latitude: 46, Longitude: 24},
	{Latitude: 46, Longitude: 26},
	{Latitude: 44, Longitude: 26},
	{Latitude: 44, Longitude: 24},
}

func TestDrawToSearch_EmptyRegionSkipsListingQuery(t *testing.T) {
	locations := &fakeLocationStore{points: map[string]domain.GeoPoint{}}
	search := &fakeSearchRepo{}
	uc := NewSearchUsecase(locations, search, newFakeCache(), logger.NewLogger())

	response, err := uc.DrawToSearch(context.Background(), rectangle, domain.PropertyApartment, domain.RelationRent)

	require.NoError(t, err)
	assert.Empty(t, response.Pins)
	assert.Equal(t, 1, locations.regionCalls)
	assert.Zero(t, search.findPinsCalls, "listing store must not be queried when no point matches")
}

func TestDrawToSearch_GroupsListingsByLocation(t *testing.T) {
	locations := &fakeLocationStore{points: map[string]domain.GeoPoint{
		"loc-1": {Latitude: 45, Longitude: 25},
		"loc-2": {Latitude: 45.5, Longitude: 25.5},
	}}
	search := &fakeSearchRepo{pins: []domain.PinRecord{
		{PropertyID: "prop-1", LocationID: "loc-1", Price: domain.Money{Amount: 100, Currency: domain.CurrencyEUR}},
		{PropertyID: "prop-2", LocationID: "loc-1", Price: domain.Money{Amount: 200, Currency: domain.CurrencyEUR}},
		{PropertyID: "prop-3", LocationID: "loc-2", Price: domain.Money{Amount: 300, Currency: domain.CurrencyEUR}},
	}}
	uc := NewSearchUsecase(locations, search, newFakeCache(), logger.NewLogger())

	response, err := uc.DrawToSearch(context.Background(), rectangle, domain.PropertyApartment, domain.RelationRent)

	require.NoError(t, err)
	require.Len(t, response.Pins, 2)
	assert.Equal(t, domain.GeoPoint{Latitude: 45, Longitude: 25}, response.Pins[0].GeoCoordinates)
	require.Len(t, response.Pins[0].Properties, 2)
	assert.Equal(t, "prop-1", response.Pins[0].Properties[0].PropertyID)
	assert.Equal(t, "prop-2", response.Pins[0].Properties[1].PropertyID)
	require.Len(t, response.Pins[1].Properties, 1)
	assert.Equal(t, "prop-3", response.Pins[1].Properties[0].PropertyID)
}

func TestDrawToSearch_InvalidRegion(t *testing.T) {
	uc := NewSearchUsecase(&fakeLocationStore{}, &fakeSearchRepo{}, newFakeCache(), logger.NewLogger())

	_, err := uc.DrawToSearch(context.Background(), rectangle[:2], domain.PropertyApartment, domain.RelationRent)

	assert.ErrorIs(t, err, domain.ErrInvalidRegion)
}

func TestPreviewSearch_EmptyRegion(t *testing.T) {
	locations := &fakeLocationStore{points: map[string]domain.GeoPoint{}}
	search := &fakeSearchRepo{}
	uc := NewSearchUsecase(locations, search, newFakeCache(), logger.NewLogger())

	response, err := uc.PreviewSearch(context.Background(), rectangle, domain.PropertyHouse, domain.RelationSell, 3, 10)

	require.NoError(t, err)
	assert.Empty(t, response.PropertiesPreview)
	assert.EqualValues(t, 1, response.Page)
	assert.EqualValues(t, 1, response.LastPage)
	assert.EqualValues(t, 0, response.Total)
	assert.Zero(t, search.countCalls)
}

func TestPreviewSearch_PaginationArithmetic(t *testing.T) {
	locations := &fakeLocationStore{points: map[string]domain.GeoPoint{
		"loc-1": {Latitude: 45, Longitude: 25},
	}}
	search := &fakeSearchRepo{total: 25}
	uc := NewSearchUsecase(locations, search, newFakeCache(), logger.NewLogger())

	response, err := uc.PreviewSearch(context.Background(), rectangle, domain.PropertyApartment, domain.RelationRent, 2, 10)

	require.NoError(t, err)
	assert.EqualValues(t, 2, response.Page)
	assert.EqualValues(t, 3, response.LastPage)
	assert.EqualValues(t, 25, response.Total)
	assert.EqualValues(t, 10, search.lastSkip)
	assert.EqualValues(t, 10, search.lastLimit)
}

func TestPreviewSearch_PageClampedToLastPage(t *testing.T) {
	locations := &fakeLocationStore{points: map[string]domain.GeoPoint{
		"loc-1": {Latitude: 45, Longitude: 25},
	}}
	search := &fakeSearchRepo{total: 25}
	uc := NewSearchUsecase(locations, search, newFakeCache(), logger.NewLogger())

	response, err := uc.PreviewSearch(context.Background(), rectangle, domain.PropertyApartment, domain.RelationRent, 5, 10)

	require.NoError(t, err)
	assert.EqualValues(t, 3, response.Page, "page past the end clamps to the last page")
	assert.EqualValues(t, 20, search.lastSkip)
}

func TestPreviewSearch_DefaultsApplied(t *testing.T) {
	locations := &fakeLocationStore{points: map[string]domain.GeoPoint{
		"loc-1": {Latitude: 45, Longitude: 25},
	}}
	search := &fakeSearchRepo{total: 4}
	uc := NewSearchUsecase(locations, search, newFakeCache(), logger.NewLogger())

	response, err := uc.PreviewSearch(context.Background(), rectangle, domain.PropertyApartment, domain.RelationRent, 0, 0)

	require.NoError(t, err)
	assert.EqualValues(t, 1, response.Page)
	assert.EqualValues(t, 1, response.LastPage)
	assert.EqualValues(t, DefaultPageSize, search.lastLimit)
}

func TestPreviewSearch_CoordinatesComeFromMatchingLocation(t *testing.T) {
	locations := &fakeLocationStore{points: map[string]domain.GeoPoint{
		"loc-1": {Latitude: 45, Longitude: 25},
		"loc-2": {Latitude: 44.5, Longitude: 24.5},
	}}
	search := &fakeSearchRepo{
		total: 2,
		previews: []domain.PreviewRecord{
			{PropertyID: "prop-1", LocationID: "loc-1", Address: domain.Address{City: "Cluj"}},
			{PropertyID: "prop-2", LocationID: "loc-2", Address: domain.Address{City: "Turda"}},
		},
	}
	uc := NewSearchUsecase(locations, search, newFakeCache(), logger.NewLogger())

	response, err := uc.PreviewSearch(context.Background(), rectangle, domain.PropertyApartment, domain.RelationRent, 1, 10)

	require.NoError(t, err)
	require.Len(t, response.PropertiesPreview, 2)
	assert.Equal(t, 45.0, response.PropertiesPreview[0].Property.Address.Latitude)
	assert.Equal(t, 24.5, response.PropertiesPreview[1].Property.Address.Longitude,
		"each preview must carry its own location's coordinates")
}

func TestGetPropertyByID_CacheHitSkipsRepository(t *testing.T) {
	cached := &domain.PropertyDto{PropertyID: "prop-1"}
	cacheStore := newFakeCache()
	cacheStore.stored["prop-1"] = cached
	uc := NewSearchUsecase(&fakeLocationStore{}, &fakeSearchRepo{}, cacheStore, logger.NewLogger())

	dto, err := uc.GetPropertyByID(context.Background(), "prop-1")

	require.NoError(t, err)
	assert.Same(t, cached, dto)
}

func TestGetPropertyByID_AssemblesDetailAndWarmsCache(t *testing.T) {
	record := &domain.PropertyRecord{
		Refs: domain.AggregateRefs{
			PropertyID: "prop-1",
			UserID:     "user-1",
			LocationID: "loc-1",
		},
		RelationType:  domain.RelationRent,
		Price:         domain.Money{Amount: 500, Currency: domain.CurrencyEUR},
		Address:       domain.Address{City: "Cluj"},
		PhotoImageIDs: []string{"img-1", "img-2"},
	}
	locations := &fakeLocationStore{pointsByID: map[string]domain.GeoPoint{
		"loc-1": {Latitude: 45, Longitude: 25},
	}}
	cacheStore := newFakeCache()
	uc := NewSearchUsecase(locations, &fakeSearchRepo{record: record}, cacheStore, logger.NewLogger())

	dto, err := uc.GetPropertyByID(context.Background(), "prop-1")

	require.NoError(t, err)
	assert.Equal(t, "prop-1", dto.PropertyID)
	assert.Equal(t, 45.0, dto.Property.Address.Latitude)
	assert.Equal(t, 25.0, dto.Property.Address.Longitude)
	require.Len(t, dto.Photos, 2)
	assert.NotNil(t, cacheStore.stored["prop-1"], "detail must be cached after assembly")
}

func TestGetPropertyByID_NotFound(t *testing.T) {
	uc := NewSearchUsecase(&fakeLocationStore{}, &fakeSearchRepo{}, newFakeCache(), logger.NewLogger())

	_, err := uc.GetPropertyByID(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
}
