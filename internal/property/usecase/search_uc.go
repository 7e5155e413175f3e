package usecase

import (
	"context"
	"time"

	"github.com/casafinder/listing-service/internal/platform/logger"
	"github.com/casafinder/listing-service/internal/property/domain"
)

// DefaultPageSize applies when the caller sends no page size.
const DefaultPageSize int64 = 10

// SearchUsecase is the read side of the facade: region search pins,
// paginated previews and full listing details. Every region query starts
// at the spatial store; when no stored point falls inside the drawn
// region, the relational side is never queried.
type SearchUsecase struct {
	locations domain.LocationStore
	search    domain.SearchRepository
	cache     PropertyCache
	logger    *logger.Logger
}

func NewSearchUsecase(locations domain.LocationStore, search domain.SearchRepository, cache PropertyCache, log *logger.Logger) *SearchUsecase {
	return &SearchUsecase{
		locations: locations,
		search:    search,
		cache:     cache,
		logger:    log,
	}
}

// DrawToSearch returns one pin per matching location, each carrying every
// listing anchored at that coordinate.
func (uc *SearchUsecase) DrawToSearch(ctx context.Context, coords []domain.GeoPoint, propertyType domain.PropertyType, relationType domain.RelationType) (*domain.DrawToSearchResponse, error) {
	region, err := domain.RegionFromCoordinates(coords)
	if err != nil {
		return nil, err
	}

	points, err := uc.locations.QueryRegion(ctx, region)
	if err != nil {
		uc.logger.Error("DrawToSearch: region query failed", "error", err.Error())
		return nil, domain.ErrInternal
	}
	if len(points) == 0 {
		return &domain.DrawToSearchResponse{Pins: []domain.PinDto{}}, nil
	}

	locationIDs := make([]string, 0, len(points))
	for id := range points {
		locationIDs = append(locationIDs, id)
	}

	records, err := uc.search.FindPins(ctx, locationIDs, propertyType, relationType)
	if err != nil {
		return nil, err
	}

	// Group listings by location, pins in first-seen order.
	order := make([]string, 0, len(points))
	grouped := make(map[string][]domain.PinPropertyDto, len(points))
	for _, record := range records {
		if _, seen := grouped[record.LocationID]; !seen {
			order = append(order, record.LocationID)
		}
		grouped[record.LocationID] = append(grouped[record.LocationID], domain.PinPropertyDto{
			PropertyID: record.PropertyID,
			Price:      moneyDto(record.Price),
		})
	}

	pins := make([]domain.PinDto, 0, len(order))
	for _, locationID := range order {
		pins = append(pins, domain.PinDto{
			GeoCoordinates: points[locationID],
			Properties:     grouped[locationID],
		})
	}
	return &domain.DrawToSearchResponse{Pins: pins}, nil
}

// PreviewSearch pages through the listings inside the drawn region.
// Requested pages past the end clamp to the last page rather than
// returning an empty result.
func (uc *SearchUsecase) PreviewSearch(ctx context.Context, coords []domain.GeoPoint, propertyType domain.PropertyType, relationType domain.RelationType, page, pageSize int64) (*domain.PreviewResponse, error) {
	page, pageSize = normalizePaging(page, pageSize)

	region, err := domain.RegionFromCoordinates(coords)
	if err != nil {
		return nil, err
	}

	points, err := uc.locations.QueryRegion(ctx, region)
	if err != nil {
		uc.logger.Error("PreviewSearch: region query failed", "error", err.Error())
		return nil, domain.ErrInternal
	}
	if len(points) == 0 {
		return &domain.PreviewResponse{PropertiesPreview: []domain.PropertyPreviewDto{}, Page: 1, LastPage: 1, Total: 0}, nil
	}

	locationIDs := make([]string, 0, len(points))
	for id := range points {
		locationIDs = append(locationIDs, id)
	}

	total, err := uc.search.CountInLocations(ctx, locationIDs, propertyType, relationType)
	if err != nil {
		return nil, err
	}
	page, lastPage := clampPage(page, pageSize, total)

	records, err := uc.search.FindPreviews(ctx, locationIDs, propertyType, relationType, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	previews := make([]domain.PropertyPreviewDto, 0, len(records))
	for _, record := range records {
		point := points[record.LocationID]
		previews = append(previews, domain.PropertyPreviewDto{
			PropertyID: record.PropertyID,
			Property: domain.PreviewDetailsDto{
				PropertyCondition: record.PropertyCondition,
				Address:           addressDto(record.Address, point),
				Surface:           record.Surface,
				RoomNumber:        record.RoomNumber,
				BathroomNumber:    record.BathroomNumber,
			},
			Price:             moneyDto(record.Price),
			ContactPreference: record.ContactPreference,
			Photos:            photoDtos(record.PhotoImageIDs),
		})
	}

	return &domain.PreviewResponse{
		PropertiesPreview: previews,
		Page:              page,
		LastPage:          lastPage,
		Total:             total,
	}, nil
}

// GetPropertyByID returns the full nested detail of one listing, served
// from cache when possible.
func (uc *SearchUsecase) GetPropertyByID(ctx context.Context, propertyID string) (*domain.PropertyDto, error) {
	cached, err := uc.cache.GetProperty(ctx, propertyID)
	if err != nil {
		uc.logger.Error("GetPropertyByID: cache read failed", "property_id", propertyID, "error", err.Error())
	} else if cached != nil {
		return cached, nil
	}

	record, err := uc.search.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	point, err := uc.locations.GetPoint(ctx, record.Refs.LocationID)
	if err != nil {
		return nil, err
	}

	dto := assembleDetail(record, point)
	if err := uc.cache.SetProperty(ctx, dto); err != nil {
		uc.logger.Error("GetPropertyByID: cache write failed", "property_id", propertyID, "error", err.Error())
	}
	return dto, nil
}

// GetUserProperties lists the caller's own listings, newest last, with
// the same clamped pagination as region previews.
func (uc *SearchUsecase) GetUserProperties(ctx context.Context, userID string, page, pageSize int64) (*domain.UserPropertiesResponse, error) {
	page, pageSize = normalizePaging(page, pageSize)

	total, err := uc.search.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	page, lastPage := clampPage(page, pageSize, total)

	records, err := uc.search.FindByUser(ctx, userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	properties := make([]domain.PropertyDto, 0, len(records))
	for _, record := range records {
		point, err := uc.locations.GetPoint(ctx, record.Refs.LocationID)
		if err != nil {
			return nil, err
		}
		properties = append(properties, *assembleDetail(record, point))
	}

	return &domain.UserPropertiesResponse{
		Properties: properties,
		Page:       page,
		LastPage:   lastPage,
		Total:      total,
	}, nil
}

func normalizePaging(page, pageSize int64) (int64, int64) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	return page, pageSize
}

// clampPage computes the last page (never below 1) and pulls the
// requested page back inside the valid range.
func clampPage(page, pageSize, total int64) (int64, int64) {
	lastPage := (total + pageSize - 1) / pageSize
	if lastPage < 1 {
		lastPage = 1
	}
	if page > lastPage {
		page = lastPage
	}
	return page, lastPage
}

func assembleDetail(record *domain.PropertyRecord, point domain.GeoPoint) *domain.PropertyDto {
	return &domain.PropertyDto{
		PropertyID:        record.Refs.PropertyID,
		RelationType:      record.RelationType,
		Price:             moneyDto(record.Price),
		Description:       record.Description,
		ExpensesMonthly:   moneyDto(record.ExpensesMonthly),
		ContactPreference: record.ContactPreference,
		Property: domain.DetailsDto{
			PropertyType:      record.PropertyType,
			PropertyCondition: record.PropertyCondition,
			Address:           addressDto(record.Address, point),
			IsLastFloor:       record.IsLastFloor,
			Surface:           record.Surface,
			RoomNumber:        record.RoomNumber,
			BathroomNumber:    record.BathroomNumber,
			HasElevator:       record.HasElevator,
			HouseFurniture:    record.HouseFurniture,
			Commodities: domain.CommoditiesDto{
				HasAirConditioning: record.Commodities.HasAirConditioning,
				HasBalcony:         record.Commodities.HasBalcony,
				HasCellar:          record.Commodities.HasCellar,
				HasClosetInTheWall: record.Commodities.HasClosetInTheWall,
				HasParking:         record.Commodities.HasParking,
				HasTerrace:         record.Commodities.HasTerrace,
			},
		},
		ContractDetails: domain.ContractDetailsDto{
			MaximumNumberOfTenants: record.MaxTenants,
			PetFriendly:            record.PetFriendly,
			AgencyFee:              moneyDto(record.AgencyFee),
			MinimumLeaseTerm: domain.LeaseTermDto{
				TermUnit: record.MinimumLeaseTerm.Unit,
				Value:    record.MinimumLeaseTerm.Value,
			},
			RentInAdvance: moneyDto(record.RentInAdvance),
		},
		User: domain.OwnerDto{
			UserID:       record.Owner.UserID,
			FirstName:    record.Owner.FirstName,
			LastName:     record.Owner.LastName,
			Picture:      record.Owner.Picture,
			PhoneNumbers: record.Owner.PhoneNumbers,
		},
		Photos:    photoDtos(record.PhotoImageIDs),
		CreatedAt: record.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: record.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func moneyDto(m domain.Money) domain.MoneyDto {
	return domain.MoneyDto{Amount: m.Amount, Currency: m.Currency}
}

func addressDto(a domain.Address, point domain.GeoPoint) domain.AddressDto {
	return domain.AddressDto{
		ResidenceComplex: a.ResidenceComplex,
		Street:           a.Street,
		StreetNumber:     a.StreetNumber,
		City:             a.City,
		PostalCode:       a.PostalCode,
		Country:          a.Country,
		County:           a.County,
		Floor:            a.Floor,
		Latitude:         point.Latitude,
		Longitude:        point.Longitude,
	}
}

func photoDtos(imageIDs []string) []domain.PhotoDto {
	photos := make([]domain.PhotoDto, 0, len(imageIDs))
	for _, id := range imageIDs {
		photos = append(photos, domain.PhotoDto{ImageID: id})
	}
	return photos
}
