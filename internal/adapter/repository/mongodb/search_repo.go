package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/casafinder/listing-service/internal/platform/logger"
	"github.com/casafinder/listing-service/internal/property/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SearchRepository is the read side of the listing store. Region search
// filters run against the denormalized keys on the properties collection
// (location_id, property_type_id, relation_type_id), so pins and previews
// are a single indexed find plus batch child loads.
type SearchRepository struct {
	db      *mongo.Database
	lookups domain.LookupResolver
	logger  *logger.Logger
}

func NewSearchRepository(db *mongo.Database, lookups domain.LookupResolver, log *logger.Logger) *SearchRepository {
	return &SearchRepository{db: db, lookups: lookups, logger: log}
}

func (r *SearchRepository) FindPins(ctx context.Context, locationIDs []string, propertyType domain.PropertyType, relationType domain.RelationType) ([]domain.PinRecord, error) {
	filter, err := r.regionFilter(locationIDs, propertyType, relationType)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1, "price_id": 1, "location_id": 1})
	cursor, err := r.db.Collection(collProperties).Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("SearchRepository.FindPins: query failed", "error", err.Error())
		return nil, domain.ErrInternal
	}
	var roots []propertyDocument
	if err := cursor.All(ctx, &roots); err != nil {
		r.logger.Error("SearchRepository.FindPins: decode failed", "error", err.Error())
		return nil, domain.ErrInternal
	}

	priceIDs := make([]string, 0, len(roots))
	for _, root := range roots {
		priceIDs = append(priceIDs, root.PriceID)
	}
	prices, err := r.loadMoneyMap(ctx, collPrices, priceIDs)
	if err != nil {
		r.logger.Error("SearchRepository.FindPins: price load failed", "error", err.Error())
		return nil, domain.ErrInternal
	}

	pins := make([]domain.PinRecord, 0, len(roots))
	for _, root := range roots {
		pins = append(pins, domain.PinRecord{
			PropertyID: root.ID,
			LocationID: root.LocationID,
			Price:      prices[root.PriceID],
		})
	}
	return pins, nil
}

func (r *SearchRepository) CountInLocations(ctx context.Context, locationIDs []string, propertyType domain.PropertyType, relationType domain.RelationType) (int64, error) {
	filter, err := r.regionFilter(locationIDs, propertyType, relationType)
	if err != nil {
		return 0, err
	}
	total, err := r.db.Collection(collProperties).CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("SearchRepository.CountInLocations: count failed", "error", err.Error())
		return 0, domain.ErrInternal
	}
	return total, nil
}

// FindPreviews pages through the matching roots in stable creation order
// and batch-loads the child rows each preview needs.
func (r *SearchRepository) FindPreviews(ctx context.Context, locationIDs []string, propertyType domain.PropertyType, relationType domain.RelationType, skip, limit int64) ([]domain.PreviewRecord, error) {
	filter, err := r.regionFilter(locationIDs, propertyType, relationType)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.db.Collection(collProperties).Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("SearchRepository.FindPreviews: query failed", "error", err.Error())
		return nil, domain.ErrInternal
	}
	var roots []propertyDocument
	if err := cursor.All(ctx, &roots); err != nil {
		r.logger.Error("SearchRepository.FindPreviews: decode failed", "error", err.Error())
		return nil, domain.ErrInternal
	}
	if len(roots) == 0 {
		return []domain.PreviewRecord{}, nil
	}

	priceIDs := make([]string, 0, len(roots))
	detailsIDs := make([]string, 0, len(roots))
	propertyIDs := make([]string, 0, len(roots))
	for _, root := range roots {
		priceIDs = append(priceIDs, root.PriceID)
		detailsIDs = append(detailsIDs, root.DetailsID)
		propertyIDs = append(propertyIDs, root.ID)
	}

	prices, err := r.loadMoneyMap(ctx, collPrices, priceIDs)
	if err != nil {
		r.logger.Error("SearchRepository.FindPreviews: price load failed", "error", err.Error())
		return nil, domain.ErrInternal
	}
	details, err := r.loadDetailsMap(ctx, detailsIDs)
	if err != nil {
		r.logger.Error("SearchRepository.FindPreviews: details load failed", "error", err.Error())
		return nil, domain.ErrInternal
	}
	addressIDs := make([]string, 0, len(details))
	for _, det := range details {
		addressIDs = append(addressIDs, det.AddressID)
	}
	addresses, err := r.loadAddressMap(ctx, addressIDs)
	if err != nil {
		r.logger.Error("SearchRepository.FindPreviews: address load failed", "error", err.Error())
		return nil, domain.ErrInternal
	}
	photos, err := r.loadPhotoMap(ctx, propertyIDs)
	if err != nil {
		r.logger.Error("SearchRepository.FindPreviews: photo load failed", "error", err.Error())
		return nil, domain.ErrInternal
	}

	previews := make([]domain.PreviewRecord, 0, len(roots))
	for _, root := range roots {
		det := details[root.DetailsID]
		condition, err := r.lookups.CodeOf(domain.LookupPropertyCondition, det.ConditionID)
		if err != nil {
			return nil, err
		}
		contactPreference, err := r.lookups.CodeOf(domain.LookupContactPreference, root.ContactPreferenceID)
		if err != nil {
			return nil, err
		}
		address := addresses[det.AddressID]
		previews = append(previews, domain.PreviewRecord{
			PropertyID:        root.ID,
			LocationID:        root.LocationID,
			Price:             prices[root.PriceID],
			ContactPreference: domain.ContactPreference(contactPreference),
			PropertyCondition: domain.PropertyCondition(condition),
			Address:           address.toDomain(),
			Surface:           det.Surface,
			RoomNumber:        det.RoomNumber,
			BathroomNumber:    det.BathroomNumber,
			PhotoImageIDs:     photos[root.ID],
		})
	}
	return previews, nil
}

func (r *SearchRepository) FindByID(ctx context.Context, propertyID string) (*domain.PropertyRecord, error) {
	var root propertyDocument
	err := r.db.Collection(collProperties).FindOne(ctx, bson.M{"_id": propertyID}).Decode(&root)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		r.logger.Error("SearchRepository.FindByID: failed to load property", "property_id", propertyID, "error", err.Error())
		return nil, domain.ErrInternal
	}
	record, err := r.buildRecord(ctx, root)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownReferenceValue) {
			return nil, err
		}
		r.logger.Error("SearchRepository.FindByID: failed to assemble record", "property_id", propertyID, "error", err.Error())
		return nil, domain.ErrInternal
	}
	return record, nil
}

func (r *SearchRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	total, err := r.db.Collection(collProperties).CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		r.logger.Error("SearchRepository.CountByUser: count failed", "user_id", userID, "error", err.Error())
		return 0, domain.ErrInternal
	}
	return total, nil
}

func (r *SearchRepository) FindByUser(ctx context.Context, userID string, skip, limit int64) ([]*domain.PropertyRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.db.Collection(collProperties).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		r.logger.Error("SearchRepository.FindByUser: query failed", "user_id", userID, "error", err.Error())
		return nil, domain.ErrInternal
	}
	var roots []propertyDocument
	if err := cursor.All(ctx, &roots); err != nil {
		r.logger.Error("SearchRepository.FindByUser: decode failed", "user_id", userID, "error", err.Error())
		return nil, domain.ErrInternal
	}

	records := make([]*domain.PropertyRecord, 0, len(roots))
	for _, root := range roots {
		record, err := r.buildRecord(ctx, root)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownReferenceValue) {
				return nil, err
			}
			r.logger.Error("SearchRepository.FindByUser: failed to assemble record", "property_id", root.ID, "error", err.Error())
			return nil, domain.ErrInternal
		}
		records = append(records, record)
	}
	return records, nil
}

// buildRecord joins every child row of one root into the full read model.
func (r *SearchRepository) buildRecord(ctx context.Context, root propertyDocument) (*domain.PropertyRecord, error) {
	price, err := r.loadMoney(ctx, collPrices, root.PriceID)
	if err != nil {
		return nil, err
	}
	monthlyExpense, err := r.loadMoney(ctx, collMonthlyExpenses, root.MonthlyExpenseID)
	if err != nil {
		return nil, err
	}

	var details detailsDocument
	if err := r.db.Collection(collDetails).FindOne(ctx, bson.M{"_id": root.DetailsID}).Decode(&details); err != nil {
		return nil, fmt.Errorf("failed to load details %s: %w", root.DetailsID, err)
	}
	var commodities commoditiesDocument
	if err := r.db.Collection(collCommodities).FindOne(ctx, bson.M{"_id": details.CommoditiesID}).Decode(&commodities); err != nil {
		return nil, fmt.Errorf("failed to load commodities %s: %w", details.CommoditiesID, err)
	}
	var address addressDocument
	if err := r.db.Collection(collAddresses).FindOne(ctx, bson.M{"_id": details.AddressID}).Decode(&address); err != nil {
		return nil, fmt.Errorf("failed to load address %s: %w", details.AddressID, err)
	}

	var contract contractDetailsDocument
	if err := r.db.Collection(collContractDetails).FindOne(ctx, bson.M{"_id": root.ContractDetailsID}).Decode(&contract); err != nil {
		return nil, fmt.Errorf("failed to load contract details %s: %w", root.ContractDetailsID, err)
	}
	agencyFee, err := r.loadMoney(ctx, collAgencyFees, contract.AgencyFeeID)
	if err != nil {
		return nil, err
	}
	rentInAdvance, err := r.loadMoney(ctx, collRentInAdvances, contract.RentInAdvanceID)
	if err != nil {
		return nil, err
	}
	var leaseTerm leaseTermDocument
	if err := r.db.Collection(collLeaseTerms).FindOne(ctx, bson.M{"_id": contract.MinimumLeaseTermID}).Decode(&leaseTerm); err != nil {
		return nil, fmt.Errorf("failed to load minimum lease term %s: %w", contract.MinimumLeaseTermID, err)
	}

	photos, err := r.loadPhotoMap(ctx, []string{root.ID})
	if err != nil {
		return nil, err
	}

	var owner userDocument
	err = r.db.Collection(collUsers).FindOne(ctx, bson.M{"_id": root.UserID}).Decode(&owner)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to load owner %s: %w", root.UserID, err)
	}

	relationType, err := r.lookups.CodeOf(domain.LookupRelationType, root.RelationTypeID)
	if err != nil {
		return nil, err
	}
	contactPreference, err := r.lookups.CodeOf(domain.LookupContactPreference, root.ContactPreferenceID)
	if err != nil {
		return nil, err
	}
	propertyType, err := r.lookups.CodeOf(domain.LookupPropertyType, details.TypeID)
	if err != nil {
		return nil, err
	}
	condition, err := r.lookups.CodeOf(domain.LookupPropertyCondition, details.ConditionID)
	if err != nil {
		return nil, err
	}
	furniture, err := r.lookups.CodeOf(domain.LookupPropertyFurniture, details.FurnitureID)
	if err != nil {
		return nil, err
	}

	return &domain.PropertyRecord{
		Refs: domain.AggregateRefs{
			PropertyID:         root.ID,
			UserID:             root.UserID,
			PriceID:            root.PriceID,
			MonthlyExpenseID:   root.MonthlyExpenseID,
			DetailsID:          root.DetailsID,
			AddressID:          details.AddressID,
			LocationID:         root.LocationID,
			CommoditiesID:      details.CommoditiesID,
			ContractDetailsID:  root.ContractDetailsID,
			AgencyFeeID:        contract.AgencyFeeID,
			MinimumLeaseTermID: contract.MinimumLeaseTermID,
			RentInAdvanceID:    contract.RentInAdvanceID,
		},
		Description:       root.Description,
		Price:             price,
		ExpensesMonthly:   monthlyExpense,
		RelationType:      domain.RelationType(relationType),
		ContactPreference: domain.ContactPreference(contactPreference),
		PropertyType:      domain.PropertyType(propertyType),
		PropertyCondition: domain.PropertyCondition(condition),
		HouseFurniture:    domain.PropertyFurniture(furniture),
		Address:           address.toDomain(),
		Commodities:       commodities.toDomain(),
		BathroomNumber:    details.BathroomNumber,
		RoomNumber:        details.RoomNumber,
		Surface:           details.Surface,
		IsLastFloor:       details.IsLastFloor,
		HasElevator:       details.HasElevator,
		AgencyFee:         agencyFee,
		MinimumLeaseTerm:  domain.LeaseTerm{Unit: domain.LeaseTermUnit(leaseTerm.TermType), Value: leaseTerm.Value},
		MaxTenants:        contract.MaxTenants,
		PetFriendly:       contract.PetFriendly,
		RentInAdvance:     rentInAdvance,
		PhotoImageIDs:     photos[root.ID],
		Owner:             owner.toOwner(),
		CreatedAt:         root.CreatedAt,
		UpdatedAt:         root.UpdatedAt,
	}, nil
}

func (r *SearchRepository) regionFilter(locationIDs []string, propertyType domain.PropertyType, relationType domain.RelationType) (bson.M, error) {
	propertyTypeID, err := r.lookups.Resolve(domain.LookupPropertyType, string(propertyType))
	if err != nil {
		return nil, err
	}
	relationTypeID, err := r.lookups.Resolve(domain.LookupRelationType, string(relationType))
	if err != nil {
		return nil, err
	}
	return bson.M{
		"location_id":      bson.M{"$in": locationIDs},
		"property_type_id": propertyTypeID,
		"relation_type_id": relationTypeID,
	}, nil
}

func (r *SearchRepository) loadMoney(ctx context.Context, collection, id string) (domain.Money, error) {
	var doc moneyDocument
	if err := r.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return domain.Money{}, fmt.Errorf("failed to load %s %s: %w", collection, id, err)
	}
	return doc.toDomain(), nil
}

func (r *SearchRepository) loadMoneyMap(ctx context.Context, collection string, ids []string) (map[string]domain.Money, error) {
	result := make(map[string]domain.Money, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	cursor, err := r.db.Collection(collection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s batch: %w", collection, err)
	}
	var docs []moneyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s batch: %w", collection, err)
	}
	for i := range docs {
		result[docs[i].ID] = docs[i].toDomain()
	}
	return result, nil
}

func (r *SearchRepository) loadDetailsMap(ctx context.Context, ids []string) (map[string]detailsDocument, error) {
	cursor, err := r.db.Collection(collDetails).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to load details batch: %w", err)
	}
	var docs []detailsDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode details batch: %w", err)
	}
	result := make(map[string]detailsDocument, len(docs))
	for _, doc := range docs {
		result[doc.ID] = doc
	}
	return result, nil
}

func (r *SearchRepository) loadAddressMap(ctx context.Context, ids []string) (map[string]addressDocument, error) {
	cursor, err := r.db.Collection(collAddresses).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to load address batch: %w", err)
	}
	var docs []addressDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode address batch: %w", err)
	}
	result := make(map[string]addressDocument, len(docs))
	for _, doc := range docs {
		result[doc.ID] = doc
	}
	return result, nil
}

// loadPhotoMap groups photo image ids by property, preserving insertion
// order within each listing.
func (r *SearchRepository) loadPhotoMap(ctx context.Context, propertyIDs []string) (map[string][]string, error) {
	cursor, err := r.db.Collection(collPhotos).Find(ctx, bson.M{"property_id": bson.M{"$in": propertyIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to load photos batch: %w", err)
	}
	var docs []photoDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode photos batch: %w", err)
	}
	result := make(map[string][]string, len(propertyIDs))
	for _, doc := range docs {
		result[doc.PropertyID] = append(result[doc.PropertyID], doc.UploadImageID)
	}
	return result, nil
}
