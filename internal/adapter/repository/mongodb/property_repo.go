package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/casafinder/listing-service/internal/platform/logger"
	"github.com/casafinder/listing-service/internal/property/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PropertyRepository owns the all-or-nothing write protocol for the
// listing aggregate. Every create/update runs inside one session
// transaction; the spatial point is written through the location store
// with the session context so it commits or rolls back with the rest of
// the graph.
type PropertyRepository struct {
	client    *mongo.Client
	db        *mongo.Database
	locations domain.LocationStore
	lookups   domain.LookupResolver
	logger    *logger.Logger
}

func NewPropertyRepository(client *mongo.Client, db *mongo.Database, locations domain.LocationStore, lookups domain.LookupResolver, log *logger.Logger) *PropertyRepository {
	return &PropertyRepository{
		client:    client,
		db:        db,
		locations: locations,
		lookups:   lookups,
		logger:    log,
	}
}

func (r *PropertyRepository) Create(ctx context.Context, userID string, payload *domain.PropertyPayload) (string, error) {
	session, err := r.client.StartSession()
	if err != nil {
		r.logger.Error("PropertyRepository.Create: failed to start session", "error", err.Error())
		return "", domain.ErrInternal
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return r.createGraph(sc, userID, payload)
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnknownReferenceValue) {
			return "", err
		}
		r.logger.Error("PropertyRepository.Create: transaction failed", "user_id", userID, "error", err.Error())
		return "", domain.ErrInternal
	}

	return result.(string), nil
}

func (r *PropertyRepository) Update(ctx context.Context, refs domain.AggregateRefs, payload *domain.PropertyPayload) error {
	session, err := r.client.StartSession()
	if err != nil {
		r.logger.Error("PropertyRepository.Update: failed to start session", "property_id", refs.PropertyID, "error", err.Error())
		return domain.ErrInternal
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, r.updateGraph(sc, refs, payload)
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnknownReferenceValue) || errors.Is(err, domain.ErrLocationNotFound) {
			return err
		}
		r.logger.Error("PropertyRepository.Update: transaction failed", "property_id", refs.PropertyID, "error", err.Error())
		return domain.ErrInternal
	}
	return nil
}

// createGraph inserts the sub-entity graph in dependency order: children
// first, then the root that references them.
func (r *PropertyRepository) createGraph(sc mongo.SessionContext, userID string, payload *domain.PropertyPayload) (string, error) {
	refs, err := r.resolveLookupRefs(payload)
	if err != nil {
		return "", err
	}

	monthlyExpenseID, err := r.insertMoney(sc, collMonthlyExpenses, payload.ExpensesMonthly)
	if err != nil {
		return "", err
	}
	priceID, err := r.insertMoney(sc, collPrices, payload.Price)
	if err != nil {
		return "", err
	}

	commodities := payload.Property.Commodities
	commoditiesID := uuid.NewString()
	_, err = r.db.Collection(collCommodities).InsertOne(sc, commoditiesDocument{
		ID:                 commoditiesID,
		HasAirConditioning: commodities.HasAirConditioning,
		HasBalcony:         commodities.HasBalcony,
		HasCellar:          commodities.HasCellar,
		HasClosetInTheWall: commodities.HasClosetInTheWall,
		HasParking:         commodities.HasParking,
		HasTerrace:         commodities.HasTerrace,
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert commodities: %w", err)
	}

	locationID, err := r.locations.CreatePoint(sc, payload.Property.Latitude, payload.Property.Longitude)
	if err != nil {
		return "", err
	}

	address := payload.Property.Address
	addressID := uuid.NewString()
	_, err = r.db.Collection(collAddresses).InsertOne(sc, addressDocument{
		ID:               addressID,
		ResidenceComplex: address.ResidenceComplex,
		Street:           address.Street,
		StreetNumber:     address.StreetNumber,
		City:             address.City,
		PostalCode:       address.PostalCode,
		Country:          address.Country,
		County:           address.County,
		Floor:            address.Floor,
		LocationID:       locationID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert address: %w", err)
	}

	detailsID := uuid.NewString()
	_, err = r.db.Collection(collDetails).InsertOne(sc, detailsDocument{
		ID:             detailsID,
		BathroomNumber: payload.Property.BathroomNumber,
		RoomNumber:     payload.Property.RoomNumber,
		IsLastFloor:    payload.Property.IsLastFloor,
		HasElevator:    payload.Property.HasElevator,
		Surface:        payload.Property.Surface,
		ConditionID:    refs.conditionID,
		CommoditiesID:  commoditiesID,
		TypeID:         refs.propertyTypeID,
		FurnitureID:    refs.furnitureID,
		AddressID:      addressID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert property details: %w", err)
	}

	agencyFeeID, err := r.insertMoney(sc, collAgencyFees, payload.Property.AgencyFee)
	if err != nil {
		return "", err
	}
	leaseTermID := uuid.NewString()
	_, err = r.db.Collection(collLeaseTerms).InsertOne(sc, leaseTermDocument{
		ID:       leaseTermID,
		TermType: string(payload.Property.MinimumLeaseTerm.Unit),
		Value:    payload.Property.MinimumLeaseTerm.Value,
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert minimum lease term: %w", err)
	}
	rentInAdvanceID, err := r.insertMoney(sc, collRentInAdvances, payload.Property.RentInAdvance)
	if err != nil {
		return "", err
	}

	contractDetailsID := uuid.NewString()
	_, err = r.db.Collection(collContractDetails).InsertOne(sc, contractDetailsDocument{
		ID:                 contractDetailsID,
		MaxTenants:         payload.Property.MaximumNumberOfTenants,
		PetFriendly:        payload.Property.PetFriendly,
		AgencyFeeID:        agencyFeeID,
		MinimumLeaseTermID: leaseTermID,
		RentInAdvanceID:    rentInAdvanceID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert contract details: %w", err)
	}

	now := time.Now().UTC()
	propertyID := uuid.NewString()
	_, err = r.db.Collection(collProperties).InsertOne(sc, propertyDocument{
		ID:                  propertyID,
		UserID:              userID,
		Description:         payload.Description,
		PriceID:             priceID,
		MonthlyExpenseID:    monthlyExpenseID,
		ContactPreferenceID: refs.contactPreferenceID,
		RelationTypeID:      refs.relationTypeID,
		DetailsID:           detailsID,
		ContractDetailsID:   contractDetailsID,
		LocationID:          locationID,
		PropertyTypeID:      refs.propertyTypeID,
		CreatedAt:           now,
		UpdatedAt:           now,
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert property: %w", err)
	}

	if len(payload.Photos) > 0 {
		photos := make([]interface{}, 0, len(payload.Photos))
		for _, photo := range payload.Photos {
			photos = append(photos, photoDocument{
				ID:            uuid.NewString(),
				PropertyID:    propertyID,
				UploadImageID: photo.ImageID,
			})
		}
		if _, err := r.db.Collection(collPhotos).InsertMany(sc, photos); err != nil {
			return "", fmt.Errorf("failed to insert photos: %w", err)
		}
	}

	return propertyID, nil
}

// updateGraph mutates every child entity by its stored identifier, never
// re-creating rows, so foreign keys stay stable. Photos are not touched
// by update.
func (r *PropertyRepository) updateGraph(sc mongo.SessionContext, refs domain.AggregateRefs, payload *domain.PropertyPayload) error {
	lookupRefs, err := r.resolveLookupRefs(payload)
	if err != nil {
		return err
	}

	if err := r.updateMoney(sc, collMonthlyExpenses, refs.MonthlyExpenseID, payload.ExpensesMonthly); err != nil {
		return err
	}
	if err := r.updateMoney(sc, collPrices, refs.PriceID, payload.Price); err != nil {
		return err
	}

	commodities := payload.Property.Commodities
	if err := r.updateByID(sc, collCommodities, refs.CommoditiesID, bson.M{
		"has_air_conditioning":   commodities.HasAirConditioning,
		"has_balcony":            commodities.HasBalcony,
		"has_cellar":             commodities.HasCellar,
		"has_closet_in_the_wall": commodities.HasClosetInTheWall,
		"has_parking":            commodities.HasParking,
		"has_terrace":            commodities.HasTerrace,
	}); err != nil {
		return err
	}

	if err := r.locations.UpdatePoint(sc, refs.LocationID, payload.Property.Latitude, payload.Property.Longitude); err != nil {
		return err
	}

	address := payload.Property.Address
	if err := r.updateByID(sc, collAddresses, refs.AddressID, bson.M{
		"residence_complex": address.ResidenceComplex,
		"street":            address.Street,
		"street_number":     address.StreetNumber,
		"city":              address.City,
		"postal_code":       address.PostalCode,
		"country":           address.Country,
		"county":            address.County,
		"floor":             address.Floor,
	}); err != nil {
		return err
	}

	if err := r.updateByID(sc, collDetails, refs.DetailsID, bson.M{
		"bathroom_number":       payload.Property.BathroomNumber,
		"room_number":           payload.Property.RoomNumber,
		"is_last_floor":         payload.Property.IsLastFloor,
		"has_elevator":          payload.Property.HasElevator,
		"surface":               payload.Property.Surface,
		"property_condition_id": lookupRefs.conditionID,
		"property_type_id":      lookupRefs.propertyTypeID,
		"property_furniture_id": lookupRefs.furnitureID,
	}); err != nil {
		return err
	}

	if err := r.updateMoney(sc, collAgencyFees, refs.AgencyFeeID, payload.Property.AgencyFee); err != nil {
		return err
	}
	if err := r.updateByID(sc, collLeaseTerms, refs.MinimumLeaseTermID, bson.M{
		"term_type": string(payload.Property.MinimumLeaseTerm.Unit),
		"value":     payload.Property.MinimumLeaseTerm.Value,
	}); err != nil {
		return err
	}
	if err := r.updateMoney(sc, collRentInAdvances, refs.RentInAdvanceID, payload.Property.RentInAdvance); err != nil {
		return err
	}

	if err := r.updateByID(sc, collContractDetails, refs.ContractDetailsID, bson.M{
		"maximum_number_of_tenants": payload.Property.MaximumNumberOfTenants,
		"pet_friendly":              payload.Property.PetFriendly,
	}); err != nil {
		return err
	}

	if err := r.updateByID(sc, collProperties, refs.PropertyID, bson.M{
		"description":           payload.Description,
		"contact_preference_id": lookupRefs.contactPreferenceID,
		"relation_type_id":      lookupRefs.relationTypeID,
		"property_type_id":      lookupRefs.propertyTypeID,
		"updated_at":            time.Now().UTC(),
	}); err != nil {
		return err
	}

	return nil
}

// FindRefs loads the identifier pre-image of a stored listing: the ids of
// every child row the update path mutates in place.
func (r *PropertyRepository) FindRefs(ctx context.Context, propertyID string) (domain.AggregateRefs, error) {
	var root propertyDocument
	err := r.db.Collection(collProperties).FindOne(ctx, bson.M{"_id": propertyID}).Decode(&root)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.AggregateRefs{}, domain.ErrPropertyNotFound
		}
		r.logger.Error("PropertyRepository.FindRefs: failed to load property", "property_id", propertyID, "error", err.Error())
		return domain.AggregateRefs{}, domain.ErrInternal
	}

	var details detailsDocument
	err = r.db.Collection(collDetails).FindOne(ctx, bson.M{"_id": root.DetailsID}).Decode(&details)
	if err != nil {
		r.logger.Error("PropertyRepository.FindRefs: failed to load details", "property_id", propertyID, "error", err.Error())
		return domain.AggregateRefs{}, domain.ErrInternal
	}

	var contract contractDetailsDocument
	err = r.db.Collection(collContractDetails).FindOne(ctx, bson.M{"_id": root.ContractDetailsID}).Decode(&contract)
	if err != nil {
		r.logger.Error("PropertyRepository.FindRefs: failed to load contract details", "property_id", propertyID, "error", err.Error())
		return domain.AggregateRefs{}, domain.ErrInternal
	}

	return domain.AggregateRefs{
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
	}, nil
}

type lookupRefs struct {
	contactPreferenceID string
	relationTypeID      string
	conditionID         string
	propertyTypeID      string
	furnitureID         string
}

func (r *PropertyRepository) resolveLookupRefs(payload *domain.PropertyPayload) (lookupRefs, error) {
	var refs lookupRefs
	var err error

	if refs.contactPreferenceID, err = r.lookups.Resolve(domain.LookupContactPreference, string(payload.ContactPreference)); err != nil {
		return refs, err
	}
	if refs.relationTypeID, err = r.lookups.Resolve(domain.LookupRelationType, string(payload.RelationType)); err != nil {
		return refs, err
	}
	if refs.conditionID, err = r.lookups.Resolve(domain.LookupPropertyCondition, string(payload.Property.PropertyCondition)); err != nil {
		return refs, err
	}
	if refs.propertyTypeID, err = r.lookups.Resolve(domain.LookupPropertyType, string(payload.Property.PropertyType)); err != nil {
		return refs, err
	}
	if refs.furnitureID, err = r.lookups.Resolve(domain.LookupPropertyFurniture, string(payload.Property.HouseFurniture)); err != nil {
		return refs, err
	}
	return refs, nil
}

func (r *PropertyRepository) insertMoney(sc mongo.SessionContext, collection string, money domain.Money) (string, error) {
	doc := moneyDocument{
		ID:       uuid.NewString(),
		Amount:   money.Amount,
		Currency: string(money.Currency),
	}
	if _, err := r.db.Collection(collection).InsertOne(sc, doc); err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return doc.ID, nil
}

func (r *PropertyRepository) updateMoney(sc mongo.SessionContext, collection, id string, money domain.Money) error {
	return r.updateByID(sc, collection, id, bson.M{
		"amount":   money.Amount,
		"currency": string(money.Currency),
	})
}

// updateByID mutates one child row and fails the surrounding transaction
// when the id matches no document, so a stale reference can never turn an
// update into a silent no-op.
func (r *PropertyRepository) updateByID(sc mongo.SessionContext, collection, id string, set bson.M) error {
	result, err := r.db.Collection(collection).UpdateByID(sc, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", collection, id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("no %s document matched id %s", collection, id)
	}
	return nil
}
