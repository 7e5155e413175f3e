package mongodb

import (
	"time"

	"github.com/casafinder/listing-service/internal/property/domain"
)

// Document types mirror the normalized sub-entity layout: every child of
// the listing aggregate is its own collection row with a uuid _id, so
// updates can mutate children in place without touching their identity.

const (
	collProperties       = "properties"
	collDetails          = "property_details"
	collAddresses        = "property_addresses"
	collCommodities      = "property_commodities"
	collContractDetails  = "property_contract_details"
	collPrices           = "prices"
	collMonthlyExpenses  = "monthly_expenses"
	collAgencyFees       = "agency_fees"
	collLeaseTerms       = "minimum_lease_terms"
	collRentInAdvances   = "rent_in_advances"
	collPhotos           = "photos"
	collLocations        = "property_locations"
	collUsers            = "users"
)

// moneyDocument backs prices, monthly_expenses, agency_fees and
// rent_in_advances alike.
type moneyDocument struct {
	ID       string  `bson:"_id"`
	Amount   float64 `bson:"amount"`
	Currency string  `bson:"currency"`
}

func (d *moneyDocument) toDomain() domain.Money {
	return domain.Money{Amount: d.Amount, Currency: domain.Currency(d.Currency)}
}

type leaseTermDocument struct {
	ID       string `bson:"_id"`
	TermType string `bson:"term_type"`
	Value    int    `bson:"value"`
}

type commoditiesDocument struct {
	ID                 string `bson:"_id"`
	HasAirConditioning bool   `bson:"has_air_conditioning"`
	HasBalcony         bool   `bson:"has_balcony"`
	HasCellar          bool   `bson:"has_cellar"`
	HasClosetInTheWall bool   `bson:"has_closet_in_the_wall"`
	HasParking         bool   `bson:"has_parking"`
	HasTerrace         bool   `bson:"has_terrace"`
}

func (d *commoditiesDocument) toDomain() domain.Commodities {
	return domain.Commodities{
		HasAirConditioning: d.HasAirConditioning,
		HasBalcony:         d.HasBalcony,
		HasCellar:          d.HasCellar,
		HasClosetInTheWall: d.HasClosetInTheWall,
		HasParking:         d.HasParking,
		HasTerrace:         d.HasTerrace,
	}
}

type addressDocument struct {
	ID               string  `bson:"_id"`
	ResidenceComplex *string `bson:"residence_complex"`
	Street           string  `bson:"street"`
	StreetNumber     *string `bson:"street_number"`
	City             string  `bson:"city"`
	PostalCode       string  `bson:"postal_code"`
	Country          string  `bson:"country"`
	County           string  `bson:"county"`
	Floor            string  `bson:"floor"`
	LocationID       string  `bson:"property_location_id"`
}

func (d *addressDocument) toDomain() domain.Address {
	return domain.Address{
		ResidenceComplex: d.ResidenceComplex,
		Street:           d.Street,
		StreetNumber:     d.StreetNumber,
		City:             d.City,
		PostalCode:       d.PostalCode,
		Country:          d.Country,
		County:           d.County,
		Floor:            d.Floor,
	}
}

type detailsDocument struct {
	ID             string  `bson:"_id"`
	BathroomNumber int     `bson:"bathroom_number"`
	RoomNumber     int     `bson:"room_number"`
	IsLastFloor    bool    `bson:"is_last_floor"`
	HasElevator    bool    `bson:"has_elevator"`
	Surface        float64 `bson:"surface"`
	ConditionID    string  `bson:"property_condition_id"`
	CommoditiesID  string  `bson:"property_commodities_id"`
	TypeID         string  `bson:"property_type_id"`
	FurnitureID    string  `bson:"property_furniture_id"`
	AddressID      string  `bson:"property_address_id"`
}

type contractDetailsDocument struct {
	ID                 string `bson:"_id"`
	MaxTenants         *int   `bson:"maximum_number_of_tenants"`
	PetFriendly        bool   `bson:"pet_friendly"`
	AgencyFeeID        string `bson:"agency_fee_id"`
	MinimumLeaseTermID string `bson:"minimum_lease_term_id"`
	RentInAdvanceID    string `bson:"rent_in_advance_id"`
}

type photoDocument struct {
	ID            string `bson:"_id"`
	PropertyID    string `bson:"property_id"`
	UploadImageID string `bson:"upload_image_id"`
}

// propertyDocument is the aggregate root. location_id and
// property_type_id are denormalized from the address/details children so
// region search is a single indexed find on this collection.
type propertyDocument struct {
	ID                  string    `bson:"_id"`
	UserID              string    `bson:"user_id"`
	Description         *string   `bson:"description"`
	PriceID             string    `bson:"price_id"`
	MonthlyExpenseID    string    `bson:"monthly_expense_id"`
	ContactPreferenceID string    `bson:"contact_preference_id"`
	RelationTypeID      string    `bson:"relation_type_id"`
	DetailsID           string    `bson:"property_details_id"`
	ContractDetailsID   string    `bson:"property_contract_details_id"`
	LocationID          string    `bson:"location_id"`
	PropertyTypeID      string    `bson:"property_type_id"`
	CreatedAt           time.Time `bson:"created_at"`
	UpdatedAt           time.Time `bson:"updated_at"`
}

type geoJSONPoint struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"` // [longitude, latitude]
}

func newGeoJSONPoint(latitude, longitude float64) geoJSONPoint {
	return geoJSONPoint{Type: "Point", Coordinates: []float64{longitude, latitude}}
}

type locationDocument struct {
	ID    string       `bson:"_id"`
	Point geoJSONPoint `bson:"point"`
}

type lookupDocument struct {
	ID   string `bson:"_id"`
	Type string `bson:"type"`
}

type phoneNumberDocument struct {
	CountryCode string `bson:"country_code"`
	Number      string `bson:"number"`
	IsPrimary   bool   `bson:"is_primary"`
}

type userDocument struct {
	ID           string                `bson:"_id"`
	FirstName    string                `bson:"first_name"`
	LastName     string                `bson:"last_name"`
	Email        string                `bson:"email"`
	Picture      *string               `bson:"picture"`
	PhoneNumbers []phoneNumberDocument `bson:"phone_numbers"`
}

func (d *userDocument) toOwner() domain.Owner {
	numbers := make([]domain.PhoneNumber, 0, len(d.PhoneNumbers))
	for _, nr := range d.PhoneNumbers {
		numbers = append(numbers, domain.PhoneNumber{
			CountryCode: nr.CountryCode,
			Number:      nr.Number,
			IsPrimary:   nr.IsPrimary,
		})
	}
	return domain.Owner{
		UserID:       d.ID,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Picture:      d.Picture,
		PhoneNumbers: numbers,
	}
}
