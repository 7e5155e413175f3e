package domain

import "time"

// Money is a currency amount embedded by value into Price, MonthlyExpense,
// AgencyFee and RentInAdvance. Each embedding is persisted as its own row
// so updates can mutate it in place.
type Money struct {
	Amount   float64  `json:"amount"`
	Currency Currency `json:"currency"`
}

// LeaseTerm is a minimum lease duration (unit + value).
type LeaseTerm struct {
	Unit  LeaseTermUnit `json:"termUnit"`
	Value int           `json:"value"`
}

// Commodities is the boolean feature set of a property.
type Commodities struct {
	HasAirConditioning bool `json:"hasAirConditioning"`
	HasBalcony         bool `json:"hasBalcony"`
	HasCellar          bool `json:"hasCellar"`
	HasClosetInTheWall bool `json:"hasClosetInTheWall"`
	HasParking         bool `json:"hasParking"`
	HasTerrace         bool `json:"hasTerrace"`
}

// Address holds the free-text address fields of a property. Coordinates
// live in the spatial store, keyed by the address's location id.
type Address struct {
	ResidenceComplex *string `json:"residenceComplex"`
	Street           string  `json:"street"`
	StreetNumber     *string `json:"streetNumber"`
	City             string  `json:"city"`
	PostalCode       string  `json:"postalCode"`
	Country          string  `json:"country"`
	County           string  `json:"county"`
	Floor            string  `json:"floor"`
}

// PhotoUpload is one externally uploaded photo reference carried by a
// create payload. Signature and Version are checked against the upload
// provider before any write happens.
type PhotoUpload struct {
	ImageID   string `json:"imageId"`
	Signature string `json:"uploadedPhotoSignature"`
	Version   int64  `json:"version"`
}

// DetailsPayload carries the PropertyDetails sub-graph of a write payload.
type DetailsPayload struct {
	Address                Address           `json:"address"`
	Latitude               float64           `json:"latitude"`
	Longitude              float64           `json:"longitude"`
	BathroomNumber         int               `json:"bathroomNumber"`
	RoomNumber             int               `json:"roomNumber"`
	Commodities            Commodities       `json:"commodities"`
	HasElevator            bool              `json:"hasElevator"`
	HouseFurniture         PropertyFurniture `json:"houseFurniture"`
	IsLastFloor            bool              `json:"isLastFloor"`
	PropertyCondition      PropertyCondition `json:"propertyCondition"`
	PropertyType           PropertyType      `json:"propertyType"`
	Surface                float64           `json:"surface"`
	AgencyFee              Money             `json:"agencyFee"`
	MinimumLeaseTerm       LeaseTerm         `json:"minimumLeaseTerm"`
	MaximumNumberOfTenants *int              `json:"maximumNumberOfTenants"`
	PetFriendly            bool              `json:"petFriendly"`
	RentInAdvance          Money             `json:"rentInAdvance"`
}

// PropertyPayload is the full create/update input for a listing aggregate.
// PropertyID is empty on create and mandatory on update.
type PropertyPayload struct {
	PropertyID        string            `json:"propertyId"`
	Price             Money             `json:"price"`
	Description       *string           `json:"description"`
	ExpensesMonthly   Money             `json:"expensesMonthly"`
	Property          DetailsPayload    `json:"property"`
	Photos            []PhotoUpload     `json:"photos"`
	ContactPreference ContactPreference `json:"contactPreference"`
	RelationType      RelationType      `json:"relationType"`
}

// AggregateRefs is the identifier pre-image of a stored listing: every
// child row id the update path needs to mutate entities in place rather
// than re-creating them.
type AggregateRefs struct {
	PropertyID         string
	UserID             string
	PriceID            string
	MonthlyExpenseID   string
	DetailsID          string
	AddressID          string
	LocationID         string
	CommoditiesID      string
	ContractDetailsID  string
	AgencyFeeID        string
	MinimumLeaseTermID string
	RentInAdvanceID    string
}

// PhoneNumber is part of the owner's public profile.
type PhoneNumber struct {
	CountryCode string `json:"countryCode"`
	Number      string `json:"number"`
	IsPrimary   bool   `json:"isPrimary"`
}

// Owner is the public profile of the user owning a listing.
type Owner struct {
	UserID       string        `json:"userId"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	Picture      *string       `json:"picture"`
	PhoneNumbers []PhoneNumber `json:"phoneNumbers"`
}

// PropertyRecord is the fully joined read model of one listing, as loaded
// by the search repository. Coordinates are not part of it: the engine
// fetches them from the spatial store by LocationID.
type PropertyRecord struct {
	Refs              AggregateRefs
	Description       *string
	Price             Money
	ExpensesMonthly   Money
	RelationType      RelationType
	ContactPreference ContactPreference
	PropertyType      PropertyType
	PropertyCondition PropertyCondition
	HouseFurniture    PropertyFurniture
	Address           Address
	Commodities       Commodities
	BathroomNumber    int
	RoomNumber        int
	Surface           float64
	IsLastFloor       bool
	HasElevator       bool
	AgencyFee         Money
	MinimumLeaseTerm  LeaseTerm
	MaxTenants        *int
	PetFriendly       bool
	RentInAdvance     Money
	PhotoImageIDs     []string
	Owner             Owner
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PinRecord is the pin projection of region search: identifier, price and
// the location reference, nothing else.
type PinRecord struct {
	PropertyID string
	LocationID string
	Price      Money
}

// PreviewRecord is the denormalized preview projection of one listing.
type PreviewRecord struct {
	PropertyID        string
	LocationID        string
	Price             Money
	ContactPreference ContactPreference
	PropertyCondition PropertyCondition
	Address           Address
	Surface           float64
	RoomNumber        int
	BathroomNumber    int
	PhotoImageIDs     []string
}
