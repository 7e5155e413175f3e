package domain

// Response shapes returned by the facade. Field names follow the public
// API contract, hence the camelCase json tags.

type MoneyDto struct {
	Amount   float64  `json:"amount"`
	Currency Currency `json:"currency"`
}

type PhotoDto struct {
	ImageID string `json:"imageId"`
}

type AddressDto struct {
	ResidenceComplex *string `json:"residenceComplex"`
	Street           string  `json:"street"`
	StreetNumber     *string `json:"streetNumber"`
	City             string  `json:"city"`
	PostalCode       string  `json:"postalCode"`
	Country          string  `json:"country"`
	County           string  `json:"county"`
	Floor            string  `json:"floor"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
}

type PinPropertyDto struct {
	PropertyID string   `json:"propertyId"`
	Price      MoneyDto `json:"price"`
}

type PinDto struct {
	GeoCoordinates GeoPoint         `json:"geoCoordinates"`
	Properties     []PinPropertyDto `json:"properties"`
}

type DrawToSearchResponse struct {
	Pins []PinDto `json:"pins"`
}

type PropertyPreviewDto struct {
	PropertyID        string            `json:"propertyId"`
	Property          PreviewDetailsDto `json:"property"`
	Price             MoneyDto          `json:"price"`
	ContactPreference ContactPreference `json:"contactPreference"`
	Photos            []PhotoDto        `json:"photos"`
}

type PreviewDetailsDto struct {
	PropertyCondition PropertyCondition `json:"propertyCondition"`
	Address           AddressDto        `json:"address"`
	Surface           float64           `json:"surface"`
	RoomNumber        int               `json:"roomNumber"`
	BathroomNumber    int               `json:"bathroomNumber"`
}

type PreviewResponse struct {
	PropertiesPreview []PropertyPreviewDto `json:"propertiesPreview"`
	Page              int64                `json:"page"`
	LastPage          int64                `json:"lastPage"`
	Total             int64                `json:"total"`
}

type CommoditiesDto struct {
	HasAirConditioning bool `json:"hasAirConditioning"`
	HasBalcony         bool `json:"hasBalcony"`
	HasCellar          bool `json:"hasCellar"`
	HasClosetInTheWall bool `json:"hasClosetInTheWall"`
	HasParking         bool `json:"hasParking"`
	HasTerrace         bool `json:"hasTerrace"`
}

type DetailsDto struct {
	PropertyType      PropertyType      `json:"propertyType"`
	PropertyCondition PropertyCondition `json:"propertyCondition"`
	Address           AddressDto        `json:"address"`
	IsLastFloor       bool              `json:"isLastFloor"`
	Surface           float64           `json:"surface"`
	RoomNumber        int               `json:"roomNumber"`
	BathroomNumber    int               `json:"bathroomNumber"`
	HasElevator       bool              `json:"hasElevator"`
	HouseFurniture    PropertyFurniture `json:"houseFurniture"`
	Commodities       CommoditiesDto    `json:"commodities"`
}

type LeaseTermDto struct {
	TermUnit LeaseTermUnit `json:"termUnit"`
	Value    int           `json:"value"`
}

type ContractDetailsDto struct {
	MaximumNumberOfTenants *int         `json:"maximumNumberOfTenants"`
	PetFriendly            bool         `json:"petFriendly"`
	AgencyFee              MoneyDto     `json:"agencyFee"`
	MinimumLeaseTerm       LeaseTermDto `json:"minimumLeaseTerm"`
	RentInAdvance          MoneyDto     `json:"rentInAdvance"`
}

type OwnerDto struct {
	UserID       string        `json:"userId"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	Picture      *string       `json:"picture"`
	PhoneNumbers []PhoneNumber `json:"phoneNumbers"`
}

// PropertyDto is the full nested listing detail. CreatedAt and UpdatedAt
// are ISO-8601 strings.
type PropertyDto struct {
	PropertyID        string             `json:"propertyId"`
	RelationType      RelationType       `json:"relationType"`
	Price             MoneyDto           `json:"price"`
	Description       *string            `json:"description"`
	ExpensesMonthly   MoneyDto           `json:"expensesMonthly"`
	ContactPreference ContactPreference  `json:"contactPreference"`
	Property          DetailsDto         `json:"property"`
	ContractDetails   ContractDetailsDto `json:"contractDetails"`
	User              OwnerDto           `json:"user"`
	Photos            []PhotoDto         `json:"photos"`
	CreatedAt         string             `json:"createdAt"`
	UpdatedAt         string             `json:"updatedAt"`
}

type UserPropertiesResponse struct {
	Properties []PropertyDto `json:"properties"`
	Page       int64         `json:"page"`
	LastPage   int64         `json:"lastPage"`
	Total      int64         `json:"total"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
