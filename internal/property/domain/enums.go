package domain

// Lookup codes are fixed, pre-seeded sets. Listing writes only resolve
// them by value, never create or mutate them.

type RelationType string

const (
	RelationRent RelationType = "RENT"
	RelationSell RelationType = "SELL"
)

type PropertyType string

const (
	PropertyApartment PropertyType = "APARTMENT"
	PropertyHouse     PropertyType = "HOUSE"
)

type PropertyFurniture string

const (
	FurnitureEquippedKitchenFurnished     PropertyFurniture = "EQUIPPED_KITCHEN_AND_FURNISHED_HOUSE"
	FurnitureEquippedKitchenUnfurnished   PropertyFurniture = "EQUIPPED_KITCHEN_AND_UNFURNISHED_HOUSE"
	FurnitureUnequippedKitchenUnfurnished PropertyFurniture = "UNEQUIPPED_KITCHEN_AND_UNFURNISHED_HOUSE"
)

type PropertyCondition string

const (
	ConditionGood               PropertyCondition = "GOOD"
	ConditionNeedsRestructuring PropertyCondition = "NEEDS_RESTRUCTURING"
)

type ContactPreference string

const (
	ContactAll       ContactPreference = "ALL"
	ContactJustChat  ContactPreference = "JUST_CHAT"
	ContactJustPhone ContactPreference = "JUST_PHONE"
)

type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyRON Currency = "RON"
)

type LeaseTermUnit string

const (
	LeaseTermDays   LeaseTermUnit = "DAYS"
	LeaseTermMonths LeaseTermUnit = "MONTHS"
	LeaseTermYears  LeaseTermUnit = "YEARS"
)

// LookupKind names one of the seeded reference tables.
type LookupKind string

const (
	LookupRelationType      LookupKind = "relation_types"
	LookupPropertyType      LookupKind = "property_types"
	LookupPropertyFurniture LookupKind = "property_furniture"
	LookupPropertyCondition LookupKind = "property_conditions"
	LookupContactPreference LookupKind = "contact_preferences"
)

// SeedCodes lists the fixed code values per lookup kind. The bootstrap
// seeding step upserts exactly these rows before the service accepts writes.
var SeedCodes = map[LookupKind][]string{
	LookupRelationType: {string(RelationRent), string(RelationSell)},
	LookupPropertyType: {string(PropertyApartment), string(PropertyHouse)},
	LookupPropertyFurniture: {
		string(FurnitureEquippedKitchenFurnished),
		string(FurnitureEquippedKitchenUnfurnished),
		string(FurnitureUnequippedKitchenUnfurnished),
	},
	LookupPropertyCondition: {string(ConditionGood), string(ConditionNeedsRestructuring)},
	LookupContactPreference: {string(ContactAll), string(ContactJustChat), string(ContactJustPhone)},
}
