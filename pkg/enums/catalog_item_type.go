package enums

import "fmt"

// CatalogItemType classifies the priced SKUs a tenant catalog can hold.
type CatalogItemType string

const (
	CatalogItemTypeUniform        CatalogItemType = "uniform"
	CatalogItemTypeExam           CatalogItemType = "exam"
	CatalogItemTypeMeal           CatalogItemType = "meal"
	CatalogItemTypePhone          CatalogItemType = "phone"
	CatalogItemTypeRadio          CatalogItemType = "radio"
	CatalogItemTypeFlashlight     CatalogItemType = "flashlight"
	CatalogItemTypeInfrastructure CatalogItemType = "infrastructure"
	CatalogItemTypeFuel           CatalogItemType = "fuel"
	CatalogItemTypeTransport      CatalogItemType = "transport"
	CatalogItemTypeSystem         CatalogItemType = "system"
	CatalogItemTypeFinancial      CatalogItemType = "financial"
	CatalogItemTypePolicy         CatalogItemType = "policy"
)

var validCatalogItemTypes = []CatalogItemType{
	CatalogItemTypeUniform,
	CatalogItemTypeExam,
	CatalogItemTypeMeal,
	CatalogItemTypePhone,
	CatalogItemTypeRadio,
	CatalogItemTypeFlashlight,
	CatalogItemTypeInfrastructure,
	CatalogItemTypeFuel,
	CatalogItemTypeTransport,
	CatalogItemTypeSystem,
	CatalogItemTypeFinancial,
	CatalogItemTypePolicy,
}

// costItemTypes are the types billed through the generic cost-item bucket.
var costItemTypes = []CatalogItemType{
	CatalogItemTypePhone,
	CatalogItemTypeRadio,
	CatalogItemTypeFlashlight,
	CatalogItemTypeInfrastructure,
	CatalogItemTypeFuel,
	CatalogItemTypeTransport,
	CatalogItemTypeSystem,
	CatalogItemTypeFinancial,
	CatalogItemTypePolicy,
}

// String implements fmt.Stringer.
func (c CatalogItemType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CatalogItemType.
func (c CatalogItemType) IsValid() bool {
	for _, candidate := range validCatalogItemTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsCostItemType reports whether items of this type live in the generic
// cost-item collection rather than a dedicated one.
func (c CatalogItemType) IsCostItemType() bool {
	for _, candidate := range costItemTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// CostItemTypes returns the types billed through the generic cost-item bucket.
func CostItemTypes() []CatalogItemType {
	out := make([]CatalogItemType, len(costItemTypes))
	copy(out, costItemTypes)
	return out
}

// ParseCatalogItemType converts raw input into a CatalogItemType.
func ParseCatalogItemType(value string) (CatalogItemType, error) {
	for _, candidate := range validCatalogItemTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid catalog item type %q", value)
}
