package enums

import "fmt"

// BillingUnit is the period a catalog item's base price is stated in.
type BillingUnit string

const (
	BillingUnitMonth    BillingUnit = "month"
	BillingUnitSemester BillingUnit = "semester"
	BillingUnitYear     BillingUnit = "year"
)

var validBillingUnits = []BillingUnit{
	BillingUnitMonth,
	BillingUnitSemester,
	BillingUnitYear,
}

// String implements fmt.Stringer.
func (b BillingUnit) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BillingUnit.
func (b BillingUnit) IsValid() bool {
	for _, candidate := range validBillingUnits {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBillingUnit converts raw input into a BillingUnit.
func ParseBillingUnit(value string) (BillingUnit, error) {
	for _, candidate := range validBillingUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid billing unit %q", value)
}
