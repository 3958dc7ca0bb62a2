package enums

import "fmt"

// CalcMode decides whether a cost item is billed flat per month or scaled by
// the quote's guard headcount.
type CalcMode string

const (
	CalcModePerMonth CalcMode = "per_month"
	CalcModePerGuard CalcMode = "per_guard"
)

var validCalcModes = []CalcMode{
	CalcModePerMonth,
	CalcModePerGuard,
}

// String implements fmt.Stringer.
func (c CalcMode) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CalcMode.
func (c CalcMode) IsValid() bool {
	for _, candidate := range validCalcModes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCalcMode converts raw input into a CalcMode.
func ParseCalcMode(value string) (CalcMode, error) {
	for _, candidate := range validCalcModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid calc mode %q", value)
}
