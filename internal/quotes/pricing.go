package quotes

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	decimalOne    = decimal.NewFromInt(1)
	decimalSix    = decimal.NewFromInt(6)
	decimalTwelve = decimal.NewFromInt(12)
	decimalCent   = decimal.NewFromInt(100)
)

var yearTokens = []string{"year", "yr", "annual", "año", "anio", "anual"}

var semesterTokens = []string{"semester", "semestre", "semestral"}

// NormalizeUnitPrice converts a catalog price stated per year or per
// semester into its monthly run-rate. Unrecognized or empty unit labels mean
// the price is already monthly and is returned unchanged.
func NormalizeUnitPrice(price decimal.Decimal, unit string) decimal.Decimal {
	label := strings.ToLower(strings.TrimSpace(unit))
	for _, token := range yearTokens {
		if strings.Contains(label, token) {
			return price.Div(decimalTwelve)
		}
	}
	for _, token := range semesterTokens {
		if strings.Contains(label, token) {
			return price.Div(decimalSix)
		}
	}
	return price
}

// NormalizeRate resolves the stored percent/fraction duality: values above 1
// are whole-number percents (20 -> 0.20), values at or below 1 are already
// fractions. Every rate crossing into the pricing equations goes through
// here; the check is never inlined elsewhere.
func NormalizeRate(v decimal.Decimal) decimal.Decimal {
	if v.GreaterThan(decimalOne) {
		return v.Div(decimalCent)
	}
	return v
}

// SolveSalePrice solves sale = cost / (1 - (margin + financial + policy)),
// where the three rates are fractions of the sale price itself. When the
// combined rates reach or exceed 1 the equation has no finite positive
// solution; the sale price falls back to the cost base and the degenerate
// flag is set so callers can annotate the summary.
func SolveSalePrice(costBase, margin, financialRate, policyRate decimal.Decimal) (decimal.Decimal, bool) {
	combined := margin.Add(financialRate).Add(policyRate)
	if combined.GreaterThanOrEqual(decimalOne) {
		return costBase, true
	}
	return costBase.Div(decimalOne.Sub(combined)), false
}

// ProrateUniforms converts the monthly-normalized price of a uniform set
// into a run-rate scaled by replacement frequency and headcount:
// (sum × changes_per_year / 12) × guards. Zero guards yields zero.
func ProrateUniforms(monthlySum decimal.Decimal, changesPerYear int, totalGuards int) decimal.Decimal {
	if totalGuards == 0 {
		return decimal.Zero
	}
	return monthlySum.
		Mul(decimal.NewFromInt(int64(changesPerYear))).
		Div(decimalTwelve).
		Mul(decimal.NewFromInt(int64(totalGuards)))
}

// ProrateExams amortizes an exam panel issued once per new hire over the
// expected stay: entries_per_year = 12 / avg_stay_months, then
// (sum × entries_per_year / 12) × guards. Non-positive stay means no
// turnover assumption and zero cost.
func ProrateExams(monthlySum, avgStayMonths decimal.Decimal, totalGuards int) decimal.Decimal {
	if totalGuards == 0 || !avgStayMonths.IsPositive() {
		return decimal.Zero
	}
	entriesPerYear := decimalTwelve.Div(avgStayMonths)
	return monthlySum.
		Mul(entriesPerYear).
		Div(decimalTwelve).
		Mul(decimal.NewFromInt(int64(totalGuards)))
}

// AmortizePolicy spreads the contract-bound insurance premium evenly across
// the commercial contract term. The premium is sized over the (possibly
// different) policy contract window:
//
//	contract_amount = sale × policy_contract_months × policy_contract_pct
//	premium         = contract_amount × policy_rate
//	monthly         = premium / contract_months
//
// policyRate and policyContractPct must already be normalized; a zero
// policyContractPct defaults to 100%.
func AmortizePolicy(salePrice, policyRate, policyContractPct decimal.Decimal, policyContractMonths, contractMonths int) decimal.Decimal {
	if contractMonths <= 0 {
		return decimal.Zero
	}
	pct := policyContractPct
	if pct.IsZero() {
		pct = decimalOne
	}
	contractAmount := salePrice.
		Mul(decimal.NewFromInt(int64(policyContractMonths))).
		Mul(pct)
	premium := contractAmount.Mul(policyRate)
	return premium.Div(decimal.NewFromInt(int64(contractMonths)))
}
