package quotes

import (
	"github.com/shopspring/decimal"

	"github.com/custodia-hq/custodia-backend/pkg/db/models"
	"github.com/custodia-hq/custodia-backend/pkg/enums"
)

// SummaryInput carries everything the read pipeline resolved for one quote.
// Collections must already be default-filled; ComputeSummary does no catalog
// lookups of its own.
type SummaryInput struct {
	Parameters     models.QuoteParameters
	Positions      []models.QuotePosition
	Uniforms       []CatalogLineEntry
	Exams          []CatalogLineEntry
	CostItems      []CostItemEntry
	Meals          []MealEntry
	Vehicles       []models.QuoteVehicle
	Infrastructure []models.QuoteInfrastructureItem
}

// ComputeSummary runs the full composition pipeline: aggregate per category,
// solve the self-referential markup equation, amortize the insurance premium,
// and assemble the totals.
//
// Every component is rounded to two decimals before the totals are formed, so
// MonthlyExtras and MonthlyTotal are exact sums of the figures a client sees.
// Vehicles and infrastructure are reported but deliberately excluded from
// MonthlyTotal; they are invoiced outside the guarded-service price.
func ComputeSummary(in SummaryInput) CostSummary {
	totalGuards := 0
	monthlyPositions := decimal.Zero
	for _, pos := range in.Positions {
		totalGuards += pos.NumGuards
		monthlyPositions = monthlyPositions.Add(pos.MonthlyCost)
	}
	monthlyPositions = monthlyPositions.Round(2)

	uniformSum := decimal.Zero
	for _, entry := range in.Uniforms {
		if !entry.Active {
			continue
		}
		uniformSum = uniformSum.Add(entry.MonthlyPrice())
	}
	monthlyUniforms := ProrateUniforms(uniformSum, in.Parameters.UniformChangesPerYear, totalGuards).Round(2)

	examSum := decimal.Zero
	for _, entry := range in.Exams {
		if !entry.Active {
			continue
		}
		examSum = examSum.Add(entry.MonthlyPrice())
	}
	monthlyExams := ProrateExams(examSum, in.Parameters.AvgStayMonths, totalGuards).Round(2)

	monthlyMeals := decimal.Zero
	for _, meal := range in.Meals {
		if !meal.Enabled {
			continue
		}
		line := meal.MonthlyPrice().
			Mul(decimal.NewFromInt(int64(meal.MealsPerDay))).
			Mul(decimal.NewFromInt(int64(meal.DaysOfService)))
		monthlyMeals = monthlyMeals.Add(line)
	}
	monthlyMeals = monthlyMeals.Round(2)

	monthlyCostItems, financialRate, policyRate := aggregateCostItems(in.CostItems, totalGuards)
	monthlyCostItems = monthlyCostItems.Round(2)

	monthlyVehicles := decimal.Zero
	for _, v := range in.Vehicles {
		if !v.Active {
			continue
		}
		monthlyVehicles = monthlyVehicles.Add(v.MonthlyCost.Mul(decimal.NewFromInt(int64(v.Quantity))))
	}
	monthlyVehicles = monthlyVehicles.Round(2)

	monthlyInfrastructure := decimal.Zero
	for _, item := range in.Infrastructure {
		if !item.Active {
			continue
		}
		monthlyInfrastructure = monthlyInfrastructure.Add(item.MonthlyCost)
	}
	monthlyInfrastructure = monthlyInfrastructure.Round(2)

	costBase := monthlyPositions.
		Add(monthlyUniforms).
		Add(monthlyExams).
		Add(monthlyMeals).
		Add(monthlyCostItems)

	margin := NormalizeRate(in.Parameters.MarginPct)
	salePrice, degraded := SolveSalePrice(costBase, margin, financialRate, policyRate)

	monthlyFinancial := salePrice.Mul(financialRate).Round(2)
	monthlyPolicy := AmortizePolicy(
		salePrice,
		policyRate,
		NormalizeRate(in.Parameters.PolicyContractPct),
		in.Parameters.PolicyContractMonths,
		in.Parameters.ContractMonths,
	).Round(2)

	monthlyExtras := monthlyUniforms.
		Add(monthlyExams).
		Add(monthlyMeals).
		Add(monthlyCostItems).
		Add(monthlyFinancial).
		Add(monthlyPolicy)

	return CostSummary{
		TotalGuards:           totalGuards,
		MonthlyPositions:      monthlyPositions,
		MonthlyUniforms:       monthlyUniforms,
		MonthlyExams:          monthlyExams,
		MonthlyMeals:          monthlyMeals,
		MonthlyVehicles:       monthlyVehicles,
		MonthlyInfrastructure: monthlyInfrastructure,
		MonthlyCostItems:      monthlyCostItems,
		MonthlyFinancial:      monthlyFinancial,
		MonthlyPolicy:         monthlyPolicy,
		MonthlyExtras:         monthlyExtras,
		MonthlyTotal:          monthlyPositions.Add(monthlyExtras),
		SalePriceMonthly:      salePrice.Round(2),
		ContractAmount:        salePrice.Mul(decimal.NewFromInt(int64(in.Parameters.ContractMonths))).Round(2),
		DegradedPricing:       degraded,
	}
}

// aggregateCostItems sums the generic cost bucket and, on the same pass,
// extracts the markup rate carried by the first enabled item of type
// financial and of type policy. Rate items never join the sum; their price
// field holds a rate, not a cost.
func aggregateCostItems(items []CostItemEntry, totalGuards int) (sum, financialRate, policyRate decimal.Decimal) {
	sum = decimal.Zero
	financialRate = decimal.Zero
	policyRate = decimal.Zero

	for _, item := range items {
		if !item.Active {
			continue
		}
		switch item.ItemType() {
		case enums.CatalogItemTypeFinancial:
			if financialRate.IsZero() {
				financialRate = NormalizeRate(item.rawPriceValue())
			}
			continue
		case enums.CatalogItemTypePolicy:
			if policyRate.IsZero() {
				policyRate = NormalizeRate(item.rawPriceValue())
			}
			continue
		}

		line := item.MonthlyPrice().Mul(decimal.NewFromInt(int64(item.Quantity)))
		if item.CalcMode == enums.CalcModePerGuard {
			line = line.Mul(decimal.NewFromInt(int64(totalGuards)))
		}
		sum = sum.Add(line)
	}
	return sum, financialRate, policyRate
}

// rawPriceValue returns the override-or-base value without unit conversion;
// rate items store a percentage, which must not be divided by 12.
func (e CatalogLineEntry) rawPriceValue() decimal.Decimal {
	price, _ := e.rawPrice()
	return price
}
