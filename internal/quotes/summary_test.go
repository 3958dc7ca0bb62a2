package quotes

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-hq/custodia-backend/pkg/db/models"
	"github.com/custodia-hq/custodia-backend/pkg/enums"
)

func catalogEntry(itemType enums.CatalogItemType, unit enums.BillingUnit, price string, active bool) CatalogLineEntry {
	item := &models.CatalogItem{
		ID:        uuid.New(),
		Type:      itemType,
		Name:      string(itemType),
		Unit:      unit,
		BasePrice: dec(price),
		Active:    true,
	}
	return CatalogLineEntry{
		CatalogItemID: item.ID,
		Active:        active,
		CatalogItem:   item,
	}
}

func costEntry(itemType enums.CatalogItemType, unit enums.BillingUnit, price string, mode enums.CalcMode, qty int, active bool) CostItemEntry {
	return CostItemEntry{
		CatalogLineEntry: catalogEntry(itemType, unit, price, active),
		CalcMode:         mode,
		Quantity:         qty,
	}
}

func fullSummaryInput() SummaryInput {
	return SummaryInput{
		Parameters: models.QuoteParameters{
			MarginPct:             dec("20"),
			ContractMonths:        24,
			PolicyContractMonths:  12,
			PolicyContractPct:     dec("100"),
			UniformChangesPerYear: 3,
			AvgStayMonths:         dec("8"),
		},
		Positions: []models.QuotePosition{
			{Name: "day shift", NumGuards: 3, MonthlyCost: dec("60000")},
			{Name: "night shift", NumGuards: 1, MonthlyCost: dec("22000")},
		},
		Uniforms: []CatalogLineEntry{
			catalogEntry(enums.CatalogItemTypeUniform, enums.BillingUnitYear, "20000", true),
			catalogEntry(enums.CatalogItemTypeUniform, enums.BillingUnitYear, "8000", false),
		},
		Exams: []CatalogLineEntry{
			catalogEntry(enums.CatalogItemTypeExam, enums.BillingUnitMonth, "600", true),
		},
		CostItems: []CostItemEntry{
			costEntry(enums.CatalogItemTypeRadio, enums.BillingUnitMonth, "350", enums.CalcModePerGuard, 1, true),
			costEntry(enums.CatalogItemTypeSystem, enums.BillingUnitMonth, "1200", enums.CalcModePerMonth, 1, true),
			costEntry(enums.CatalogItemTypeFinancial, enums.BillingUnitMonth, "3", enums.CalcModePerMonth, 1, true),
			costEntry(enums.CatalogItemTypePolicy, enums.BillingUnitMonth, "2", enums.CalcModePerMonth, 1, true),
		},
		Meals: []MealEntry{
			{MealType: "lunch", MealsPerDay: 1, DaysOfService: 30, Enabled: true,
				UnitPriceOverride: decPtr("85")},
			{MealType: "dinner", MealsPerDay: 1, DaysOfService: 30, Enabled: false,
				UnitPriceOverride: decPtr("85")},
		},
		Vehicles: []models.QuoteVehicle{
			{Name: "patrol truck", MonthlyCost: dec("9000"), Quantity: 2, Active: true},
			{Name: "spare", MonthlyCost: dec("9000"), Quantity: 1, Active: false},
		},
		Infrastructure: []models.QuoteInfrastructureItem{
			{Name: "caseta", MonthlyCost: dec("4000"), Active: true},
		},
	}
}

func decPtr(value string) *decimal.Decimal {
	d := dec(value)
	return &d
}

func TestComputeSummaryFullPipeline(t *testing.T) {
	summary := ComputeSummary(fullSummaryInput())

	assert.Equal(t, 4, summary.TotalGuards)
	assert.True(t, dec("82000").Equal(summary.MonthlyPositions), "positions %s", summary.MonthlyPositions)
	// 20000/12 × 3/12 × 4; the inactive uniform is skipped.
	assert.True(t, dec("1666.67").Equal(summary.MonthlyUniforms), "uniforms %s", summary.MonthlyUniforms)
	// 600 × (12/8)/12 × 4.
	assert.True(t, dec("300").Equal(summary.MonthlyExams), "exams %s", summary.MonthlyExams)
	// 85 × 1 × 30; the disabled dinner is skipped.
	assert.True(t, dec("2550").Equal(summary.MonthlyMeals), "meals %s", summary.MonthlyMeals)
	// radio 350 per guard × 4 + system 1200 flat; rate items excluded.
	assert.True(t, dec("2600").Equal(summary.MonthlyCostItems), "cost items %s", summary.MonthlyCostItems)
	assert.True(t, dec("18000").Equal(summary.MonthlyVehicles), "vehicles %s", summary.MonthlyVehicles)
	assert.True(t, dec("4000").Equal(summary.MonthlyInfrastructure))

	// cost_base = 82000 + 1666.67 + 300 + 2550 + 2600 = 89116.67;
	// sale = 89116.67 / (1 − 0.25) = 118822.226...
	require.False(t, summary.DegradedPricing)
	assert.True(t, dec("118822.23").Equal(summary.SalePriceMonthly), "sale %s", summary.SalePriceMonthly)
	assert.True(t, dec("3564.67").Equal(summary.MonthlyFinancial), "financial %s", summary.MonthlyFinancial)
	// premium = sale × 12 × 1 × 0.02, spread over 24 months.
	assert.True(t, dec("1188.22").Equal(summary.MonthlyPolicy), "policy %s", summary.MonthlyPolicy)

	assert.True(t, dec("2851733.44").Equal(summary.ContractAmount), "contract %s", summary.ContractAmount)
}

func TestComputeSummaryAdditivity(t *testing.T) {
	summary := ComputeSummary(fullSummaryInput())

	wantExtras := summary.MonthlyUniforms.
		Add(summary.MonthlyExams).
		Add(summary.MonthlyMeals).
		Add(summary.MonthlyCostItems).
		Add(summary.MonthlyFinancial).
		Add(summary.MonthlyPolicy)
	assert.True(t, wantExtras.Equal(summary.MonthlyExtras))
	assert.True(t, summary.MonthlyPositions.Add(summary.MonthlyExtras).Equal(summary.MonthlyTotal))

	// Vehicles and infrastructure are reported but stay out of the total.
	withoutFleet := summary.MonthlyTotal.
		Add(summary.MonthlyVehicles).
		Add(summary.MonthlyInfrastructure)
	assert.False(t, withoutFleet.Equal(summary.MonthlyTotal))
}

func TestComputeSummaryDegenerateMarkup(t *testing.T) {
	in := fullSummaryInput()
	in.Parameters.MarginPct = dec("96")

	summary := ComputeSummary(in)

	require.True(t, summary.DegradedPricing)
	// margin 0.96 + financial 0.03 + policy 0.02 ≥ 1: sale falls back to the
	// cost base.
	costBase := summary.MonthlyPositions.
		Add(summary.MonthlyUniforms).
		Add(summary.MonthlyExams).
		Add(summary.MonthlyMeals).
		Add(summary.MonthlyCostItems)
	assert.True(t, costBase.Equal(summary.SalePriceMonthly), "sale %s vs base %s", summary.SalePriceMonthly, costBase)
}

func TestComputeSummaryFirstRateItemWins(t *testing.T) {
	in := fullSummaryInput()
	in.CostItems = append(in.CostItems,
		costEntry(enums.CatalogItemTypeFinancial, enums.BillingUnitMonth, "50", enums.CalcModePerMonth, 1, true))

	first := ComputeSummary(fullSummaryInput())
	second := ComputeSummary(in)

	assert.True(t, first.MonthlyFinancial.Equal(second.MonthlyFinancial), "later financial item must be ignored")
}

func TestComputeSummaryZeroGuards(t *testing.T) {
	in := fullSummaryInput()
	in.Positions = nil

	summary := ComputeSummary(in)

	assert.Equal(t, 0, summary.TotalGuards)
	assert.True(t, summary.MonthlyUniforms.IsZero())
	assert.True(t, summary.MonthlyExams.IsZero())
	// per-guard cost items collapse to zero, flat ones remain.
	assert.True(t, dec("1200").Equal(summary.MonthlyCostItems), "cost items %s", summary.MonthlyCostItems)
	// Meals are headcount-independent.
	assert.True(t, dec("2550").Equal(summary.MonthlyMeals))
}

func TestComputeSummaryMissingCatalogPricesAtZero(t *testing.T) {
	in := SummaryInput{
		Parameters: models.QuoteParameters{MarginPct: dec("20"), ContractMonths: 12},
		Positions:  []models.QuotePosition{{NumGuards: 2, MonthlyCost: dec("1000")}},
		CostItems: []CostItemEntry{
			{
				CatalogLineEntry: CatalogLineEntry{
					CatalogItemID:  uuid.New(),
					Active:         true,
					CatalogMissing: true,
				},
				CalcMode: enums.CalcModePerMonth,
				Quantity: 3,
			},
		},
	}

	summary := ComputeSummary(in)
	assert.True(t, summary.MonthlyCostItems.IsZero())
	assert.True(t, dec("1000").Equal(summary.MonthlyTotal))
}
