package quotes

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/custodia-hq/custodia-backend/pkg/db/models"
	"github.com/custodia-hq/custodia-backend/pkg/enums"
)

// CatalogLineEntry is a resolved uniform or exam line: either a persisted
// quote row or a synthetic one injected from the catalog defaults. A zero ID
// marks a synthetic entry that has never been persisted.
type CatalogLineEntry struct {
	ID                uuid.UUID
	CatalogItemID     uuid.UUID
	UnitPriceOverride *decimal.Decimal
	Active            bool
	CatalogItem       *models.CatalogItem
	IsDefault         bool
	CatalogMissing    bool
}

// MonthlyPrice resolves override-over-base precedence and normalizes the
// result to a monthly run-rate using the catalog item's stated unit. Missing
// catalog references price at zero unless an override is present.
func (e CatalogLineEntry) MonthlyPrice() decimal.Decimal {
	price, unit := e.rawPrice()
	return NormalizeUnitPrice(price, unit)
}

func (e CatalogLineEntry) rawPrice() (decimal.Decimal, string) {
	unit := ""
	if e.CatalogItem != nil {
		unit = e.CatalogItem.Unit.String()
	}
	if e.UnitPriceOverride != nil {
		return *e.UnitPriceOverride, unit
	}
	if e.CatalogItem == nil {
		return decimal.Zero, unit
	}
	return e.CatalogItem.BasePrice, unit
}

// CostItemEntry is a resolved generic cost line. Items whose catalog type is
// financial or policy ride in this collection but act as markup rate sources
// instead of contributing to the cost-item sum.
type CostItemEntry struct {
	CatalogLineEntry
	CalcMode enums.CalcMode
	Quantity int
}

// ItemType returns the resolved catalog type, or empty when the reference is
// missing.
func (e CostItemEntry) ItemType() enums.CatalogItemType {
	if e.CatalogItem == nil {
		return ""
	}
	return e.CatalogItem.Type
}

// MealEntry is a resolved meal line. The catalog item, when matched by
// case-insensitive name, supplies the fallback price.
type MealEntry struct {
	ID                uuid.UUID
	MealType          string
	UnitPriceOverride *decimal.Decimal
	MealsPerDay       int
	DaysOfService     int
	Enabled           bool
	CatalogItem       *models.CatalogItem
	IsDefault         bool
}

// MonthlyPrice resolves the per-unit meal price: override first, then the
// name-matched catalog item's normalized price, else zero.
func (e MealEntry) MonthlyPrice() decimal.Decimal {
	if e.UnitPriceOverride != nil {
		unit := ""
		if e.CatalogItem != nil {
			unit = e.CatalogItem.Unit.String()
		}
		return NormalizeUnitPrice(*e.UnitPriceOverride, unit)
	}
	if e.CatalogItem == nil {
		return decimal.Zero
	}
	return NormalizeUnitPrice(e.CatalogItem.BasePrice, e.CatalogItem.Unit.String())
}

// CostSummary is the engine's sole computed output. DegradedPricing is set
// when combined markup rates reached 100% and the sale price fell back to the
// cost base, so callers can warn that the price carries no margin.
type CostSummary struct {
	TotalGuards           int
	MonthlyPositions      decimal.Decimal
	MonthlyUniforms       decimal.Decimal
	MonthlyExams          decimal.Decimal
	MonthlyMeals          decimal.Decimal
	MonthlyVehicles       decimal.Decimal
	MonthlyInfrastructure decimal.Decimal
	MonthlyCostItems      decimal.Decimal
	MonthlyFinancial      decimal.Decimal
	MonthlyPolicy         decimal.Decimal
	MonthlyExtras         decimal.Decimal
	MonthlyTotal          decimal.Decimal
	SalePriceMonthly      decimal.Decimal
	ContractAmount        decimal.Decimal
	DegradedPricing       bool
}

// QuoteCosts is the full read-path payload: parameters, resolved collections
// (persisted plus default-injected) and the computed summary.
type QuoteCosts struct {
	Quote          models.Quote
	Parameters     models.QuoteParameters
	Uniforms       []CatalogLineEntry
	Exams          []CatalogLineEntry
	CostItems      []CostItemEntry
	Meals          []MealEntry
	Vehicles       []models.QuoteVehicle
	Infrastructure []models.QuoteInfrastructureItem
	Summary        CostSummary
}

// ReplaceCostsInput is the full desired state submitted by a write. Nil
// Parameters keeps the persisted row (creating a zero-valued one on first
// write); empty collections mean "drop my overrides, keep only defaults".
type ReplaceCostsInput struct {
	Parameters     *ParametersInput
	Uniforms       []CatalogLineInput
	Exams          []CatalogLineInput
	CostItems      []CostItemInput
	Meals          []MealInput
	Vehicles       []VehicleInput
	Infrastructure []InfrastructureInput
}

type ParametersInput struct {
	MarginPct             decimal.Decimal
	FinancialRatePct      decimal.Decimal
	PolicyRatePct         decimal.Decimal
	PolicyAdminRatePct    decimal.Decimal
	ContractMonths        int
	PolicyContractMonths  int
	PolicyContractPct     decimal.Decimal
	UniformChangesPerYear int
	AvgStayMonths         decimal.Decimal
	MonthlyHoursStandard  decimal.Decimal
}

type CatalogLineInput struct {
	CatalogItemID     uuid.UUID
	UnitPriceOverride *decimal.Decimal
	Active            bool
}

type CostItemInput struct {
	CatalogItemID     uuid.UUID
	UnitPriceOverride *decimal.Decimal
	CalcMode          enums.CalcMode
	Quantity          int
	Active            bool
}

type MealInput struct {
	MealType          string
	UnitPriceOverride *decimal.Decimal
	MealsPerDay       int
	DaysOfService     int
	Enabled           bool
}

type VehicleInput struct {
	ID          *uuid.UUID
	Name        string
	MonthlyCost decimal.Decimal
	Quantity    int
	Active      bool
}

type InfrastructureInput struct {
	ID          *uuid.UUID
	Name        string
	MonthlyCost decimal.Decimal
	Active      bool
}
