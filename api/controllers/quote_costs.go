package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/custodia-hq/custodia-backend/api/responses"
	"github.com/custodia-hq/custodia-backend/api/validators"
	quotesvc "github.com/custodia-hq/custodia-backend/internal/quotes"
	"github.com/custodia-hq/custodia-backend/pkg/db/models"
	"github.com/custodia-hq/custodia-backend/pkg/enums"
	pkgerrors "github.com/custodia-hq/custodia-backend/pkg/errors"
	"github.com/custodia-hq/custodia-backend/pkg/logger"
)

// GetQuote returns the quote header with its cached summary scalars.
func GetQuote(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quoteID, err := parseQuoteID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.GetQuote(r.Context(), quoteID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newQuoteResponse(quote))
	}
}

// GetQuoteCosts runs the read pipeline and returns the full resolved cost
// configuration plus the computed summary.
func GetQuoteCosts(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quoteID, err := parseQuoteID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		costs, err := svc.GetCosts(r.Context(), quoteID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newQuoteCostsResponse(costs))
	}
}

// ReplaceQuoteCosts accepts the full desired cost state and replaces the
// quote's configuration atomically, answering with the post-write summary.
func ReplaceQuoteCosts(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quoteID, err := parseQuoteID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload replaceQuoteCostsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		costs, err := svc.ReplaceCosts(r.Context(), quoteID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, replaceQuoteCostsResponse{Summary: newSummaryResponse(costs.Summary)})
	}
}

func parseQuoteID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "quoteID")
	quoteID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid quote id")
	}
	return quoteID, nil
}

type replaceQuoteCostsRequest struct {
	Parameters     *parametersPayload      `json:"parameters"`
	Uniforms       []catalogLinePayload    `json:"uniforms" validate:"dive"`
	Exams          []catalogLinePayload    `json:"exams" validate:"dive"`
	CostItems      []costItemPayload       `json:"costItems" validate:"dive"`
	Meals          []mealPayload           `json:"meals" validate:"dive"`
	Vehicles       []vehiclePayload        `json:"vehicles" validate:"dive"`
	Infrastructure []infrastructurePayload `json:"infrastructure" validate:"dive"`
}

type parametersPayload struct {
	MarginPct             decimal.Decimal `json:"marginPct"`
	FinancialRatePct      decimal.Decimal `json:"financialRatePct"`
	PolicyRatePct         decimal.Decimal `json:"policyRatePct"`
	PolicyAdminRatePct    decimal.Decimal `json:"policyAdminRatePct"`
	ContractMonths        int             `json:"contractMonths" validate:"min=0"`
	PolicyContractMonths  int             `json:"policyContractMonths" validate:"min=0"`
	PolicyContractPct     decimal.Decimal `json:"policyContractPct"`
	UniformChangesPerYear int             `json:"uniformChangesPerYear" validate:"min=0"`
	AvgStayMonths         decimal.Decimal `json:"avgStayMonths"`
	MonthlyHoursStandard  decimal.Decimal `json:"monthlyHoursStandard"`
}

type catalogLinePayload struct {
	CatalogItemID     uuid.UUID        `json:"catalogItemId" validate:"required"`
	UnitPriceOverride *decimal.Decimal `json:"unitPriceOverride"`
	Active            bool             `json:"active"`
}

type costItemPayload struct {
	CatalogItemID     uuid.UUID        `json:"catalogItemId" validate:"required"`
	UnitPriceOverride *decimal.Decimal `json:"unitPriceOverride"`
	CalcMode          string           `json:"calcMode" validate:"omitempty,oneof=per_month per_guard"`
	Quantity          int              `json:"quantity" validate:"min=0"`
	Active            bool             `json:"active"`
}

type mealPayload struct {
	MealType          string           `json:"mealType" validate:"required"`
	UnitPriceOverride *decimal.Decimal `json:"unitPriceOverride"`
	MealsPerDay       int              `json:"mealsPerDay" validate:"min=0"`
	DaysOfService     int              `json:"daysOfService" validate:"min=0"`
	Enabled           bool             `json:"enabled"`
}

type vehiclePayload struct {
	ID          *uuid.UUID      `json:"id"`
	Name        string          `json:"name" validate:"required"`
	MonthlyCost decimal.Decimal `json:"monthlyCost"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	Active      bool            `json:"active"`
}

type infrastructurePayload struct {
	ID          *uuid.UUID      `json:"id"`
	Name        string          `json:"name" validate:"required"`
	MonthlyCost decimal.Decimal `json:"monthlyCost"`
	Active      bool            `json:"active"`
}

func (r replaceQuoteCostsRequest) toInput() (quotesvc.ReplaceCostsInput, error) {
	input := quotesvc.ReplaceCostsInput{}

	if r.Parameters != nil {
		input.Parameters = &quotesvc.ParametersInput{
			MarginPct:             r.Parameters.MarginPct,
			FinancialRatePct:      r.Parameters.FinancialRatePct,
			PolicyRatePct:         r.Parameters.PolicyRatePct,
			PolicyAdminRatePct:    r.Parameters.PolicyAdminRatePct,
			ContractMonths:        r.Parameters.ContractMonths,
			PolicyContractMonths:  r.Parameters.PolicyContractMonths,
			PolicyContractPct:     r.Parameters.PolicyContractPct,
			UniformChangesPerYear: r.Parameters.UniformChangesPerYear,
			AvgStayMonths:         r.Parameters.AvgStayMonths,
			MonthlyHoursStandard:  r.Parameters.MonthlyHoursStandard,
		}
	}

	for _, line := range r.Uniforms {
		input.Uniforms = append(input.Uniforms, quotesvc.CatalogLineInput{
			CatalogItemID:     line.CatalogItemID,
			UnitPriceOverride: line.UnitPriceOverride,
			Active:            line.Active,
		})
	}
	for _, line := range r.Exams {
		input.Exams = append(input.Exams, quotesvc.CatalogLineInput{
			CatalogItemID:     line.CatalogItemID,
			UnitPriceOverride: line.UnitPriceOverride,
			Active:            line.Active,
		})
	}
	for _, line := range r.CostItems {
		mode := enums.CalcModePerMonth
		if line.CalcMode != "" {
			parsed, err := enums.ParseCalcMode(line.CalcMode)
			if err != nil {
				return quotesvc.ReplaceCostsInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid calc mode")
			}
			mode = parsed
		}
		input.CostItems = append(input.CostItems, quotesvc.CostItemInput{
			CatalogItemID:     line.CatalogItemID,
			UnitPriceOverride: line.UnitPriceOverride,
			CalcMode:          mode,
			Quantity:          line.Quantity,
			Active:            line.Active,
		})
	}
	for _, meal := range r.Meals {
		input.Meals = append(input.Meals, quotesvc.MealInput{
			MealType:          meal.MealType,
			UnitPriceOverride: meal.UnitPriceOverride,
			MealsPerDay:       meal.MealsPerDay,
			DaysOfService:     meal.DaysOfService,
			Enabled:           meal.Enabled,
		})
	}
	for _, vehicle := range r.Vehicles {
		input.Vehicles = append(input.Vehicles, quotesvc.VehicleInput{
			ID:          vehicle.ID,
			Name:        vehicle.Name,
			MonthlyCost: vehicle.MonthlyCost,
			Quantity:    vehicle.Quantity,
			Active:      vehicle.Active,
		})
	}
	for _, item := range r.Infrastructure {
		input.Infrastructure = append(input.Infrastructure, quotesvc.InfrastructureInput{
			ID:          item.ID,
			Name:        item.Name,
			MonthlyCost: item.MonthlyCost,
			Active:      item.Active,
		})
	}

	return input, nil
}

type quoteResponse struct {
	ID          uuid.UUID       `json:"id"`
	TenantID    uuid.UUID       `json:"tenantId"`
	Name        string          `json:"name"`
	ClientName  string          `json:"clientName"`
	TotalGuards int             `json:"totalGuards"`
	MonthlyCost decimal.Decimal `json:"monthlyCost"`
}

func newQuoteResponse(quote *models.Quote) quoteResponse {
	return quoteResponse{
		ID:          quote.ID,
		TenantID:    quote.TenantID,
		Name:        quote.Name,
		ClientName:  quote.ClientName,
		TotalGuards: quote.TotalGuards,
		MonthlyCost: quote.MonthlyCost,
	}
}

type quoteCostsResponse struct {
	Parameters     parametersResponse       `json:"parameters"`
	Uniforms       []catalogLineResponse    `json:"uniforms"`
	Exams          []catalogLineResponse    `json:"exams"`
	CostItems      []costItemResponse       `json:"costItems"`
	Meals          []mealResponse           `json:"meals"`
	Vehicles       []vehicleResponse        `json:"vehicles"`
	Infrastructure []infrastructureResponse `json:"infrastructure"`
	Summary        summaryResponse          `json:"summary"`
}

type replaceQuoteCostsResponse struct {
	Summary summaryResponse `json:"summary"`
}

type parametersResponse struct {
	MarginPct             decimal.Decimal `json:"marginPct"`
	FinancialRatePct      decimal.Decimal `json:"financialRatePct"`
	PolicyRatePct         decimal.Decimal `json:"policyRatePct"`
	PolicyAdminRatePct    decimal.Decimal `json:"policyAdminRatePct"`
	ContractMonths        int             `json:"contractMonths"`
	PolicyContractMonths  int             `json:"policyContractMonths"`
	PolicyContractPct     decimal.Decimal `json:"policyContractPct"`
	UniformChangesPerYear int             `json:"uniformChangesPerYear"`
	AvgStayMonths         decimal.Decimal `json:"avgStayMonths"`
	MonthlyHoursStandard  decimal.Decimal `json:"monthlyHoursStandard"`
	SalePriceMonthly      decimal.Decimal `json:"salePriceMonthly"`
	ContractAmount        decimal.Decimal `json:"contractAmount"`
}

type catalogItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	BasePrice decimal.Decimal `json:"basePrice"`
}

type catalogLineResponse struct {
	ID                *uuid.UUID           `json:"id,omitempty"`
	CatalogItemID     uuid.UUID            `json:"catalogItemId"`
	UnitPriceOverride *decimal.Decimal     `json:"unitPriceOverride"`
	Active            bool                 `json:"active"`
	IsDefault         bool                 `json:"isDefault"`
	CatalogMissing    bool                 `json:"catalogMissing,omitempty"`
	CatalogItem       *catalogItemResponse `json:"catalogItem"`
}

type costItemResponse struct {
	catalogLineResponse
	CalcMode string `json:"calcMode"`
	Quantity int    `json:"quantity"`
}

type mealResponse struct {
	ID                *uuid.UUID           `json:"id,omitempty"`
	MealType          string               `json:"mealType"`
	UnitPriceOverride *decimal.Decimal     `json:"unitPriceOverride"`
	MealsPerDay       int                  `json:"mealsPerDay"`
	DaysOfService     int                  `json:"daysOfService"`
	Enabled           bool                 `json:"enabled"`
	IsDefault         bool                 `json:"isDefault"`
	CatalogItem       *catalogItemResponse `json:"catalogItem"`
}

type vehicleResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	MonthlyCost decimal.Decimal `json:"monthlyCost"`
	Quantity    int             `json:"quantity"`
	Active      bool            `json:"active"`
}

type infrastructureResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	MonthlyCost decimal.Decimal `json:"monthlyCost"`
	Active      bool            `json:"active"`
}

type summaryResponse struct {
	TotalGuards           int             `json:"totalGuards"`
	MonthlyPositions      decimal.Decimal `json:"monthlyPositions"`
	MonthlyUniforms       decimal.Decimal `json:"monthlyUniforms"`
	MonthlyExams          decimal.Decimal `json:"monthlyExams"`
	MonthlyMeals          decimal.Decimal `json:"monthlyMeals"`
	MonthlyVehicles       decimal.Decimal `json:"monthlyVehicles"`
	MonthlyInfrastructure decimal.Decimal `json:"monthlyInfrastructure"`
	MonthlyCostItems      decimal.Decimal `json:"monthlyCostItems"`
	MonthlyFinancial      decimal.Decimal `json:"monthlyFinancial"`
	MonthlyPolicy         decimal.Decimal `json:"monthlyPolicy"`
	MonthlyExtras         decimal.Decimal `json:"monthlyExtras"`
	MonthlyTotal          decimal.Decimal `json:"monthlyTotal"`
	SalePriceMonthly      decimal.Decimal `json:"salePriceMonthly"`
	ContractAmount        decimal.Decimal `json:"contractAmount"`
	DegradedPricing       bool            `json:"degradedPricing"`
}

func newQuoteCostsResponse(costs *quotesvc.QuoteCosts) quoteCostsResponse {
	out := quoteCostsResponse{
		Parameters: parametersResponse{
			MarginPct:             costs.Parameters.MarginPct,
			FinancialRatePct:      costs.Parameters.FinancialRatePct,
			PolicyRatePct:         costs.Parameters.PolicyRatePct,
			PolicyAdminRatePct:    costs.Parameters.PolicyAdminRatePct,
			ContractMonths:        costs.Parameters.ContractMonths,
			PolicyContractMonths:  costs.Parameters.PolicyContractMonths,
			PolicyContractPct:     costs.Parameters.PolicyContractPct,
			UniformChangesPerYear: costs.Parameters.UniformChangesPerYear,
			AvgStayMonths:         costs.Parameters.AvgStayMonths,
			MonthlyHoursStandard:  costs.Parameters.MonthlyHoursStandard,
			SalePriceMonthly:      costs.Parameters.SalePriceMonthly,
			ContractAmount:        costs.Parameters.ContractAmount,
		},
		Uniforms:       make([]catalogLineResponse, 0, len(costs.Uniforms)),
		Exams:          make([]catalogLineResponse, 0, len(costs.Exams)),
		CostItems:      make([]costItemResponse, 0, len(costs.CostItems)),
		Meals:          make([]mealResponse, 0, len(costs.Meals)),
		Vehicles:       make([]vehicleResponse, 0, len(costs.Vehicles)),
		Infrastructure: make([]infrastructureResponse, 0, len(costs.Infrastructure)),
		Summary:        newSummaryResponse(costs.Summary),
	}

	for _, entry := range costs.Uniforms {
		out.Uniforms = append(out.Uniforms, newCatalogLineResponse(entry))
	}
	for _, entry := range costs.Exams {
		out.Exams = append(out.Exams, newCatalogLineResponse(entry))
	}
	for _, entry := range costs.CostItems {
		out.CostItems = append(out.CostItems, costItemResponse{
			catalogLineResponse: newCatalogLineResponse(entry.CatalogLineEntry),
			CalcMode:            entry.CalcMode.String(),
			Quantity:            entry.Quantity,
		})
	}
	for _, meal := range costs.Meals {
		out.Meals = append(out.Meals, mealResponse{
			ID:                optionalID(meal.ID),
			MealType:          meal.MealType,
			UnitPriceOverride: meal.UnitPriceOverride,
			MealsPerDay:       meal.MealsPerDay,
			DaysOfService:     meal.DaysOfService,
			Enabled:           meal.Enabled,
			IsDefault:         meal.IsDefault,
			CatalogItem:       newCatalogItemResponse(meal.CatalogItem),
		})
	}
	for _, vehicle := range costs.Vehicles {
		out.Vehicles = append(out.Vehicles, vehicleResponse{
			ID:          vehicle.ID,
			Name:        vehicle.Name,
			MonthlyCost: vehicle.MonthlyCost,
			Quantity:    vehicle.Quantity,
			Active:      vehicle.Active,
		})
	}
	for _, item := range costs.Infrastructure {
		out.Infrastructure = append(out.Infrastructure, infrastructureResponse{
			ID:          item.ID,
			Name:        item.Name,
			MonthlyCost: item.MonthlyCost,
			Active:      item.Active,
		})
	}

	return out
}

func newCatalogLineResponse(entry quotesvc.CatalogLineEntry) catalogLineResponse {
	return catalogLineResponse{
		ID:                optionalID(entry.ID),
		CatalogItemID:     entry.CatalogItemID,
		UnitPriceOverride: entry.UnitPriceOverride,
		Active:            entry.Active,
		IsDefault:         entry.IsDefault,
		CatalogMissing:    entry.CatalogMissing,
		CatalogItem:       newCatalogItemResponse(entry.CatalogItem),
	}
}

func newCatalogItemResponse(item *models.CatalogItem) *catalogItemResponse {
	if item == nil {
		return nil
	}
	return &catalogItemResponse{
		ID:        item.ID,
		Type:      item.Type.String(),
		Name:      item.Name,
		Unit:      item.Unit.String(),
		BasePrice: item.BasePrice,
	}
}

func newSummaryResponse(summary quotesvc.CostSummary) summaryResponse {
	return summaryResponse{
		TotalGuards:           summary.TotalGuards,
		MonthlyPositions:      summary.MonthlyPositions,
		MonthlyUniforms:       summary.MonthlyUniforms,
		MonthlyExams:          summary.MonthlyExams,
		MonthlyMeals:          summary.MonthlyMeals,
		MonthlyVehicles:       summary.MonthlyVehicles,
		MonthlyInfrastructure: summary.MonthlyInfrastructure,
		MonthlyCostItems:      summary.MonthlyCostItems,
		MonthlyFinancial:      summary.MonthlyFinancial,
		MonthlyPolicy:         summary.MonthlyPolicy,
		MonthlyExtras:         summary.MonthlyExtras,
		MonthlyTotal:          summary.MonthlyTotal,
		SalePriceMonthly:      summary.SalePriceMonthly,
		ContractAmount:        summary.ContractAmount,
		DegradedPricing:       summary.DegradedPricing,
	}
}

// optionalID hides the zero uuid of synthetic default entries that were never
// persisted.
func optionalID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
