package quotes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/custodia-hq/custodia-backend/internal/catalog"
	"github.com/custodia-hq/custodia-backend/pkg/db"
	"github.com/custodia-hq/custodia-backend/pkg/db/models"
	"github.com/custodia-hq/custodia-backend/pkg/enums"
	pkgerrors "github.com/custodia-hq/custodia-backend/pkg/errors"
	"github.com/custodia-hq/custodia-backend/pkg/logger"
)

type service struct {
	repo    CostRepository
	catalog catalogLoader
	tx      txRunner
	log     *logger.Logger
}

// NewService wires the cost engine. All dependencies are required.
func NewService(repo CostRepository, cat catalogLoader, tx txRunner, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quotes: repository is required")
	}
	if cat == nil {
		return nil, fmt.Errorf("quotes: catalog loader is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("quotes: transaction runner is required")
	}
	if log == nil {
		return nil, fmt.Errorf("quotes: logger is required")
	}
	return &service{repo: repo, catalog: cat, tx: tx, log: log}, nil
}

// costState is everything the pipeline loads for one quote: persisted rows
// plus the tenant's indexed catalog.
type costState struct {
	paramsRow      *models.QuoteParameters
	positions      []models.QuotePosition
	uniforms       []models.QuoteUniformItem
	exams          []models.QuoteExamItem
	costItems      []models.QuoteCostItem
	meals          []models.QuoteMeal
	vehicles       []models.QuoteVehicle
	infrastructure []models.QuoteInfrastructureItem
	catalog        *catalog.Set
}

// effectiveParameters falls back to sane defaults when no parameter row has
// been written yet; the read path must not require a prior write.
func (s costState) effectiveParameters(quoteID uuid.UUID) models.QuoteParameters {
	if s.paramsRow != nil {
		return *s.paramsRow
	}
	return defaultParameters(quoteID)
}

func defaultParameters(quoteID uuid.UUID) models.QuoteParameters {
	return models.QuoteParameters{
		QuoteID:              quoteID,
		ContractMonths:       12,
		PolicyContractMonths: 12,
		PolicyContractPct:    decimal.NewFromInt(100),
	}
}

func (s *service) GetQuote(ctx context.Context, quoteID uuid.UUID) (*models.Quote, error) {
	quote, err := s.repo.GetQuote(ctx, quoteID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading quote")
	}
	return quote, nil
}

// GetCosts runs the read pipeline: load state, resolve catalog defaults,
// compute the summary.
func (s *service) GetCosts(ctx context.Context, quoteID uuid.UUID) (*QuoteCosts, error) {
	quote, err := s.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	state, err := s.loadState(ctx, quote)
	if err != nil {
		return nil, err
	}
	return s.assemble(quote, state), nil
}

// ReplaceCosts is the write path: merge the submitted desired state with
// persisted rows and catalog defaults, replace everything in one
// transaction, then re-run the read pipeline and refresh the cached totals.
func (s *service) ReplaceCosts(ctx context.Context, quoteID uuid.UUID, input ReplaceCostsInput) (*QuoteCosts, error) {
	quote, err := s.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	state, err := s.loadState(ctx, quote)
	if err != nil {
		return nil, err
	}

	finalUniforms := mergeUniformRows(state.uniforms, input.Uniforms, state.catalog)
	finalExams := mergeExamRows(state.exams, input.Exams, state.catalog)
	finalCostItems := mergeCostItemRows(state.costItems, input.CostItems, state.catalog)
	finalMeals := mergeMealRows(state.meals, input.Meals, state.catalog)
	finalVehicles := buildVehicleRows(input.Vehicles)
	finalInfrastructure := buildInfrastructureRows(input.Infrastructure)
	params := buildParameters(state.paramsRow, input.Parameters, quoteID)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		r := s.repo.WithTx(tx)
		if params != nil {
			if err := r.UpsertParameters(ctx, params); err != nil {
				return err
			}
		}
		if err := r.ReplaceUniformItems(ctx, quoteID, finalUniforms); err != nil {
			return err
		}
		if err := r.ReplaceExamItems(ctx, quoteID, finalExams); err != nil {
			return err
		}
		if err := r.ReplaceCostItems(ctx, quoteID, finalCostItems); err != nil {
			return err
		}
		if err := r.ReplaceMeals(ctx, quoteID, finalMeals); err != nil {
			return err
		}
		if err := r.ReplaceVehicles(ctx, quoteID, finalVehicles); err != nil {
			return err
		}
		return r.ReplaceInfrastructure(ctx, quoteID, finalInfrastructure)
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "conflicting quote cost rows")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replacing quote costs")
	}

	costs, err := s.GetCosts(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	s.refreshCaches(ctx, quoteID, costs)
	return costs, nil
}

// refreshCaches writes the computed totals back onto the quote and parameter
// rows. This is best effort: the replace already committed, so a failure here
// only leaves stale cached scalars behind.
func (s *service) refreshCaches(ctx context.Context, quoteID uuid.UUID, costs *QuoteCosts) {
	if err := s.repo.UpdateQuoteTotals(ctx, quoteID, costs.Summary); err != nil {
		s.log.Error(ctx, "refreshing quote totals cache", err)
	} else {
		costs.Quote.TotalGuards = costs.Summary.TotalGuards
		costs.Quote.MonthlyCost = costs.Summary.MonthlyTotal
	}
	if err := s.repo.UpdateParameterCaches(ctx, quoteID, costs.Summary); err != nil {
		s.log.Error(ctx, "refreshing parameter caches", err)
	} else {
		costs.Parameters.SalePriceMonthly = costs.Summary.SalePriceMonthly
		costs.Parameters.ContractAmount = costs.Summary.ContractAmount
	}
}

func (s *service) loadState(ctx context.Context, quote *models.Quote) (costState, error) {
	var state costState
	var err error

	if state.paramsRow, err = s.repo.GetParameters(ctx, quote.ID); err != nil {
		return state, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading quote parameters")
	}
	if state.positions, err = s.repo.ListPositions(ctx, quote.ID); err != nil {
		return state, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading positions")
	}
	if state.uniforms, err = s.repo.ListUniformItems(ctx, quote.ID); err != nil {
		return state, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading uniform items")
	}
	if state.exams, err = s.repo.ListExamItems(ctx, quote.ID); err != nil {
		return state, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading exam items")
	}
	if state.costItems, err = s.repo.ListCostItems(ctx, quote.ID); err != nil {
		return state, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cost items")
	}
	if state.meals, err = s.repo.ListMeals(ctx, quote.ID); err != nil {
		return state, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading meals")
	}
	if state.vehicles, err = s.repo.ListVehicles(ctx, quote.ID); err != nil {
		return state, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading vehicles")
	}
	if state.infrastructure, err = s.repo.ListInfrastructure(ctx, quote.ID); err != nil {
		return state, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading infrastructure items")
	}

	types := append(enums.CostItemTypes(),
		enums.CatalogItemTypeUniform,
		enums.CatalogItemTypeExam,
		enums.CatalogItemTypeMeal,
	)
	items, err := s.catalog.ListForTenant(ctx, quote.TenantID, types...)
	if err != nil {
		return state, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading tenant catalog")
	}
	state.catalog = catalog.NewSet(items)
	return state, nil
}

func (s *service) assemble(quote *models.Quote, state costState) *QuoteCosts {
	params := state.effectiveParameters(quote.ID)

	uniforms := resolveUniformEntries(state.uniforms, state.catalog)
	exams := resolveExamEntries(state.exams, state.catalog)
	costItems := resolveCostItemEntries(state.costItems, state.catalog)
	meals := resolveMealEntries(state.meals, state.catalog)

	summary := ComputeSummary(SummaryInput{
		Parameters:     params,
		Positions:      state.positions,
		Uniforms:       uniforms,
		Exams:          exams,
		CostItems:      costItems,
		Meals:          meals,
		Vehicles:       state.vehicles,
		Infrastructure: state.infrastructure,
	})

	return &QuoteCosts{
		Quote:          *quote,
		Parameters:     params,
		Uniforms:       uniforms,
		Exams:          exams,
		CostItems:      costItems,
		Meals:          meals,
		Vehicles:       state.vehicles,
		Infrastructure: state.infrastructure,
		Summary:        summary,
	}
}

// buildParameters decides the parameter write: nil input keeps the existing
// row untouched, except on the very first write where a default row is
// created so the one-per-quote invariant holds from then on.
func buildParameters(existing *models.QuoteParameters, in *ParametersInput, quoteID uuid.UUID) *models.QuoteParameters {
	if in == nil {
		if existing != nil {
			return nil
		}
		params := defaultParameters(quoteID)
		return &params
	}

	params := defaultParameters(quoteID)
	if existing != nil {
		params = *existing
	}
	params.QuoteID = quoteID
	params.MarginPct = in.MarginPct
	params.FinancialRatePct = in.FinancialRatePct
	params.PolicyRatePct = in.PolicyRatePct
	params.PolicyAdminRatePct = in.PolicyAdminRatePct
	params.ContractMonths = in.ContractMonths
	params.PolicyContractMonths = in.PolicyContractMonths
	params.PolicyContractPct = in.PolicyContractPct
	params.UniformChangesPerYear = in.UniformChangesPerYear
	params.AvgStayMonths = in.AvgStayMonths
	params.MonthlyHoursStandard = in.MonthlyHoursStandard
	return &params
}

func catalogKey(id uuid.UUID) string {
	return id.String()
}

func mergeUniformRows(persisted []models.QuoteUniformItem, submitted []CatalogLineInput, cat *catalog.Set) []models.QuoteUniformItem {
	sub := make([]models.QuoteUniformItem, 0, len(submitted))
	for _, in := range submitted {
		sub = append(sub, models.QuoteUniformItem{
			CatalogItemID:     in.CatalogItemID,
			UnitPriceOverride: in.UnitPriceOverride,
			Active:            in.Active,
		})
	}

	var defaults []models.QuoteUniformItem
	for _, item := range cat.OfType(enums.CatalogItemTypeUniform) {
		if !item.IsDefault {
			continue
		}
		defaults = append(defaults, models.QuoteUniformItem{CatalogItemID: item.ID, Active: true})
	}

	return mergeForReplace(persisted, sub, defaults,
		func(r models.QuoteUniformItem) string { return catalogKey(r.CatalogItemID) },
		func(existing, incoming models.QuoteUniformItem) models.QuoteUniformItem {
			incoming.ID = existing.ID
			incoming.CreatedAt = existing.CreatedAt
			return incoming
		})
}

func mergeExamRows(persisted []models.QuoteExamItem, submitted []CatalogLineInput, cat *catalog.Set) []models.QuoteExamItem {
	sub := make([]models.QuoteExamItem, 0, len(submitted))
	for _, in := range submitted {
		sub = append(sub, models.QuoteExamItem{
			CatalogItemID:     in.CatalogItemID,
			UnitPriceOverride: in.UnitPriceOverride,
			Active:            in.Active,
		})
	}

	var defaults []models.QuoteExamItem
	for _, item := range cat.OfType(enums.CatalogItemTypeExam) {
		if !item.IsDefault {
			continue
		}
		defaults = append(defaults, models.QuoteExamItem{CatalogItemID: item.ID, Active: true})
	}

	return mergeForReplace(persisted, sub, defaults,
		func(r models.QuoteExamItem) string { return catalogKey(r.CatalogItemID) },
		func(existing, incoming models.QuoteExamItem) models.QuoteExamItem {
			incoming.ID = existing.ID
			incoming.CreatedAt = existing.CreatedAt
			return incoming
		})
}

func mergeCostItemRows(persisted []models.QuoteCostItem, submitted []CostItemInput, cat *catalog.Set) []models.QuoteCostItem {
	sub := make([]models.QuoteCostItem, 0, len(submitted))
	for _, in := range submitted {
		mode := in.CalcMode
		if !mode.IsValid() {
			mode = enums.CalcModePerMonth
		}
		qty := in.Quantity
		if qty <= 0 {
			qty = 1
		}
		sub = append(sub, models.QuoteCostItem{
			CatalogItemID:     in.CatalogItemID,
			UnitPriceOverride: in.UnitPriceOverride,
			CalcMode:          mode,
			Quantity:          qty,
			Active:            in.Active,
		})
	}

	var defaults []models.QuoteCostItem
	for _, item := range cat.OfTypes(enums.CostItemTypes()...) {
		if !item.IsDefault {
			continue
		}
		defaults = append(defaults, models.QuoteCostItem{
			CatalogItemID: item.ID,
			CalcMode:      enums.CalcModePerMonth,
			Quantity:      1,
			Active:        true,
		})
	}

	return mergeForReplace(persisted, sub, defaults,
		func(r models.QuoteCostItem) string { return catalogKey(r.CatalogItemID) },
		func(existing, incoming models.QuoteCostItem) models.QuoteCostItem {
			incoming.ID = existing.ID
			incoming.CreatedAt = existing.CreatedAt
			return incoming
		})
}

func mergeMealRows(persisted []models.QuoteMeal, submitted []MealInput, cat *catalog.Set) []models.QuoteMeal {
	sub := make([]models.QuoteMeal, 0, len(submitted))
	for _, in := range submitted {
		mealsPerDay := in.MealsPerDay
		if mealsPerDay <= 0 {
			mealsPerDay = 1
		}
		days := in.DaysOfService
		if days <= 0 {
			days = 30
		}
		sub = append(sub, models.QuoteMeal{
			MealType:          catalog.NormalizeMealType(in.MealType),
			UnitPriceOverride: in.UnitPriceOverride,
			MealsPerDay:       mealsPerDay,
			DaysOfService:     days,
			Enabled:           in.Enabled,
		})
	}

	var defaults []models.QuoteMeal
	for _, item := range cat.OfType(enums.CatalogItemTypeMeal) {
		if !item.IsDefault {
			continue
		}
		defaults = append(defaults, models.QuoteMeal{
			MealType:      catalog.NormalizeMealType(item.Name),
			MealsPerDay:   1,
			DaysOfService: 30,
			Enabled:       true,
		})
	}

	return mergeForReplace(persisted, sub, defaults,
		func(r models.QuoteMeal) string { return catalog.NormalizeMealType(r.MealType) },
		func(existing, incoming models.QuoteMeal) models.QuoteMeal {
			incoming.ID = existing.ID
			incoming.CreatedAt = existing.CreatedAt
			return incoming
		})
}

// Vehicles and infrastructure carry no catalog defaults; the submitted set is
// the final set, with client-supplied ids preserving row identity.
func buildVehicleRows(inputs []VehicleInput) []models.QuoteVehicle {
	rows := make([]models.QuoteVehicle, 0, len(inputs))
	for _, in := range inputs {
		row := models.QuoteVehicle{
			Name:        in.Name,
			MonthlyCost: in.MonthlyCost,
			Quantity:    in.Quantity,
			Active:      in.Active,
		}
		if row.Quantity <= 0 {
			row.Quantity = 1
		}
		if in.ID != nil {
			row.ID = *in.ID
		}
		rows = append(rows, row)
	}
	return rows
}

func buildInfrastructureRows(inputs []InfrastructureInput) []models.QuoteInfrastructureItem {
	rows := make([]models.QuoteInfrastructureItem, 0, len(inputs))
	for _, in := range inputs {
		row := models.QuoteInfrastructureItem{
			Name:        in.Name,
			MonthlyCost: in.MonthlyCost,
			Active:      in.Active,
		}
		if in.ID != nil {
			row.ID = *in.ID
		}
		rows = append(rows, row)
	}
	return rows
}
