package quotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/custodia-hq/custodia-backend/pkg/db/models"
	"github.com/custodia-hq/custodia-backend/pkg/enums"
)

// CostRepository defines persistence operations for the quote cost tables.
type CostRepository interface {
	WithTx(tx *gorm.DB) CostRepository
	GetQuote(ctx context.Context, quoteID uuid.UUID) (*models.Quote, error)
	GetParameters(ctx context.Context, quoteID uuid.UUID) (*models.QuoteParameters, error)
	UpsertParameters(ctx context.Context, params *models.QuoteParameters) error
	ListPositions(ctx context.Context, quoteID uuid.UUID) ([]models.QuotePosition, error)
	ListUniformItems(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteUniformItem, error)
	ListExamItems(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteExamItem, error)
	ListCostItems(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteCostItem, error)
	ListMeals(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteMeal, error)
	ListVehicles(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteVehicle, error)
	ListInfrastructure(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteInfrastructureItem, error)
	ReplaceUniformItems(ctx context.Context, quoteID uuid.UUID, rows []models.QuoteUniformItem) error
	ReplaceExamItems(ctx context.Context, quoteID uuid.UUID, rows []models.QuoteExamItem) error
	ReplaceCostItems(ctx context.Context, quoteID uuid.UUID, rows []models.QuoteCostItem) error
	ReplaceMeals(ctx context.Context, quoteID uuid.UUID, rows []models.QuoteMeal) error
	ReplaceVehicles(ctx context.Context, quoteID uuid.UUID, rows []models.QuoteVehicle) error
	ReplaceInfrastructure(ctx context.Context, quoteID uuid.UUID, rows []models.QuoteInfrastructureItem) error
	UpdateQuoteTotals(ctx context.Context, quoteID uuid.UUID, summary CostSummary) error
	UpdateParameterCaches(ctx context.Context, quoteID uuid.UUID, summary CostSummary) error
}

type catalogLoader interface {
	ListForTenant(ctx context.Context, tenantID uuid.UUID, types ...enums.CatalogItemType) ([]models.CatalogItem, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service is the cost engine surface exposed to the API layer.
type Service interface {
	GetQuote(ctx context.Context, quoteID uuid.UUID) (*models.Quote, error)
	GetCosts(ctx context.Context, quoteID uuid.UUID) (*QuoteCosts, error)
	ReplaceCosts(ctx context.Context, quoteID uuid.UUID, input ReplaceCostsInput) (*QuoteCosts, error)
}
