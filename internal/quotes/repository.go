package quotes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/custodia-hq/custodia-backend/pkg/db/models"
)

// Repository owns the quote cost persistence surface. All replace methods
// expect to run on a transaction handle obtained via WithTx.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a quotes repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) CostRepository {
	return &Repository{db: tx}
}

func (r *Repository) GetQuote(ctx context.Context, quoteID uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	if err := r.db.WithContext(ctx).First(&quote, "id = ?", quoteID).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}

// GetParameters returns the quote's parameter row, or nil when none has been
// written yet.
func (r *Repository) GetParameters(ctx context.Context, quoteID uuid.UUID) (*models.QuoteParameters, error) {
	var params models.QuoteParameters
	err := r.db.WithContext(ctx).First(&params, "quote_id = ?", quoteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &params, nil
}

// UpsertParameters inserts or updates the one-per-quote parameter row keyed
// by quote_id. Rows with a known id are updated in place; fresh rows lean on
// the quote_id unique index to absorb insert races.
func (r *Repository) UpsertParameters(ctx context.Context, params *models.QuoteParameters) error {
	if params.ID != uuid.Nil {
		return r.db.WithContext(ctx).Save(params).Error
	}
	params.ID = uuid.New()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "quote_id"}},
			UpdateAll: true,
		}).
		Create(params).Error
}

func (r *Repository) ListPositions(ctx context.Context, quoteID uuid.UUID) ([]models.QuotePosition, error) {
	var rows []models.QuotePosition
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) ListUniformItems(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteUniformItem, error) {
	var rows []models.QuoteUniformItem
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) ListExamItems(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteExamItem, error) {
	var rows []models.QuoteExamItem
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) ListCostItems(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteCostItem, error) {
	var rows []models.QuoteCostItem
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) ListMeals(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteMeal, error) {
	var rows []models.QuoteMeal
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) ListVehicles(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteVehicle, error) {
	var rows []models.QuoteVehicle
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) ListInfrastructure(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteInfrastructureItem, error) {
	var rows []models.QuoteInfrastructureItem
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// ReplaceUniformItems swaps the quote's uniform rows for the given final set.
func (r *Repository) ReplaceUniformItems(ctx context.Context, quoteID uuid.UUID, rows []models.QuoteUniformItem) error {
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
		rows[i].QuoteID = quoteID
		rows[i].CatalogItem = nil
	}
	return replaceCollection(r.db.WithContext(ctx), quoteID, rows)
}

func (r *Repository) ReplaceExamItems(ctx context.Context, quoteID uuid.UUID, rows []models.QuoteExamItem) error {
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
		rows[i].QuoteID = quoteID
		rows[i].CatalogItem = nil
	}
	return replaceCollection(r.db.WithContext(ctx), quoteID, rows)
}

func (r *Repository) ReplaceCostItems(ctx context.Context, quoteID uuid.UUID, rows []models.QuoteCostItem) error {
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
		rows[i].QuoteID = quoteID
		rows[i].CatalogItem = nil
	}
	return replaceCollection(r.db.WithContext(ctx), quoteID, rows)
}

func (r *Repository) ReplaceMeals(ctx context.Context, quoteID uuid.UUID, rows []models.QuoteMeal) error {
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
		rows[i].QuoteID = quoteID
	}
	return replaceCollection(r.db.WithContext(ctx), quoteID, rows)
}

func (r *Repository) ReplaceVehicles(ctx context.Context, quoteID uuid.UUID, rows []models.QuoteVehicle) error {
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
		rows[i].QuoteID = quoteID
	}
	return replaceCollection(r.db.WithContext(ctx), quoteID, rows)
}

func (r *Repository) ReplaceInfrastructure(ctx context.Context, quoteID uuid.UUID, rows []models.QuoteInfrastructureItem) error {
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
		rows[i].QuoteID = quoteID
	}
	return replaceCollection(r.db.WithContext(ctx), quoteID, rows)
}

// UpdateQuoteTotals refreshes the cached summary scalars on the quote record.
func (r *Repository) UpdateQuoteTotals(ctx context.Context, quoteID uuid.UUID, summary CostSummary) error {
	return r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("id = ?", quoteID).
		Updates(map[string]any{
			"total_guards": summary.TotalGuards,
			"monthly_cost": summary.MonthlyTotal,
		}).Error
}

// UpdateParameterCaches refreshes the solved-price caches on the parameter
// row.
func (r *Repository) UpdateParameterCaches(ctx context.Context, quoteID uuid.UUID, summary CostSummary) error {
	return r.db.WithContext(ctx).
		Model(&models.QuoteParameters{}).
		Where("quote_id = ?", quoteID).
		Updates(map[string]any{
			"sale_price_monthly": summary.SalePriceMonthly,
			"contract_amount":    summary.ContractAmount,
		}).Error
}

// replaceCollection is the shared delete-then-insert step of the full-replace
// write. It must run on a transaction handle.
func replaceCollection[T any](db *gorm.DB, quoteID uuid.UUID, rows []T) error {
	var model T
	if err := db.Where("quote_id = ?", quoteID).Delete(&model).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return db.Omit(clause.Associations).Create(&rows).Error
}
