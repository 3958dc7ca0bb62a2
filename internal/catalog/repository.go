package catalog

import (
	"context"

	"github.com/custodia-hq/custodia-backend/pkg/db/models"
	"github.com/custodia-hq/custodia-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes read-only catalog lookups. The cost engine never mutates
// catalog rows; catalog administration is a separate surface.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListForTenant returns the active catalog visible to a tenant: its own items
// plus the global (tenant-less) ones. When types are provided the result is
// restricted to them.
func (r *Repository) ListForTenant(ctx context.Context, tenantID uuid.UUID, types ...enums.CatalogItemType) ([]models.CatalogItem, error) {
	query := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("tenant_id = ? OR tenant_id IS NULL", tenantID)

	if len(types) > 0 {
		query = query.Where("type IN ?", types)
	}

	var items []models.CatalogItem
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
