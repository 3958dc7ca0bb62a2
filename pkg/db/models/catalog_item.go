package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/custodia-hq/custodia-backend/pkg/enums"
)

// CatalogItem is a tenant- or platform-level priced SKU referenced by quotes.
// A nil TenantID marks a global item shared across all tenants.
type CatalogItem struct {
	ID                uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID          *uuid.UUID            `gorm:"column:tenant_id;type:uuid;index"`
	Type              enums.CatalogItemType `gorm:"column:type;not null;index"`
	Name              string                `gorm:"column:name;not null"`
	Unit              enums.BillingUnit     `gorm:"column:unit;not null;default:'month'"`
	BasePrice         decimal.Decimal       `gorm:"column:base_price;type:numeric(14,2);not null;default:0"`
	IsDefault         bool                  `gorm:"column:is_default;not null;default:false"`
	Active            bool                  `gorm:"column:active;not null;default:true"`
	DefaultVisibility string                `gorm:"column:default_visibility;not null;default:'visible'"`
	CreatedAt         time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (CatalogItem) TableName() string {
	return "catalog_items"
}
