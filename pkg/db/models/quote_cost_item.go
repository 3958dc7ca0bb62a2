package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/custodia-hq/custodia-backend/pkg/enums"
)

// QuoteCostItem links a quote to a generic cost catalog item (equipment,
// transport, infrastructure, system fees) and to the financial/policy rate
// sources, which are carried here but extracted as markup inputs instead of
// being summed.
type QuoteCostItem struct {
	ID                uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID           uuid.UUID        `gorm:"column:quote_id;type:uuid;not null;uniqueIndex:idx_quote_cost_catalog"`
	CatalogItemID     uuid.UUID        `gorm:"column:catalog_item_id;type:uuid;not null;uniqueIndex:idx_quote_cost_catalog"`
	UnitPriceOverride *decimal.Decimal `gorm:"column:unit_price_override;type:numeric(14,2)"`
	CalcMode          enums.CalcMode   `gorm:"column:calc_mode;not null;default:'per_month'"`
	Quantity          int              `gorm:"column:quantity;not null;default:1"`
	Active            bool             `gorm:"column:active;not null;default:true"`
	CatalogItem       *CatalogItem     `gorm:"foreignKey:CatalogItemID"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (QuoteCostItem) TableName() string {
	return "quote_cost_items"
}
