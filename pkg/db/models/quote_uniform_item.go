package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteUniformItem links a quote to a uniform catalog item. An inactive row
// is an explicit opt-out: the default resolver must not re-add the item.
type QuoteUniformItem struct {
	ID                uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID           uuid.UUID        `gorm:"column:quote_id;type:uuid;not null;uniqueIndex:idx_quote_uniform_catalog"`
	CatalogItemID     uuid.UUID        `gorm:"column:catalog_item_id;type:uuid;not null;uniqueIndex:idx_quote_uniform_catalog"`
	UnitPriceOverride *decimal.Decimal `gorm:"column:unit_price_override;type:numeric(14,2)"`
	Active            bool             `gorm:"column:active;not null;default:true"`
	CatalogItem       *CatalogItem     `gorm:"foreignKey:CatalogItemID"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (QuoteUniformItem) TableName() string {
	return "quote_uniform_items"
}
