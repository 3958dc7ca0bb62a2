package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteExamItem links a quote to a medical exam catalog item.
type QuoteExamItem struct {
	ID                uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID           uuid.UUID        `gorm:"column:quote_id;type:uuid;not null;uniqueIndex:idx_quote_exam_catalog"`
	CatalogItemID     uuid.UUID        `gorm:"column:catalog_item_id;type:uuid;not null;uniqueIndex:idx_quote_exam_catalog"`
	UnitPriceOverride *decimal.Decimal `gorm:"column:unit_price_override;type:numeric(14,2)"`
	Active            bool             `gorm:"column:active;not null;default:true"`
	CatalogItem       *CatalogItem     `gorm:"foreignKey:CatalogItemID"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (QuoteExamItem) TableName() string {
	return "quote_exam_items"
}
