package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotePosition is a staffing position already priced upstream; the cost
// engine only reads NumGuards and MonthlyCost from it.
type QuotePosition struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID     uuid.UUID       `gorm:"column:quote_id;type:uuid;not null;index"`
	Name        string          `gorm:"column:name;not null"`
	NumGuards   int             `gorm:"column:num_guards;not null;default:0"`
	MonthlyCost decimal.Decimal `gorm:"column:monthly_cost;type:numeric(14,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (QuotePosition) TableName() string {
	return "quote_positions"
}
