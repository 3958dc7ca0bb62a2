package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteVehicle is a standalone vehicle line; vehicles have no catalog
// defaults and are replaced verbatim on write.
type QuoteVehicle struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID     uuid.UUID       `gorm:"column:quote_id;type:uuid;not null;index"`
	Name        string          `gorm:"column:name;not null"`
	MonthlyCost decimal.Decimal `gorm:"column:monthly_cost;type:numeric(14,2);not null;default:0"`
	Quantity    int             `gorm:"column:quantity;not null;default:1"`
	Active      bool            `gorm:"column:active;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (QuoteVehicle) TableName() string {
	return "quote_vehicles"
}
