package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote is the commercial quote the cost engine operates on. TotalGuards and
// MonthlyCost are cached summary fields refreshed after a successful cost
// replace; the computed CostSummary itself is never persisted.
type Quote struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID    uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index"`
	Name        string          `gorm:"column:name;not null"`
	ClientName  string          `gorm:"column:client_name"`
	TotalGuards int             `gorm:"column:total_guards;not null;default:0"`
	MonthlyCost decimal.Decimal `gorm:"column:monthly_cost;type:numeric(14,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Quote) TableName() string {
	return "quotes"
}
