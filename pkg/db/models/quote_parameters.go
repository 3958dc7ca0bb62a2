package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteParameters holds the one-per-quote pricing knobs. Percentage columns
// accept either whole percents (20) or fractions (0.20); readers must pass
// them through quotes.NormalizeRate before use. SalePriceMonthly and
// ContractAmount are caches refreshed after a successful replace.
type QuoteParameters struct {
	ID                    uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID               uuid.UUID       `gorm:"column:quote_id;type:uuid;not null;uniqueIndex"`
	MarginPct             decimal.Decimal `gorm:"column:margin_pct;type:numeric(9,4);not null;default:0"`
	FinancialRatePct      decimal.Decimal `gorm:"column:financial_rate_pct;type:numeric(9,4);not null;default:0"`
	PolicyRatePct         decimal.Decimal `gorm:"column:policy_rate_pct;type:numeric(9,4);not null;default:0"`
	PolicyAdminRatePct    decimal.Decimal `gorm:"column:policy_admin_rate_pct;type:numeric(9,4);not null;default:0"`
	ContractMonths        int             `gorm:"column:contract_months;not null;default:12"`
	PolicyContractMonths  int             `gorm:"column:policy_contract_months;not null;default:12"`
	PolicyContractPct     decimal.Decimal `gorm:"column:policy_contract_pct;type:numeric(9,4);not null;default:100"`
	UniformChangesPerYear int             `gorm:"column:uniform_changes_per_year;not null;default:0"`
	AvgStayMonths         decimal.Decimal `gorm:"column:avg_stay_months;type:numeric(9,2);not null;default:0"`
	MonthlyHoursStandard  decimal.Decimal `gorm:"column:monthly_hours_standard;type:numeric(9,2);not null;default:0"`
	SalePriceMonthly      decimal.Decimal `gorm:"column:sale_price_monthly;type:numeric(14,2);not null;default:0"`
	ContractAmount        decimal.Decimal `gorm:"column:contract_amount;type:numeric(14,2);not null;default:0"`
	CreatedAt             time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (QuoteParameters) TableName() string {
	return "quote_parameters"
}
