package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteMeal is a per-quote meal line. MealType is stored lowercase and is
// the natural key within a quote; price resolution falls back to a catalog
// meal item matched by name when no override is present.
type QuoteMeal struct {
	ID                uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID           uuid.UUID        `gorm:"column:quote_id;type:uuid;not null;uniqueIndex:idx_quote_meal_type"`
	MealType          string           `gorm:"column:meal_type;not null;uniqueIndex:idx_quote_meal_type"`
	UnitPriceOverride *decimal.Decimal `gorm:"column:unit_price_override;type:numeric(14,2)"`
	MealsPerDay       int              `gorm:"column:meals_per_day;not null;default:1"`
	DaysOfService     int              `gorm:"column:days_of_service;not null;default:30"`
	Enabled           bool             `gorm:"column:enabled;not null;default:true"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (QuoteMeal) TableName() string {
	return "quote_meals"
}
