package quotes

import (
	"github.com/google/uuid"

	"github.com/custodia-hq/custodia-backend/internal/catalog"
	"github.com/custodia-hq/custodia-backend/pkg/db/models"
	"github.com/custodia-hq/custodia-backend/pkg/enums"
)

// resolveUniformEntries merges persisted uniform rows with the catalog
// defaults not yet present on the quote. Persisted rows keep their stored
// state (including explicit opt-outs); defaults arrive enabled with no
// override.
func resolveUniformEntries(rows []models.QuoteUniformItem, cat *catalog.Set) []CatalogLineEntry {
	entries := make([]CatalogLineEntry, 0, len(rows))
	present := make(map[uuid.UUID]struct{}, len(rows))

	for _, row := range rows {
		item := cat.Lookup(row.CatalogItemID)
		entries = append(entries, CatalogLineEntry{
			ID:                row.ID,
			CatalogItemID:     row.CatalogItemID,
			UnitPriceOverride: row.UnitPriceOverride,
			Active:            row.Active,
			CatalogItem:       item,
			CatalogMissing:    item == nil,
		})
		present[row.CatalogItemID] = struct{}{}
	}

	for _, item := range cat.DefaultsFor(present, enums.CatalogItemTypeUniform) {
		copied := item
		entries = append(entries, CatalogLineEntry{
			CatalogItemID: item.ID,
			Active:        true,
			CatalogItem:   &copied,
			IsDefault:     true,
		})
	}
	return entries
}

func resolveExamEntries(rows []models.QuoteExamItem, cat *catalog.Set) []CatalogLineEntry {
	entries := make([]CatalogLineEntry, 0, len(rows))
	present := make(map[uuid.UUID]struct{}, len(rows))

	for _, row := range rows {
		item := cat.Lookup(row.CatalogItemID)
		entries = append(entries, CatalogLineEntry{
			ID:                row.ID,
			CatalogItemID:     row.CatalogItemID,
			UnitPriceOverride: row.UnitPriceOverride,
			Active:            row.Active,
			CatalogItem:       item,
			CatalogMissing:    item == nil,
		})
		present[row.CatalogItemID] = struct{}{}
	}

	for _, item := range cat.DefaultsFor(present, enums.CatalogItemTypeExam) {
		copied := item
		entries = append(entries, CatalogLineEntry{
			CatalogItemID: item.ID,
			Active:        true,
			CatalogItem:   &copied,
			IsDefault:     true,
		})
	}
	return entries
}

// resolveCostItemEntries covers the whole generic cost bucket, including the
// financial and policy rate sources.
func resolveCostItemEntries(rows []models.QuoteCostItem, cat *catalog.Set) []CostItemEntry {
	entries := make([]CostItemEntry, 0, len(rows))
	present := make(map[uuid.UUID]struct{}, len(rows))

	for _, row := range rows {
		item := cat.Lookup(row.CatalogItemID)
		entries = append(entries, CostItemEntry{
			CatalogLineEntry: CatalogLineEntry{
				ID:                row.ID,
				CatalogItemID:     row.CatalogItemID,
				UnitPriceOverride: row.UnitPriceOverride,
				Active:            row.Active,
				CatalogItem:       item,
				CatalogMissing:    item == nil,
			},
			CalcMode: row.CalcMode,
			Quantity: row.Quantity,
		})
		present[row.CatalogItemID] = struct{}{}
	}

	for _, item := range cat.DefaultsFor(present, enums.CostItemTypes()...) {
		copied := item
		entries = append(entries, CostItemEntry{
			CatalogLineEntry: CatalogLineEntry{
				CatalogItemID: item.ID,
				Active:        true,
				CatalogItem:   &copied,
				IsDefault:     true,
			},
			CalcMode: enums.CalcModePerMonth,
			Quantity: 1,
		})
	}
	return entries
}

// resolveMealEntries keys meals by normalized meal type and matches each one
// to a catalog meal by name for fallback pricing.
func resolveMealEntries(rows []models.QuoteMeal, cat *catalog.Set) []MealEntry {
	entries := make([]MealEntry, 0, len(rows))
	present := make(map[string]struct{}, len(rows))

	for _, row := range rows {
		entries = append(entries, MealEntry{
			ID:                row.ID,
			MealType:          row.MealType,
			UnitPriceOverride: row.UnitPriceOverride,
			MealsPerDay:       row.MealsPerDay,
			DaysOfService:     row.DaysOfService,
			Enabled:           row.Enabled,
			CatalogItem:       cat.MealByName(row.MealType),
		})
		present[catalog.NormalizeMealType(row.MealType)] = struct{}{}
	}

	for _, item := range cat.OfType(enums.CatalogItemTypeMeal) {
		if !item.IsDefault {
			continue
		}
		if _, ok := present[catalog.NormalizeMealType(item.Name)]; ok {
			continue
		}
		copied := item
		entries = append(entries, MealEntry{
			MealType:      catalog.NormalizeMealType(item.Name),
			MealsPerDay:   1,
			DaysOfService: 30,
			Enabled:       true,
			CatalogItem:   &copied,
			IsDefault:     true,
		})
	}
	return entries
}
