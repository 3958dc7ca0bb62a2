package catalog

import (
	"strings"

	"github.com/custodia-hq/custodia-backend/pkg/db/models"
	"github.com/custodia-hq/custodia-backend/pkg/enums"
	"github.com/google/uuid"
)

// Set is an in-memory view of a tenant's resolved catalog, indexed for the
// lookups the cost pipeline performs. It is built once per request and never
// mutated afterwards.
type Set struct {
	items  []models.CatalogItem
	byID   map[uuid.UUID]models.CatalogItem
	byType map[enums.CatalogItemType][]models.CatalogItem
}

// NewSet indexes the provided catalog items.
func NewSet(items []models.CatalogItem) *Set {
	s := &Set{
		items:  items,
		byID:   make(map[uuid.UUID]models.CatalogItem, len(items)),
		byType: make(map[enums.CatalogItemType][]models.CatalogItem),
	}
	for _, item := range items {
		s.byID[item.ID] = item
		s.byType[item.Type] = append(s.byType[item.Type], item)
	}
	return s
}

// Lookup returns the catalog item by id, or nil when the reference no longer
// resolves (deactivated or deleted items).
func (s *Set) Lookup(id uuid.UUID) *models.CatalogItem {
	if item, ok := s.byID[id]; ok {
		return &item
	}
	return nil
}

// OfType returns all catalog items of the given type.
func (s *Set) OfType(t enums.CatalogItemType) []models.CatalogItem {
	return s.byType[t]
}

// OfTypes returns catalog items whose type is any of the provided ones.
func (s *Set) OfTypes(types ...enums.CatalogItemType) []models.CatalogItem {
	var out []models.CatalogItem
	for _, t := range types {
		out = append(out, s.byType[t]...)
	}
	return out
}

// DefaultsFor returns the items flagged is_default for the given types whose
// id is not already present in the quote's persisted set. Defaults are
// additive only: a persisted row, even an inactive one, counts as "already
// present" and is never overridden or resurrected.
func (s *Set) DefaultsFor(present map[uuid.UUID]struct{}, types ...enums.CatalogItemType) []models.CatalogItem {
	var defaults []models.CatalogItem
	for _, t := range types {
		for _, item := range s.byType[t] {
			if !item.IsDefault {
				continue
			}
			if _, ok := present[item.ID]; ok {
				continue
			}
			defaults = append(defaults, item)
		}
	}
	return defaults
}

// MealByName finds a meal catalog item by case-insensitive name match.
func (s *Set) MealByName(name string) *models.CatalogItem {
	needle := NormalizeMealType(name)
	for _, item := range s.byType[enums.CatalogItemTypeMeal] {
		if NormalizeMealType(item.Name) == needle {
			copied := item
			return &copied
		}
	}
	return nil
}

// NormalizeMealType canonicalizes a meal label for keying and matching.
func NormalizeMealType(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
