// Package filter narrows a sweets collection down to what the user searched for.
//
// Apply is pure: it never touches the input slice and always returns a fresh one,
// so the cached collection can be shared with any number of views.
package filter

import (
	"strings"

	"github.com/rogerio-castellano/sweet-shop/internal/models"
	"github.com/shopspring/decimal"
)

// Spec holds the user-chosen constraints. A zero Spec matches everything.
type Spec struct {
	Name     string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// ParseBound turns raw price input into a bound. Empty or non-numeric input means no bound.
func ParseBound(raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &v
}

// Matches reports whether s satisfies every constraint set in spec.
func Matches(s models.Sweet, spec Spec) bool {
	if spec.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(spec.Name)) {
		return false
	}
	if spec.Category != "" && strings.ToLower(s.Category) != strings.ToLower(spec.Category) {
		return false
	}
	if spec.MinPrice != nil && s.Price.LessThan(*spec.MinPrice) {
		return false
	}
	if spec.MaxPrice != nil && s.Price.GreaterThan(*spec.MaxPrice) {
		return false
	}
	return true
}

// Apply returns the sweets matching spec, in input order.
func Apply(items []models.Sweet, spec Spec) []models.Sweet {
	filtered := make([]models.Sweet, 0, len(items))
	for _, s := range items {
		if Matches(s, spec) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// Categories lists the distinct categories of items in order of first appearance.
func Categories(items []models.Sweet) []string {
	seen := make(map[string]struct{}, len(items))
	categories := []string{}
	for _, s := range items {
		if _, ok := seen[s.Category]; ok {
			continue
		}
		seen[s.Category] = struct{}{}
		categories = append(categories, s.Category)
	}
	return categories
}
