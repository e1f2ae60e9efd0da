package repo

import (
	"github.com/rogerio-castellano/sweet-shop/internal/models"
	"github.com/shopspring/decimal"
)

type StockLeader struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Stats struct {
	TotalSweets    int             `json:"total_sweets"`
	TotalUnits     int             `json:"total_units"`
	OutOfStock     int             `json:"out_of_stock"`
	Categories     int             `json:"categories"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	MostStocked    StockLeader     `json:"most_stocked"`
}

// Summarize aggregates the collection. Ties for most stocked keep the lowest id.
func Summarize(sweets []models.Sweet) Stats {
	st := Stats{InventoryValue: decimal.Zero}
	categories := map[string]struct{}{}

	for _, s := range sweets {
		st.TotalSweets++
		st.TotalUnits += s.Quantity
		if s.Quantity == 0 {
			st.OutOfStock++
		}
		categories[s.Category] = struct{}{}
		st.InventoryValue = st.InventoryValue.Add(s.Price.Mul(decimal.NewFromInt(int64(s.Quantity))))
		if s.Quantity > st.MostStocked.Quantity {
			st.MostStocked = StockLeader{Name: s.Name, Quantity: s.Quantity}
		}
	}
	st.Categories = len(categories)
	return st
}
