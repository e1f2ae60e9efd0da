package models

import "github.com/shopspring/decimal"

func init() {
	// prices travel as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Sweet represents a catalog entry in the sweet shop inventory.
type Sweet struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// DisplayPrice renders the price with two decimals.
func (s Sweet) DisplayPrice() string {
	return s.Price.StringFixed(2)
}
