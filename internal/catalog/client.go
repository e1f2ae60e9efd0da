// Package catalog talks to the remote sweets catalog service.
package catalog

import (
	"context"

	"github.com/rogerio-castellano/sweet-shop/internal/models"
	"github.com/shopspring/decimal"
)

// SweetInput carries the editable fields of a sweet for create and update.
type SweetInput struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Client is the set of catalog operations the view controllers depend on.
type Client interface {
	List(ctx context.Context) ([]models.Sweet, error)
	Create(ctx context.Context, in SweetInput) (models.Sweet, error)
	Update(ctx context.Context, id int64, in SweetInput) (models.Sweet, error)
	Delete(ctx context.Context, id int64) error
	// Restock increments the quantity of id by quantity.
	Restock(ctx context.Context, id int64, quantity int) (models.Sweet, error)
	// Purchase decrements the quantity of id by quantity.
	Purchase(ctx context.Context, id int64, quantity int) (models.Sweet, error)
}
