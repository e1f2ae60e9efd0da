package repo

import (
	"errors"
	"sync"
	"testing"

	"github.com/rogerio-castellano/sweet-shop/internal/filter"
	"github.com/rogerio-castellano/sweet-shop/internal/models"
	"github.com/shopspring/decimal"
)

func newSweet(name, category, price string, qty int) models.Sweet {
	return models.Sweet{Name: name, Category: category, Price: decimal.RequireFromString(price), Quantity: qty}
}

func TestInMemorySweetRepository_CRUD(t *testing.T) {
	r := NewInMemorySweetRepository()

	created, err := r.Create(newSweet("Choco Bar", "Chocolate", "5.50", 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected id 1, got %d", created.ID)
	}

	if _, err := r.Create(newSweet("Choco Bar", "Candy", "1", 1)); !errors.Is(err, ErrDuplicatedValueUnique) {
		t.Errorf("expected ErrDuplicatedValueUnique, got %v", err)
	}

	created.Quantity = 20
	if _, err := r.Update(created); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := r.GetByID(created.ID)
	if got.Quantity != 20 {
		t.Errorf("expected quantity 20, got %d", got.Quantity)
	}

	if err := r.Delete(created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.GetByID(created.ID); !errors.Is(err, ErrSweetNotFound) {
		t.Errorf("expected ErrSweetNotFound, got %v", err)
	}
	if err := r.Delete(created.ID); !errors.Is(err, ErrSweetNotFound) {
		t.Errorf("expected ErrSweetNotFound on second delete, got %v", err)
	}
}

func TestInMemorySweetRepository_AdjustQuantity(t *testing.T) {
	r := NewInMemorySweetRepository()
	s, _ := r.Create(newSweet("Fudge", "Candy", "2", 3))

	tests := []struct {
		name    string
		id      int64
		delta   int
		wantQty int
		wantErr error
	}{
		{name: "purchase", id: s.ID, delta: -2, wantQty: 1},
		{name: "oversell", id: s.ID, delta: -2, wantErr: ErrInvalidQuantityChange},
		{name: "restock", id: s.ID, delta: 9, wantQty: 10},
		{name: "unknown id", id: 42, delta: 1, wantErr: ErrSweetNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.AdjustQuantity(tt.id, tt.delta)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == nil && got.Quantity != tt.wantQty {
				t.Errorf("expected quantity %d, got %d", tt.wantQty, got.Quantity)
			}
		})
	}
}

func TestInMemorySweetRepository_ConcurrentPurchasesNeverOversell(t *testing.T) {
	r := NewInMemorySweetRepository()
	s, _ := r.Create(newSweet("Lollipop", "Candy", "1", 50))

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.AdjustQuantity(s.ID, -1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	got, _ := r.GetByID(s.ID)
	if succeeded != 50 || got.Quantity != 0 {
		t.Errorf("expected 50 purchases and empty stock, got %d purchases and %d left", succeeded, got.Quantity)
	}
}

func TestInMemorySweetRepository_Search(t *testing.T) {
	r := NewInMemorySweetRepository()
	r.Create(newSweet("Choco Bar", "Chocolate", "5.00", 10))
	r.Create(newSweet("Gummy Bears", "Candy", "2.50", 40))
	r.Create(newSweet("Dark Truffle", "Chocolate", "12.00", 3))

	got, err := r.Search(filter.Spec{Category: "chocolate", MaxPrice: filter.ParseBound("10")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Choco Bar" {
		t.Errorf("expected only Choco Bar, got %+v", got)
	}
}
