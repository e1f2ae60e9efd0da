package repo_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rogerio-castellano/sweet-shop/internal/db"
	"github.com/rogerio-castellano/sweet-shop/internal/filter"
	"github.com/rogerio-castellano/sweet-shop/internal/models"
	"github.com/rogerio-castellano/sweet-shop/internal/repo"
	"github.com/shopspring/decimal"
)

func openSQLite(t *testing.T) (*repo.SQLiteSweetRepository, *repo.SQLiteUserRepository) {
	t.Helper()
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "shop.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return repo.NewSQLiteSweetRepository(conn), repo.NewSQLiteUserRepository(conn)
}

func TestSQLiteSweetRepository(t *testing.T) {
	sweets, _ := openSQLite(t)

	choco, err := sweets.Create(models.Sweet{Name: "Choco Bar", Category: "Chocolate", Price: decimal.RequireFromString("5.50"), Quantity: 10})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := sweets.Create(models.Sweet{Name: "Gummy Bears", Category: "Candy", Price: decimal.RequireFromString("2.25"), Quantity: 1}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := sweets.Create(models.Sweet{Name: "Choco Bar", Category: "Candy", Price: decimal.NewFromInt(1)}); !errors.Is(err, repo.ErrDuplicatedValueUnique) {
		t.Errorf("expected ErrDuplicatedValueUnique, got %v", err)
	}

	got, err := sweets.GetByID(choco.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Price.Equal(decimal.RequireFromString("5.5")) {
		t.Errorf("expected price 5.50, got %s", got.Price)
	}

	if _, err := sweets.AdjustQuantity(choco.ID, -11); !errors.Is(err, repo.ErrInvalidQuantityChange) {
		t.Errorf("expected ErrInvalidQuantityChange, got %v", err)
	}
	if _, err := sweets.AdjustQuantity(999, 1); !errors.Is(err, repo.ErrSweetNotFound) {
		t.Errorf("expected ErrSweetNotFound, got %v", err)
	}
	adjusted, err := sweets.AdjustQuantity(choco.ID, -4)
	if err != nil || adjusted.Quantity != 6 {
		t.Errorf("expected quantity 6, got %d (%v)", adjusted.Quantity, err)
	}

	found, err := sweets.Search(filter.Spec{Name: "CHOCO", MinPrice: filter.ParseBound("5")})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].ID != choco.ID {
		t.Errorf("expected Choco Bar, got %+v", found)
	}

	if err := sweets.Delete(choco.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	all, _ := sweets.GetAll()
	if len(all) != 1 {
		t.Errorf("expected 1 sweet left, got %d", len(all))
	}
}

func TestSQLiteUserRepository(t *testing.T) {
	_, users := openSQLite(t)

	u, err := users.CreateUser(models.User{Username: "alice", PasswordHash: "hash", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := users.CreateUser(models.User{Username: "alice", PasswordHash: "x", Role: models.RoleUser}); !errors.Is(err, repo.ErrDuplicatedValueUnique) {
		t.Errorf("expected ErrDuplicatedValueUnique, got %v", err)
	}

	got, err := users.GetByUsername("alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != u.ID || got.Role != models.RoleAdmin {
		t.Errorf("unexpected user %+v", got)
	}
	if _, err := users.GetByUsername("bob"); !errors.Is(err, repo.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSQLiteSearchMatchesNameLiterally(t *testing.T) {
	sqlite, _ := openSQLite(t)
	memory := repo.NewInMemorySweetRepository()

	for _, s := range []models.Sweet{
		{Name: "Choco Bar", Category: "Chocolate", Price: decimal.RequireFromString("5.50"), Quantity: 10},
		{Name: "Gummy Bears", Category: "Candy", Price: decimal.RequireFromString("2.25"), Quantity: 1},
		{Name: "70% Dark", Category: "Chocolate", Price: decimal.RequireFromString("4.00"), Quantity: 3},
		{Name: "Salt_Water Taffy", Category: "Candy", Price: decimal.RequireFromString("1.75"), Quantity: 8},
	} {
		if _, err := sqlite.Create(s); err != nil {
			t.Fatalf("sqlite create: %v", err)
		}
		if _, err := memory.Create(s); err != nil {
			t.Fatalf("memory create: %v", err)
		}
	}

	tests := []struct {
		query string
		want  int
	}{
		{"%", 1},
		{"_", 1},
		{"70%", 1},
		{"t_w", 1},
		{"b%r", 0},
		{"BAR", 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			fromSQLite, err := sqlite.Search(filter.Spec{Name: tt.query})
			if err != nil {
				t.Fatalf("sqlite search: %v", err)
			}
			fromMemory, _ := memory.Search(filter.Spec{Name: tt.query})

			if len(fromSQLite) != tt.want {
				t.Errorf("sqlite: expected %d matches, got %d", tt.want, len(fromSQLite))
			}
			if len(fromMemory) != len(fromSQLite) {
				t.Errorf("memory returned %d matches, sqlite %d", len(fromMemory), len(fromSQLite))
			}
		})
	}
}
