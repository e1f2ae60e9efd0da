package repo

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/rogerio-castellano/sweet-shop/internal/filter"
	"github.com/rogerio-castellano/sweet-shop/internal/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteSweetRepository implements SweetRepository on a single-writer SQLite database.
// Prices are stored as text to keep them exact and cast for range comparisons.
type SQLiteSweetRepository struct {
	db *sql.DB
	mu sync.Mutex
}

func NewSQLiteSweetRepository(db *sql.DB) *SQLiteSweetRepository {
	return &SQLiteSweetRepository{db: db}
}

func (r *SQLiteSweetRepository) Create(s models.Sweet) (models.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO sweets (name, category, price, quantity) VALUES (?, ?, ?, ?) RETURNING id`,
		s.Name, s.Category, s.Price.String(), s.Quantity).Scan(&s.ID)
	if isSQLiteUniqueViolation(err) {
		return models.Sweet{}, ErrDuplicatedValueUnique
	}
	return s, err
}

func (r *SQLiteSweetRepository) GetAll() ([]models.Sweet, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, category, price, quantity FROM sweets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return scanSweets(rows)
}

func (r *SQLiteSweetRepository) GetByID(id int64) (models.Sweet, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var s models.Sweet
	err := r.db.QueryRowContext(ctx, `SELECT id, name, category, price, quantity FROM sweets WHERE id = ?`, id).
		Scan(&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sweet{}, ErrSweetNotFound
	}
	return s, err
}

func (r *SQLiteSweetRepository) Update(s models.Sweet) (models.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE sweets SET name = ?, category = ?, price = ?, quantity = ?, updated_at = datetime('now') WHERE id = ?`,
		s.Name, s.Category, s.Price.String(), s.Quantity, s.ID)
	if isSQLiteUniqueViolation(err) {
		return models.Sweet{}, ErrDuplicatedValueUnique
	}
	if err != nil {
		return models.Sweet{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Sweet{}, ErrSweetNotFound
	}
	return s, nil
}

func (r *SQLiteSweetRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM sweets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSweetNotFound
	}
	return nil
}

func (r *SQLiteSweetRepository) AdjustQuantity(id int64, delta int) (models.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var s models.Sweet
	err := r.db.QueryRowContext(ctx, `
		UPDATE sweets
		SET quantity = quantity + ?1, updated_at = datetime('now')
		WHERE id = ?2 AND quantity + ?1 >= 0
		RETURNING id, name, category, price, quantity`, delta, id).
		Scan(&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity)

	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := r.GetByID(id); getErr != nil {
			return models.Sweet{}, getErr
		}
		return models.Sweet{}, ErrInvalidQuantityChange
	}
	return s, err
}

func (r *SQLiteSweetRepository) Search(spec filter.Spec) ([]models.Sweet, error) {
	query := `SELECT id, name, category, price, quantity FROM sweets WHERE 1=1`
	args := []any{}

	if spec.Name != "" {
		query += ` AND instr(LOWER(name), LOWER(?)) > 0`
		args = append(args, spec.Name)
	}
	if spec.Category != "" {
		query += ` AND LOWER(category) = LOWER(?)`
		args = append(args, spec.Category)
	}
	if spec.MinPrice != nil {
		query += ` AND CAST(price AS REAL) >= ?`
		args = append(args, spec.MinPrice.InexactFloat64())
	}
	if spec.MaxPrice != nil {
		query += ` AND CAST(price AS REAL) <= ?`
		args = append(args, spec.MaxPrice.InexactFloat64())
	}
	query += ` ORDER BY id`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanSweets(rows)
}

func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
