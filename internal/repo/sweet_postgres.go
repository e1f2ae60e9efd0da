package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rogerio-castellano/sweet-shop/internal/filter"
	"github.com/rogerio-castellano/sweet-shop/internal/models"
)

const pgUniqueViolation = "23505"

type PostgresSweetRepository struct {
	db *sql.DB
}

func NewPostgresSweetRepository(db *sql.DB) *PostgresSweetRepository {
	return &PostgresSweetRepository{db: db}
}

func (r *PostgresSweetRepository) Create(s models.Sweet) (models.Sweet, error) {
	query := `INSERT INTO sweets (name, category, price, quantity) VALUES ($1, $2, $3, $4) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, s.Name, s.Category, s.Price, s.Quantity).Scan(&s.ID)
	if isPgUniqueViolation(err) {
		return models.Sweet{}, ErrDuplicatedValueUnique
	}
	return s, err
}

func (r *PostgresSweetRepository) GetAll() ([]models.Sweet, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, category, price, quantity FROM sweets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return scanSweets(rows)
}

func (r *PostgresSweetRepository) GetByID(id int64) (models.Sweet, error) {
	query := `SELECT id, name, category, price, quantity FROM sweets WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var s models.Sweet
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sweet{}, ErrSweetNotFound
	}
	return s, err
}

func (r *PostgresSweetRepository) Update(s models.Sweet) (models.Sweet, error) {
	query := `UPDATE sweets SET name = $1, category = $2, price = $3, quantity = $4, updated_at = $5 WHERE id = $6`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, s.Name, s.Category, s.Price, s.Quantity, time.Now().UTC(), s.ID)
	if isPgUniqueViolation(err) {
		return models.Sweet{}, ErrDuplicatedValueUnique
	}
	if err != nil {
		return models.Sweet{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Sweet{}, ErrSweetNotFound
	}
	return s, nil
}

func (r *PostgresSweetRepository) Delete(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM sweets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrSweetNotFound
	}
	return nil
}

// AdjustQuantity uses a conditional update so concurrent purchases cannot oversell.
func (r *PostgresSweetRepository) AdjustQuantity(id int64, delta int) (models.Sweet, error) {
	query := `
		UPDATE sweets
		SET quantity = quantity + $1, updated_at = $2
		WHERE id = $3 AND quantity + $1 >= 0
		RETURNING id, name, category, price, quantity
	`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var s models.Sweet
	err := r.db.QueryRowContext(ctx, query, delta, time.Now().UTC(), id).
		Scan(&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity)

	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := r.GetByID(id); getErr != nil {
			return models.Sweet{}, getErr
		}
		return models.Sweet{}, ErrInvalidQuantityChange
	}
	return s, err
}

func (r *PostgresSweetRepository) Search(spec filter.Spec) ([]models.Sweet, error) {
	conditions, args := pgSearchConditions(spec)
	query := `SELECT id, name, category, price, quantity FROM sweets WHERE 1=1` + conditions + ` ORDER BY id`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanSweets(rows)
}

func pgSearchConditions(spec filter.Spec) (string, []any) {
	query := ""
	argIdx := 1
	args := []any{}

	if spec.Name != "" {
		query += fmt.Sprintf(" AND strpos(LOWER(name), LOWER($%d)) > 0", argIdx)
		args = append(args, spec.Name)
		argIdx++
	}
	if spec.Category != "" {
		query += fmt.Sprintf(" AND LOWER(category) = LOWER($%d)", argIdx)
		args = append(args, spec.Category)
		argIdx++
	}
	if spec.MinPrice != nil {
		query += fmt.Sprintf(" AND price >= $%d", argIdx)
		args = append(args, *spec.MinPrice)
		argIdx++
	}
	if spec.MaxPrice != nil {
		query += fmt.Sprintf(" AND price <= $%d", argIdx)
		args = append(args, *spec.MaxPrice)
	}

	return query, args
}

func scanSweets(rows *sql.Rows) ([]models.Sweet, error) {
	defer rows.Close()

	sweets := []models.Sweet{}
	for rows.Next() {
		var s models.Sweet
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity); err != nil {
			return nil, err
		}
		sweets = append(sweets, s)
	}
	return sweets, rows.Err()
}

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
