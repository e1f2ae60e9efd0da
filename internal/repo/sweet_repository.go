package repo

import (
	"errors"

	"github.com/rogerio-castellano/sweet-shop/internal/filter"
	"github.com/rogerio-castellano/sweet-shop/internal/models"
)

// SweetRepository defines the interface for sweet data operations.
type SweetRepository interface {
	Create(s models.Sweet) (models.Sweet, error)
	GetAll() ([]models.Sweet, error)
	GetByID(id int64) (models.Sweet, error)
	Update(s models.Sweet) (models.Sweet, error)
	Delete(id int64) error
	// AdjustQuantity applies delta atomically. The stock never goes below zero.
	AdjustQuantity(id int64, delta int) (models.Sweet, error)
	Search(spec filter.Spec) ([]models.Sweet, error)
}

var (
	// ErrSweetNotFound is returned when a sweet is not found in the repository.
	ErrSweetNotFound = errors.New("sweet not found")
	// ErrInvalidQuantityChange is returned when an adjustment would leave negative stock.
	ErrInvalidQuantityChange = errors.New("invalid quantity change")
	// ErrDuplicatedValueUnique is returned when a unique column already holds the value.
	ErrDuplicatedValueUnique = errors.New("duplicated value for unique field")
	ErrUserNotFound          = errors.New("user not found")
)
