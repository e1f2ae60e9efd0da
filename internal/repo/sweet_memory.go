package repo

import (
	"slices"
	"sync"

	"github.com/rogerio-castellano/sweet-shop/internal/filter"
	"github.com/rogerio-castellano/sweet-shop/internal/models"
)

// InMemorySweetRepository is an in-memory implementation of SweetRepository.
type InMemorySweetRepository struct {
	mu     sync.RWMutex
	sweets []models.Sweet
	nextID int64
}

// NewInMemorySweetRepository creates a new instance of InMemorySweetRepository.
func NewInMemorySweetRepository() *InMemorySweetRepository {
	return &InMemorySweetRepository{
		sweets: []models.Sweet{},
		nextID: 1,
	}
}

// Create adds a new sweet to the repository. Names are unique.
func (r *InMemorySweetRepository) Create(s models.Sweet) (models.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(s.Name, 0) {
		return models.Sweet{}, ErrDuplicatedValueUnique
	}
	s.ID = r.nextID
	r.nextID++
	r.sweets = append(r.sweets, s)
	return s, nil
}

// GetAll retrieves all sweets ordered by id.
func (r *InMemorySweetRepository) GetAll() ([]models.Sweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.sweets), nil
}

// GetByID retrieves a sweet by its ID.
func (r *InMemorySweetRepository) GetByID(id int64) (models.Sweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.sweets[i], nil
	}
	return models.Sweet{}, ErrSweetNotFound
}

// Update replaces an existing sweet.
func (r *InMemorySweetRepository) Update(s models.Sweet) (models.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(s.ID)
	if i < 0 {
		return models.Sweet{}, ErrSweetNotFound
	}
	if r.nameTaken(s.Name, s.ID) {
		return models.Sweet{}, ErrDuplicatedValueUnique
	}
	r.sweets[i] = s
	return s, nil
}

// Delete removes a sweet from the repository by its ID.
func (r *InMemorySweetRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrSweetNotFound
	}
	r.sweets = slices.Delete(r.sweets, i, i+1)
	return nil
}

// AdjustQuantity implements SweetRepository.
func (r *InMemorySweetRepository) AdjustQuantity(id int64, delta int) (models.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Sweet{}, ErrSweetNotFound
	}
	if r.sweets[i].Quantity+delta < 0 {
		return models.Sweet{}, ErrInvalidQuantityChange
	}
	r.sweets[i].Quantity += delta
	return r.sweets[i], nil
}

// Search returns the sweets matching spec.
func (r *InMemorySweetRepository) Search(spec filter.Spec) ([]models.Sweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filter.Apply(r.sweets, spec), nil
}

func (r *InMemorySweetRepository) Clear() {
	r.mu.Lock()
	r.sweets = []models.Sweet{}
	r.mu.Unlock()
}

func (r *InMemorySweetRepository) indexOf(id int64) int {
	return slices.IndexFunc(r.sweets, func(s models.Sweet) bool { return s.ID == id })
}

func (r *InMemorySweetRepository) nameTaken(name string, except int64) bool {
	for _, s := range r.sweets {
		if s.ID != except && s.Name == name {
			return true
		}
	}
	return false
}
