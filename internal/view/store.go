// Package view holds the dashboard and admin controllers. Both keep a cached copy of
// the catalog that is re-fetched in full after every successful mutation.
package view

import (
	"context"
	"log"
	"slices"
	"sync"

	"github.com/rogerio-castellano/sweet-shop/internal/catalog"
	"github.com/rogerio-castellano/sweet-shop/internal/models"
)

// LoadFailedMessage is the inline error shown when the collection cannot be fetched.
const LoadFailedMessage = "Failed to load sweets"

// Store is the cached mirror of the catalog. It is only ever replaced wholesale by Reload.
type Store struct {
	client catalog.Client

	mu      sync.RWMutex
	items   []models.Sweet
	loadErr string
}

func NewStore(client catalog.Client) *Store {
	return &Store{client: client}
}

// Reload fetches the full collection and swaps it in. On failure the previous snapshot is
// kept and the inline load error is set.
func (s *Store) Reload(ctx context.Context) error {
	items, err := s.client.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Printf("could not load sweets: %v", err)
		s.loadErr = LoadFailedMessage
		return err
	}
	if items == nil {
		items = []models.Sweet{}
	}
	s.items = items
	s.loadErr = ""
	return nil
}

// Items returns a copy of the current snapshot.
func (s *Store) Items() []models.Sweet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Get looks up a sweet in the current snapshot.
func (s *Store) Get(id int64) (models.Sweet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return models.Sweet{}, false
}

// LoadError is the persistent inline error, empty when the last load succeeded.
func (s *Store) LoadError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}
