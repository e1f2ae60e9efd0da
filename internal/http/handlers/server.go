package handlers

import (
	"time"

	"github.com/rogerio-castellano/sweet-shop/internal/cache"
	"github.com/rogerio-castellano/sweet-shop/internal/repo"
)

var (
	sweetRepo repo.SweetRepository
	userRepo  repo.UserRepository

	listCache cache.Cache = cache.Noop{}
	listTTL               = 30 * time.Second
)

func SetSweetRepo(r repo.SweetRepository) {
	sweetRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

// SetCache enables caching of the sweets list. A nil cache disables it.
func SetCache(c cache.Cache, ttl time.Duration) {
	if c == nil {
		c = cache.Noop{}
	}
	listCache = c
	listTTL = ttl
}
