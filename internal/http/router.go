package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rogerio-castellano/sweet-shop/internal/http/handlers"
	rl "github.com/rogerio-castellano/sweet-shop/internal/http/rate_limiter"
)

// RouterConfig carries the optional pieces of the middleware stack.
type RouterConfig struct {
	CORSOrigins []string
	// Limiter is applied to every route when set.
	Limiter *rl.Limiter
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(Recovery)
	r.Use(RequestID)
	r.Use(Logging)
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	if cfg.Limiter != nil {
		r.Use(RateLimit(cfg.Limiter))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", handlers.RegisterHandler)
		r.Post("/auth/login", handlers.LoginHandler)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware)

			r.Get("/sweets", handlers.GetSweetsHandler)
			r.Get("/sweets/search", handlers.SearchSweetsHandler)
			r.Get("/sweets/{id}", handlers.GetSweetByIDHandler)
			r.Post("/sweets", handlers.CreateSweetHandler)
			r.Put("/sweets/{id}", handlers.UpdateSweetHandler)
			r.Post("/sweets/{id}/purchase", handlers.PurchaseSweetHandler)

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin)
				r.Delete("/sweets/{id}", handlers.DeleteSweetHandler)
				r.Post("/sweets/{id}/restock", handlers.RestockSweetHandler)
				r.Post("/sweets/import", handlers.ImportSweetsHandler)
				r.Get("/sweets/stats", handlers.GetInventoryStatsHandler)
			})
		})
	})

	return r
}
