package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires the full API surface. Paths mirror the storefront
// frontend's expectations.
func NewRouter(products *ProductHandler, carts *CartHandler, checkout *CheckoutHandler, health *HealthHandler, requestTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", health.Root)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.Health)

		r.Get("/products", products.ListProducts)
		r.Get("/products/{productID}", products.GetProduct)
		r.Get("/categories", products.ListCategories)

		r.Route("/cart/{cartID}", func(r chi.Router) {
			r.Get("/", carts.GetCart)
			r.Post("/items", carts.AddItem)
			r.Put("/items", carts.UpdateItem)
			r.Delete("/items", carts.RemoveItem)
		})

		r.Post("/checkout", checkout.Checkout)
	})

	return r
}
