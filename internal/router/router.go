package router

import (
	"net/http"

	"rhea-commerce/internal/auth"
	"rhea-commerce/internal/handler"
	"rhea-commerce/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	tokens *auth.JWTManager,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware in order: Recovery -> Logging -> Metrics -> CORS
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Public catalogue and auth endpoints
		r.Get("/products", productHandler.List)
		r.Get("/products/{slug}", productHandler.GetBySlug)
		r.Get("/categories", productHandler.ListCategories)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Endpoints requiring a signed-in user
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokens))

			r.Get("/auth/me", authHandler.Me)

			r.Get("/cart", cartHandler.Get)
			r.Delete("/cart", cartHandler.Clear)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Put("/cart/items/{productID}", cartHandler.UpdateItem)
			r.Delete("/cart/items/{productID}", cartHandler.RemoveItem)

			r.Post("/orders", orderHandler.Checkout)
			r.Get("/orders", orderHandler.List)
			r.Get("/orders/{id}", orderHandler.GetByID)
		})

		// Administrative endpoints
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(tokens))
			r.Use(middleware.RequireAdmin)

			r.Get("/stats", adminHandler.Stats)
			r.Get("/users", adminHandler.ListUsers)

			r.Post("/products", productHandler.Create)
			r.Put("/products/{id}", productHandler.Update)
			r.Delete("/products/{id}", productHandler.Delete)

			r.Get("/orders", orderHandler.ListAll)
			r.Patch("/orders/{id}", orderHandler.UpdateStatus)
		})
	})

	return r
}
