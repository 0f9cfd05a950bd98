/**
 * @description
 * This file sets up the HTTP router for the service. It defines the API
 * endpoints, associates them with their corresponding handlers, and applies
 * middleware for logging, panic recovery, CORS, and authentication.
 *
 * @dependencies
 * - net/http: Standard Go library for HTTP functionality.
 * - github.com/go-chi/chi/v5: A lightweight and idiomatic router for Go.
 * - github.com/go-chi/cors: CORS middleware for chi.
 */

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Amanchoudhary192002/Business-Management-System/internal/app"
)

// NewRouter creates the chi router with every API route registered.
func NewRouter(h *Handlers, auth *app.AuthService, corsAllowedOrigins string) http.Handler {
	r := chi.NewRouter()

	// Add standard middleware for logging, panic recovery, and timeouts.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   splitOrigins(corsAllowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", TokenHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any major browsers
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	})

	r.Route("/api", func(r chi.Router) {
		// Public auth endpoints.
		r.Post("/auth/register", h.RegisterHandler)
		r.Post("/auth/login", h.LoginHandler)

		// Everything else requires a valid token.
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(auth))

			r.Get("/auth/me", h.GetMeHandler)
			r.Put("/auth/update", h.UpdateAccountHandler)

			r.Post("/customers", h.CreateCustomerHandler)
			r.Get("/customers", h.ListCustomersHandler)
			r.Put("/customers/{id}", h.UpdateCustomerHandler)
			r.Delete("/customers/{id}", h.DeleteCustomerHandler)

			r.Post("/products", h.CreateProductHandler)
			r.Get("/products", h.ListProductsHandler)
			r.Put("/products/{id}", h.UpdateProductHandler)
			r.Delete("/products/{id}", h.DeleteProductHandler)

			r.Post("/transactions", h.RecordSaleHandler)
			r.Get("/transactions", h.ListSalesHandler)

			r.Get("/reports", h.ReportsHandler)
		})
	})

	return r
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := []string{}
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		origins = []string{"https://*", "http://*"}
	}
	return origins
}
