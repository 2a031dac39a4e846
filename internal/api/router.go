/**
 * @description
 * This file sets up the HTTP router for the roots-gateway. It defines the API
 * endpoints, associates them with their corresponding handlers, and applies any
 * necessary middleware, such as for authentication.
 *
 * @dependencies
 * - net/http: Standard Go library for HTTP functionality.
 * - github.com/go-chi/chi/v5: A lightweight and idiomatic router for Go.
 * - github.com/go-chi/cors: CORS middleware for browser UI callers.
 */

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// GatewayRoutes creates and returns a new router for the roots-gateway.
func GatewayRoutes(h *GatewayHandlers, jwksURL string) http.Handler {
	r := chi.NewRouter()

	// Add standard middleware for logging, panic recovery, and timeouts.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any major browsers
	}))

	// Read-only endpoints: profile data and health degrade gracefully, so
	// they stay open to unauthenticated UI callers.
	r.Get("/health", h.HealthHandler)
	r.Get("/users/{userID}/profile", h.ProfileHandler)
	r.Get("/users/{userID}/level", h.LevelHandler)
	r.Get("/users/{userID}/collateral", h.CollateralHandler)
	r.Get("/users/{userID}/summary", h.SummaryHandler)
	r.Get("/loans/ping", h.LoansPingHandler)
	r.Get("/events", h.RecentEventsHandler)

	// Group routes that require authentication.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(jwksURL))

		r.Post("/loan-applications", h.LoanApplicationHandler)
		r.Put("/users/{userID}/level", h.SetLevelHandler)
		r.Post("/users/{userID}/collateral/deposits", h.DepositHandler)
		r.Post("/users/register", h.RegisterHandler)
		r.Post("/loans", h.RequestLoanHandler)
		r.Post("/loans/{loanID}/repayments", h.RepayHandler)
		r.Post("/events", h.EmitEventHandler)
	})

	return r
}
