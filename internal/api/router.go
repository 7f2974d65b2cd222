/**
 * @description
 * This file sets up the HTTP router for the membership backend using the
 * go-chi/chi router. It defines the public, webhook and admin routes,
 * applies middleware for logging, CORS, and authentication, and maps the
 * routes to their corresponding handler functions.
 */
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new Chi router and registers the membership routes.
func NewRouter(h *Handler, admin *AdminHandler, adminJWTSecret string) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Gateway-Signature"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any major browsers
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Membership service is healthy"))
	})

	// Public surface
	r.Get("/tiers", h.handleListTiers)
	r.Post("/applications", h.handleSubmitApplication)
	r.Get("/applications/{memberID}", h.handleGetApplication)
	r.Post("/applications/{memberID}/payment", h.handleInitiatePayment)
	r.Get("/applications/{memberID}/invoice", h.handleDownloadInvoice)

	// Gateway callback, authenticated by its HMAC signature
	r.Post("/payments/callback", h.handlePaymentCallback)

	// Job trigger, authenticated by the dedicated bearer secret
	r.Post("/admin/jobs/certificates", admin.handleTriggerDispatch)
	r.Get("/admin/jobs/certificates", admin.handleTriggerDispatch)

	// Admin routes that require an authenticated identity
	r.Group(func(r chi.Router) {
		r.Use(AdminAuthMiddleware(adminJWTSecret))

		r.Post("/admin/applications/{memberID}/reject", admin.handleRejectApplication)
		r.Get("/admin/applications/{memberID}/certificate", admin.handleDownloadCertificate)
	})

	return r
}
