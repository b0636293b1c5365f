package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aigovern/admin-api/internal/api"
	apimiddleware "github.com/aigovern/admin-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)
	r.Use(apimiddleware.MetricsMiddleware)

	authHandler := api.NewAuthHandler(
		app.adminUserStore,
		app.jwtService,
		app.passwordVerifier,
		time.Duration(app.config.Auth.TokenLifetimeMinutes)*time.Minute,
	)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	datasetHandler := api.NewDatasetHandler(app.datasetService, app.qualityService)
	reviewHandler := api.NewReviewHandler(app.reviewService)
	usageHandler := api.NewUsageHandler(app.usageService)
	creditHandler := api.NewCreditHandler(app.creditService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Dataset catalog
			r.Post("/datasets", datasetHandler.CreateDataset)
			r.Get("/datasets", datasetHandler.ListDatasets)
			r.Get("/datasets/{id}", datasetHandler.GetDataset)
			r.Get("/datasets/{id}/compliance", datasetHandler.GetCompliance)
			r.Put("/datasets/{id}/compliance", datasetHandler.UpdateCompliance)

			// Data quality events
			r.Post("/datasets/{id}/quality-events", datasetHandler.CreateQualityEvent)
			r.Get("/datasets/{id}/quality-events", datasetHandler.ListQualityEvents)

			// Security reviews
			r.Post("/security-reviews", reviewHandler.CreateReview)
			r.Get("/security-reviews/{id}", reviewHandler.GetReview)
			r.Put("/security-reviews/{id}/status", reviewHandler.UpdateReviewStatus)

			// Usage analytics
			r.Post("/usage", usageHandler.RecordUsage)
			r.Get("/usage/summary", usageHandler.GetSummary)

			// Credit requests
			r.Post("/credit-requests", creditHandler.CreateCreditRequest)
		})
	})

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
