package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/unclebandit/campaign-builder/internal/api/middleware"
	"github.com/unclebandit/campaign-builder/internal/controller"
	"github.com/unclebandit/campaign-builder/internal/handler"
	"github.com/unclebandit/campaign-builder/internal/service"
)

// NewRouter wires the builder API around svc.
func NewRouter(logger zerolog.Logger, svc *service.DraftService, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Metrics)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	campaignController := &controller.CampaignController{DraftService: svc}
	generationHandler := &handler.GenerationHandler{Service: svc}
	directoryHandler := &handler.DirectoryHandler{Directory: svc.Directory}

	directoryHandler.Routes(r)
	campaignController.Routes(r)
	generationHandler.Routes(r)

	return r
}
