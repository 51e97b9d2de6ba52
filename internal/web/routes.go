package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/pipeline"
	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/store"
	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/web/handlers"
)

func (s *Server) setupRoutes(st *store.Store, pl *pipeline.Pipeline) {
	checkinHandler := handlers.NewCheckinHandler(pl)
	recordsHandler := handlers.NewRecordsHandler(st)
	profilesHandler := handlers.NewProfilesHandler(st)

	// Health check and metrics (no versioned prefix)
	s.router.Get("/api/v1/health", handlers.HealthCheck)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/checkin", checkinHandler.Checkin)

		r.Get("/records", recordsHandler.List)
		r.Get("/stats", recordsHandler.Stats)
		r.Delete("/data", recordsHandler.Clear)

		r.Get("/profiles", profilesHandler.List)
		r.Get("/profiles/{id}", profilesHandler.Get)
	})
}
