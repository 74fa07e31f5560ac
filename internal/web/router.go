package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alhuda/dismissal/internal/handlers"
)

func Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handlers.Health)

	r.Route("/api", func(api chi.Router) {
		// Queue lifecycle
		api.Post("/queues", handlers.StartQueue)
		api.Post("/queues/close", handlers.CloseQueue)
		api.Get("/queues", handlers.ListQueues)
		api.Get("/queues/current", handlers.CurrentQueue)
		api.Delete("/queues/{id}", handlers.DeleteQueue)
		api.Get("/queues/{id}/records", handlers.QueueRecords)
		api.Get("/queues/{id}/records.csv", handlers.QueueRecordsCSV)

		// Admission
		api.Post("/admit", handlers.Admit)

		// Status transitions
		api.Post("/students/{id}/status", handlers.StudentStatus)
		api.Post("/grades/{grade}/status", handlers.GradeStatus)

		// Grade views & counts
		api.Get("/grades/{grade}/records", handlers.GradeRecords)
		api.Get("/grades/{grade}/counts", handlers.GradeCounts)
		api.Get("/counts", handlers.SchoolCounts)

		// Directory feeds
		api.Post("/attendance", handlers.MarkAttendance)
		api.Get("/parents/{id}/credential.png", handlers.CredentialPNG)
	})

	return r
}
