package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alhuda/dismissal/internal/services"
)

// GET /api/grades/{grade}/counts
func GradeCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := services.CountsByGrade(r.Context(), chi.URLParam(r, "grade"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// GET /api/counts
func SchoolCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := services.CountsSchoolWide(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
