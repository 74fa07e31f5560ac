package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/alhuda/dismissal/internal/dismissal"
	"github.com/alhuda/dismissal/internal/services"
)

type statusRequest struct {
	NewStatus string `json:"newStatus" validate:"required"`
	Method    string `json:"method" validate:"required,oneof=qr_scan manual bulk_grade"`
	Actor     string `json:"actor" validate:"required"`
}

// POST /api/students/{id}/status
func StudentStatus(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "bad_request", Message: "student id must be numeric"})
		return
	}
	var req statusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rec, err := services.UpdateStudentStatus(
		uint(studentID),
		dismissal.Status(req.NewStatus),
		dismissal.Method(req.Method),
		req.Actor,
	)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordJSON(rec))
}

type gradeStatusRequest struct {
	NewStatus string `json:"newStatus" validate:"required"`
	Actor     string `json:"actor" validate:"required"`
}

// POST /api/grades/{grade}/status
func GradeStatus(w http.ResponseWriter, r *http.Request) {
	var req gradeStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	n, err := services.BulkGradeStatus(chi.URLParam(r, "grade"), dismissal.Status(req.NewStatus), req.Actor)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"updatedCount": n})
}
