package handlers

import (
	"net/http"

	"github.com/alhuda/dismissal/internal/db"
	"github.com/alhuda/dismissal/internal/directory"
)

type attendanceRequest struct {
	StudentID uint   `json:"studentId" validate:"required"`
	Day       string `json:"day" validate:"required,len=8,numeric"`
	Present   *bool  `json:"present" validate:"required"`
}

// POST /api/attendance — the morning feed auto-populate selects on.
func MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := directory.MarkAttendance(db.Conn(), req.StudentID, req.Day, *req.Present); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
