package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alhuda/dismissal/internal/db"
	"github.com/alhuda/dismissal/internal/dismissal"
	"github.com/alhuda/dismissal/internal/services"
	"github.com/alhuda/dismissal/internal/store"
)

func recordFilterFrom(r *http.Request) store.RecordFilter {
	return store.RecordFilter{
		Grade:  r.URL.Query().Get("grade"),
		Status: dismissal.Status(r.URL.Query().Get("status")),
	}
}

// GET /api/queues/{id}/records
func QueueRecords(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	recs, err := store.ListRecords(db.Conn(), id, recordFilterFrom(r))
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]recordJSON, 0, len(recs))
	for i := range recs {
		out = append(out, toRecordJSON(&recs[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"queueId": id, "records": out})
}

// GET /api/grades/{grade}/records — the grade view staff keep open at each
// release point; always reads the current queue.
func GradeRecords(w http.ResponseWriter, r *http.Request) {
	open, err := store.GetOpenQueue(db.Conn())
	if err != nil {
		writeErr(w, err)
		return
	}
	if open == nil {
		writeErr(w, services.ErrNoOpenQueue)
		return
	}
	grade := chi.URLParam(r, "grade")
	recs, err := store.ListRecords(db.Conn(), open.ID, store.RecordFilter{Grade: grade})
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]recordJSON, 0, len(recs))
	for i := range recs {
		out = append(out, toRecordJSON(&recs[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"queueId": open.ID, "records": out})
}

// GET /api/queues/{id}/records.csv
func QueueRecordsCSV(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	recs, err := store.ListRecords(db.Conn(), id, recordFilterFrom(r))
	if err != nil {
		writeErr(w, err)
		return
	}

	filename := fmt.Sprintf("dismissal-%s.csv", id)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"student_id", "grade", "building", "status", "method", "contact", "changed_at", "changed_by"})
	for _, rec := range recs {
		_ = cw.Write([]string{
			fmt.Sprint(rec.StudentID),
			rec.Grade,
			rec.ClassBuilding,
			string(rec.Status),
			string(rec.AdmissionMethod),
			rec.ContactDisplayName,
			rec.StatusChangedAt.Format(time.RFC3339),
			rec.StatusChangedBy,
		})
	}
	cw.Flush()
}
