package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alhuda/dismissal/internal/db"
	"github.com/alhuda/dismissal/internal/services"
	"github.com/alhuda/dismissal/internal/store"
)

type actorRequest struct {
	Actor string `json:"actor" validate:"required"`
}

// POST /api/queues
func StartQueue(w http.ResponseWriter, r *http.Request) {
	var req actorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	q, err := services.StartDailyQueue(req.Actor)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toQueueJSON(q))
}

// POST /api/queues/close
func CloseQueue(w http.ResponseWriter, r *http.Request) {
	var req actorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	q, err := services.CloseOpenQueue(req.Actor)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toQueueJSON(q))
}

// DELETE /api/queues/{id}
func DeleteQueue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := services.DeleteQueue(id, r.Header.Get("X-Actor")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/queues
func ListQueues(w http.ResponseWriter, r *http.Request) {
	qs, err := store.ListQueues(db.Conn())
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]queueJSON, 0, len(qs))
	for i := range qs {
		out = append(out, toQueueJSON(&qs[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"queues": out})
}

// GET /api/queues/current
func CurrentQueue(w http.ResponseWriter, r *http.Request) {
	q, err := store.GetOpenQueue(db.Conn())
	if err != nil {
		writeErr(w, err)
		return
	}
	if q == nil {
		writeJSON(w, http.StatusOK, map[string]any{"queue": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"queue": toQueueJSON(q)})
}
