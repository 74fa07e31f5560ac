package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/alhuda/dismissal/internal/db"
	"github.com/alhuda/dismissal/internal/directory"
	"github.com/alhuda/dismissal/internal/services"
)

// GET /api/parents/{id}/credential.png
//
// Renders the parent's pickup pass as a QR image. With ?alternate= and
// ?phone= it renders an alternate-pickup pass instead. The payload is the
// same text the admission parser accepts, so a printed pass round-trips
// through the scan pipeline unchanged.
func CredentialPNG(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	parent, err := directory.ParentByID(db.Conn(), uint(id))
	if err != nil {
		writeErr(w, err)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = services.TodayID()
	}

	var text string
	if alt := r.URL.Query().Get("alternate"); alt != "" {
		phone := directory.NormPhone(r.URL.Query().Get("phone"))
		if phone == "" {
			phone = parent.Phone
		}
		text = services.AlternateCredentialText(parent, alt, phone, date)
	} else {
		text = services.CredentialText(parent, date)
	}

	png, err := qrcode.Encode(text, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "failed to generate qr", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
