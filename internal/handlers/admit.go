package handlers

import (
	"net/http"

	"github.com/alhuda/dismissal/internal/services"
)

type admitRequest struct {
	RawQRText string `json:"rawQrText" validate:"required"`
	Actor     string `json:"actor" validate:"required"`
}

// POST /api/admit — the scan pipeline's HTTP entry. The caller has already
// decoded the QR symbol; this parses, resolves, and admits.
func Admit(w http.ResponseWriter, r *http.Request) {
	var req admitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := services.AdmitByCredential(req.RawQRText, req.Actor)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
