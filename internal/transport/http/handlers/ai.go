package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/cv-service/internal/transport/http/errors"
)

// Improve улучшает текст поля резюме; context - подпись поля ("Descrizione", "Riepilogo"...).
func (h *Handlers) Improve(w http.ResponseWriter, r *http.Request) {
	if _, err := caller(r); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in improveRequest
	if err := h.bind(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out, err := h.Improver.Improve(r.Context(), in.Text, in.Context)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, improveResponse{Text: out})
}
