package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

func (h *Handlers) ListOfferTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Catalog.List(r.Context())
	if err != nil {
		log.Printf("offer templates: list failed: %v", err)
		http.Error(w, "list templates failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(templates)
}
