package disease

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/asantekofi/ricedoctor/internal/model/disease"
)

// Handler serves the knowledge-base catalog.
type Handler struct {
	diseases disease.Store
}

// New creates the disease handler.
func New(diseases disease.Store) *Handler {
	return &Handler{diseases: diseases}
}

// RegisterRoutes mounts the catalog route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/diseases", h.handleListDiseases)
}

func (h *Handler) handleListDiseases(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, h.diseases.List())
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
