package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the analysis route under the financial API group
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/analyze", h.HandleAnalyze)
}
