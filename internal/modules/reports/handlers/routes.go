package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers report routes under the financial API group
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/email-report", h.HandleEmailReport)
	r.Post("/generate-pdf", h.HandleGeneratePDF)
}
