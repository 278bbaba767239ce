package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers assumption routes under the financial API group
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/assumptions", h.HandleGetCatalog)
	r.Get("/assumptions/{name}", h.HandleGetProfile)
}
