// Package handlers provides HTTP handlers for assumption profiles.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/pension/internal/modules/assumptions"
)

// ProfileService is the part of assumptions.Service the handlers need.
type ProfileService interface {
	Catalog(ctx context.Context) assumptions.Catalog
	Get(ctx context.Context, name string) (assumptions.Profile, error)
}

// Handler handles assumption profile HTTP requests
type Handler struct {
	service ProfileService
	log     zerolog.Logger
}

// NewHandler creates a new assumptions handler
func NewHandler(service ProfileService, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "assumptions").Logger(),
	}
}

// HandleGetCatalog handles GET /api/v1/financial/assumptions
func (h *Handler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Catalog(r.Context()))
}

// HandleGetProfile handles GET /api/v1/financial/assumptions/{name}
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	profile, err := h.service.Get(r.Context(), name)
	if errors.Is(err, assumptions.ErrProfileNotFound) {
		h.writeError(w, http.StatusNotFound, "Assumption profile not found: "+name)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("profile", name).Msg("Failed to load assumption profile")
		h.writeError(w, http.StatusInternalServerError, "Failed to load assumption profile")
		return
	}

	h.writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
