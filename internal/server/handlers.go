package server

import (
	"encoding/json"
	"net/http"
)

// handleRoot returns API information
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	docs := "disabled"
	if s.cfg.DevMode {
		docs = "/api/docs"
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"name":        s.cfg.AppName,
		"version":     s.cfg.AppVersion,
		"environment": s.cfg.Environment,
		"docs":        docs,
	})
}

// handleHealth is the liveness probe used by load balancers
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "healthy",
		"environment": s.cfg.Environment,
		"version":     s.cfg.AppVersion,
	})
}

// comingSoon answers a reserved route that has no implementation yet.
func comingSoon(message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": message})
	}
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
