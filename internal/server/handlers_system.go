package server

import (
	"net/http"
	"time"

	"github.com/chartproof/chartproof/internal/common"
	"github.com/chartproof/chartproof/internal/models"
)

// handleStrategies serves the fixed strategy catalog.
func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, models.Strategies)
}

// handleHealth reports service liveness and whether analysis is available.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "ok",
		"gemini_configured": s.app.Gemini.Configured(),
		"storage_driver":    s.app.Config.Storage.Driver,
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
	})
}

// handleVersion reports build information.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
