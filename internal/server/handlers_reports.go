package server

import (
	"net/http"
	"strings"

	"github.com/chartproof/chartproof/internal/services/render"
)

// handleReports serves the report list.
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	reports, err := s.app.Storage.ReportStore().List(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list reports")
		WriteError(w, http.StatusInternalServerError, "Failed to list reports")
		return
	}

	WriteJSON(w, http.StatusOK, reports)
}

// handleReportByID serves GET/DELETE /api/reports/{id} and the rendered
// scorecard at /api/reports/{id}/scorecard.png.
func (s *Server) handleReportByID(w http.ResponseWriter, r *http.Request) {
	suffix := PathSuffix(r, "/api/reports/")
	if suffix == "" {
		WriteError(w, http.StatusBadRequest, "Report ID is required")
		return
	}

	if id, ok := strings.CutSuffix(suffix, "/scorecard.png"); ok {
		s.handleScorecard(w, r, id)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getReport(w, r, suffix)
	case http.MethodDelete:
		s.deleteReport(w, r, suffix)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request, id string) {
	report, err := s.app.Storage.ReportStore().Get(r.Context(), id)
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("Failed to get report")
		WriteError(w, http.StatusInternalServerError, "Failed to get report")
		return
	}
	if report == nil {
		WriteError(w, http.StatusNotFound, "Report not found")
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

func (s *Server) deleteReport(w http.ResponseWriter, r *http.Request, id string) {
	existed, err := s.app.Storage.ReportStore().Delete(r.Context(), id)
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("Failed to delete report")
		WriteError(w, http.StatusInternalServerError, "Failed to delete report")
		return
	}
	if !existed {
		WriteError(w, http.StatusNotFound, "Report not found")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleScorecard(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	report, err := s.app.Storage.ReportStore().Get(r.Context(), id)
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("Failed to get report")
		WriteError(w, http.StatusInternalServerError, "Failed to get report")
		return
	}
	if report == nil {
		WriteError(w, http.StatusNotFound, "Report not found")
		return
	}

	png, err := render.RenderScorecard(report)
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("Failed to render scorecard")
		WriteError(w, http.StatusInternalServerError, "Failed to render scorecard")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
