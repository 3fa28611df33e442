package server

import (
	"errors"
	"net/http"

	"github.com/chartproof/chartproof/internal/clients/gemini"
	"github.com/chartproof/chartproof/internal/models"
	"github.com/chartproof/chartproof/internal/services/analysis"
)

// annotateResponse is the 200 body for POST /api/annotate.
type annotateResponse struct {
	Success     bool                     `json:"success"`
	Annotations []models.ChartAnnotation `json:"annotations"`
	Summary     string                   `json:"summary"`
}

// handleAnnotate returns structured overlay annotations for an uploaded
// chart image.
func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.AnnotateRequest
	maxBytes := int64(s.app.Config.Server.MaxUploadMB) << 20
	if !DecodeJSON(w, r, &req, maxBytes) {
		return
	}

	result, err := s.app.Analysis.Annotate(r.Context(), &req)
	if err != nil {
		s.writeAnnotateError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, annotateResponse{
		Success:     true,
		Annotations: result.Annotations,
		Summary:     result.Summary,
	})
}

func (s *Server) writeAnnotateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, analysis.ErrUnknownStrategy),
		errors.Is(err, analysis.ErrMissingImage),
		errors.Is(err, analysis.ErrInvalidImage):
		WriteError(w, http.StatusBadRequest, err.Error())
	case gemini.IsRateLimited(err):
		WriteErrorMessage(w, http.StatusTooManyRequests,
			"Rate limited", "Analysis provider rate limit reached, try again shortly")
	case errors.Is(err, gemini.ErrNotConfigured):
		WriteError(w, http.StatusServiceUnavailable, "Analysis provider is not configured")
	default:
		s.logger.Error().Err(err).Msg("Annotation failed")
		WriteErrorMessage(w, http.StatusInternalServerError, "Annotation failed", err.Error())
	}
}
