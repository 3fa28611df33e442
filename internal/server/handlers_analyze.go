package server

import (
	"errors"
	"net/http"

	"github.com/chartproof/chartproof/internal/clients/gemini"
	"github.com/chartproof/chartproof/internal/models"
	"github.com/chartproof/chartproof/internal/services/analysis"
)

// analyzeResponse is the 200 body for POST /api/analyze.
type analyzeResponse struct {
	Success   bool                 `json:"success"`
	Report    *models.Report       `json:"report"`
	Grounding models.GroundingMeta `json:"grounding"`
}

// analyzeRejection is the 400 body when the uploaded image is rejected by the
// validation gate. The rejection reason is surfaced verbatim at the top level.
type analyzeRejection struct {
	Error           string                   `json:"error"`
	RejectionReason string                   `json:"rejection_reason"`
	Validation      *models.ValidationResult `json:"validation,omitempty"`
}

// handleAnalyze runs the full analysis pipeline for an uploaded chart.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.AnalyzeRequest
	maxBytes := int64(s.app.Config.Server.MaxUploadMB) << 20
	if !DecodeJSON(w, r, &req, maxBytes) {
		return
	}

	result, err := s.app.Analysis.Analyze(r.Context(), &req)
	if err != nil {
		s.writeAnalyzeError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, analyzeResponse{
		Success:   true,
		Report:    result.Report,
		Grounding: result.Grounding,
	})
}

// writeAnalyzeError maps pipeline errors to HTTP statuses. Rate-limit
// failures surface as 429 even when they arrive flattened inside a
// validation rejection reason.
func (s *Server) writeAnalyzeError(w http.ResponseWriter, err error) {
	if ice, ok := analysis.AsInvalidChart(err); ok {
		reason := ice.Result.RejectionReason
		if gemini.IsRateLimitText(reason) {
			WriteErrorMessage(w, http.StatusTooManyRequests,
				"Rate limited", "Analysis provider rate limit reached, try again shortly")
			return
		}
		WriteJSON(w, http.StatusBadRequest, analyzeRejection{
			Error:           "Invalid chart",
			RejectionReason: reason,
			Validation:      ice.Result,
		})
		return
	}

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
		s.logger.Error().Err(err).Msg("Analysis failed")
		WriteErrorMessage(w, http.StatusInternalServerError, "Analysis failed", err.Error())
	}
}
