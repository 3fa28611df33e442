package server

import "net/http"

// registerRoutes wires up all REST API endpoints.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// Both inference endpoints share the per-client limiter; each request
	// costs at least one model call.
	throttle := rateLimitMiddleware(s.analyzeLimiter)
	mux.Handle("/api/analyze", throttle(http.HandlerFunc(s.handleAnalyze)))
	mux.Handle("/api/annotate", throttle(http.HandlerFunc(s.handleAnnotate)))

	mux.HandleFunc("/api/reports", s.handleReports)
	mux.HandleFunc("/api/reports/", s.handleReportByID)

	mux.HandleFunc("/api/strategies", s.handleStrategies)

	mux.HandleFunc("/api/users", s.handleUsers)
	mux.HandleFunc("/api/users/", s.handleUserByID)

	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
}
