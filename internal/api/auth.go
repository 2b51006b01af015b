// Package api implements the adapter's HTTP surface.
package api

import "net/http"

// requireAPIKey rejects the request before next runs unless X-API-Key matches.
func (s *Server) requireAPIKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Auth.VerifyRequest(r); err != nil {
			s.Log.WithError(err).WithField("path", r.URL.Path).Warn("unauthorized request")
			writeError(w, http.StatusUnauthorized, CodeUnauthorized, "Unauthorized - Invalid or missing API key")
			return
		}
		next(w, r)
	}
}
