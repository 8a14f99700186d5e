package handler

import "net/http"

// GetDashboard handles GET /dashboard.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dashboard.Stats(r.Context()))
}
