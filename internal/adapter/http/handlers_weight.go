package adapthttp

import (
	"net/http"
)

// handleWeightHistory returns the newest readings across all users, newest
// first, for the chart page.
func (s *Server) handleWeightHistory(w http.ResponseWriter, r *http.Request) {
	items, err := s.reports.History(r.Context())
	if err != nil {
		s.logger.Printf("weight-history: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to load weight history"})
		return
	}
	writeJSON(w, http.StatusOK, items)
}
