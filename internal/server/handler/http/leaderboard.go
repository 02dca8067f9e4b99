package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/omsandippatil/9Lives-sub003/internal/models"
)

// LeaderboardService defines the interface for ranking queries required by
// the LeaderboardHandler.
type LeaderboardService interface {
	// TopN returns n ranked entries starting at offset.
	TopN(ctx context.Context, n, offset int) ([]models.LeaderboardEntry, error)
}

// LeaderboardHandler handles HTTP requests for the ranked leaderboard.
type LeaderboardHandler struct {
	Leaderboard LeaderboardService
}

// TopN handles GET /api/leaderboard?n=&offset= requests.
// Out-of-range parameters fall back to service defaults; an empty page is an
// empty JSON array, not an error.
func (h *LeaderboardHandler) TopN(w http.ResponseWriter, r *http.Request) {
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	entries, err := h.Leaderboard.TopN(r.Context(), n, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entries)
}
