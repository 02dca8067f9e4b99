package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/omsandippatil/9Lives-sub003/internal/middleware"
)

// FocusService defines the interface for focus-time reconciliation required
// by the FocusHandler.
type FocusService interface {
	// Flush merges the submitted tally into storage and returns the
	// post-reconciliation stored value.
	Flush(ctx context.Context, userID string, accumulated int64) (int64, error)
}

// FocusHandler handles HTTP requests for focus-time flushes.
type FocusHandler struct {
	Focus FocusService
}

// FlushRequest represents the JSON payload for a focus flush.
type FlushRequest struct {
	// AccumulatedSeconds is the client's local tally for today.
	AccumulatedSeconds int64 `json:"accumulated_seconds"`
}

// Flush handles POST /api/focus/flush requests.
// The returned stored value may exceed what was submitted when another
// session holds a larger tally; clients adopt it as their new baseline.
func (h *FocusHandler) Flush(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserIDFromContext(ctx)

	var req FlushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.AccumulatedSeconds < 0 {
		http.Error(w, "negative tally", http.StatusBadRequest)
		return
	}

	stored, err := h.Focus.Flush(ctx, userID, req.AccumulatedSeconds)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int64{"stored_value": stored})
}
