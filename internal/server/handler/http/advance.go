package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/omsandippatil/9Lives-sub003/internal/middleware"
	"github.com/omsandippatil/9Lives-sub003/internal/models"
)

// SequencerService defines the interface for catalog advancement operations
// required by the AdvanceHandler.
type SequencerService interface {
	// Advance serves the next item index in the catalog for the user and
	// reports whether this call won the advancement.
	Advance(ctx context.Context, userID, catalog string) (int64, bool, error)
}

// AdvanceHandler handles HTTP requests for catalog advancement.
type AdvanceHandler struct {
	Sequencer SequencerService
}

// AdvanceRequest represents the JSON payload for an advance call.
type AdvanceRequest struct {
	// Catalog names the content catalog to advance in.
	Catalog string `json:"catalog"`
}

// AdvanceResponse is the JSON body for a served item.
type AdvanceResponse struct {
	ItemIndex int64 `json:"item_index"`
	Advanced  bool  `json:"advanced"`
}

// Advance handles POST /api/advance requests.
// It decodes a JSON body with "catalog", invokes the Sequencer and writes
// either the served item or {"exhausted": true} when the catalog has no
// further items. advanced=false means a concurrent caller won the guard and
// the client should re-request to see the current frontier.
func (h *AdvanceHandler) Advance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserIDFromContext(ctx)

	var req AdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Catalog == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	index, advanced, err := h.Sequencer.Advance(ctx, userID, req.Catalog)
	if errors.Is(err, models.ErrExhausted) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]bool{"exhausted": true})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(AdvanceResponse{ItemIndex: index, Advanced: advanced})
}
