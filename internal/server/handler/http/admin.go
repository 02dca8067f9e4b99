package http

import (
	"context"
	"encoding/json"
	"net/http"
)

// ForceSetter defines the unguarded cursor write required by the AdminHandler.
type ForceSetter interface {
	// ForceSet writes the cursor unconditionally, bypassing the guard.
	ForceSet(ctx context.Context, userID, catalog string, index int64) error
}

// AdminService defines the administrative repair operations required by the
// AdminHandler.
type AdminService interface {
	// ResetScore zeroes the user's total score.
	ResetScore(ctx context.Context, userID string) error
	// UpsertCatalog registers a catalog or updates its item count.
	UpsertCatalog(ctx context.Context, catalog string, itemCount int64) error
}

// AdminHandler handles the capability-guarded administrative endpoints.
// Routing must place it behind the admin token middleware; it performs no
// authorization of its own.
type AdminHandler struct {
	Sequencer ForceSetter
	Admin     AdminService
}

// ForceAdvanceRequest represents the JSON payload for a forced cursor write.
type ForceAdvanceRequest struct {
	UserID  string `json:"user_id"`
	Catalog string `json:"catalog"`
	Index   int64  `json:"index"`
}

// ForceAdvance handles POST /api/admin/advance/force requests.
func (h *AdminHandler) ForceAdvance(w http.ResponseWriter, r *http.Request) {
	var req ForceAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.Catalog == "" || req.Index < 0 {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := h.Sequencer.ForceSet(r.Context(), req.UserID, req.Catalog, req.Index); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// ResetScoreRequest represents the JSON payload for a score reset.
type ResetScoreRequest struct {
	UserID string `json:"user_id"`
}

// ResetScore handles POST /api/admin/score/reset requests.
func (h *AdminHandler) ResetScore(w http.ResponseWriter, r *http.Request) {
	var req ResetScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := h.Admin.ResetScore(r.Context(), req.UserID); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// UpsertCatalogRequest represents the JSON payload for catalog registration.
type UpsertCatalogRequest struct {
	Name      string `json:"name"`
	ItemCount int64  `json:"item_count"`
}

// UpsertCatalog handles POST /api/admin/catalogs requests.
func (h *AdminHandler) UpsertCatalog(w http.ResponseWriter, r *http.Request) {
	var req UpsertCatalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.ItemCount < 0 {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := h.Admin.UpsertCatalog(r.Context(), req.Name, req.ItemCount); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
