package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/omsandippatil/9Lives-sub003/internal/middleware"
)

// StreakService defines the interface for streak operations required by the
// StreakHandler.
type StreakService interface {
	// RecordActivity applies the daily streak transition and returns the
	// resulting run length. Idempotent within one calendar day.
	RecordActivity(ctx context.Context, userID string, today time.Time) (int, error)
	// CurrentDisplayValue returns the streak to display and whether it is
	// at risk (last extended yesterday, not yet secured today).
	CurrentDisplayValue(ctx context.Context, userID string, today time.Time) (int, bool, error)
}

// StreakHandler handles HTTP requests for streak recording and display.
type StreakHandler struct {
	Streak StreakService
	// Now supplies the current time; defaults to time.Now when nil.
	Now func() time.Time
}

func (h *StreakHandler) today() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

// RecordActivity handles POST /api/activity requests.
// The resulting run is always secured: the activity just recorded counts for
// today.
func (h *StreakHandler) RecordActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserIDFromContext(ctx)

	run, err := h.Streak.RecordActivity(ctx, userID, h.today())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"run_length": run,
		"secured":    true,
	})
}

// Current handles GET /api/streak requests without mutating storage.
func (h *StreakHandler) Current(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserIDFromContext(ctx)

	display, atRisk, err := h.Streak.CurrentDisplayValue(ctx, userID, h.today())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"display_value": display,
		"at_risk":       atRisk,
	})
}
