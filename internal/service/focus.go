package service

import (
	"context"
)

// FocusRepository defines the persistence operations needed by the FocusReconciler.
type FocusRepository interface {
	// FlushFocus merges seconds into storage with the monotonic
	// "larger value wins" rule and returns the stored value.
	FlushFocus(ctx context.Context, userID string, seconds int64) (int64, error)
}

// FocusReconciler merges locally accumulated focus time with the stored
// counter. The stored value never decreases and is never double-counted:
// overlapping sessions for the same user each submit their own tally and the
// larger observed value wins. Flushing zero is a pure read of the floor,
// which is how a session learns its baseline on start and resume.
type FocusReconciler struct {
	repo FocusRepository
}

// NewFocusReconciler constructs a FocusReconciler with the provided repository.
func NewFocusReconciler(repo FocusRepository) *FocusReconciler {
	return &FocusReconciler{repo: repo}
}

// Flush reconciles the submitted tally against storage and returns the
// post-reconciliation stored value, which may be larger than what was
// submitted. Negative tallies are clamped to zero, turning the call into a
// pure read.
func (s *FocusReconciler) Flush(ctx context.Context, userID string, accumulated int64) (int64, error) {
	if accumulated < 0 {
		accumulated = 0
	}
	return s.repo.FlushFocus(ctx, userID, accumulated)
}
