package service

import (
	"context"
	"time"

	"github.com/omsandippatil/9Lives-sub003/internal/models"
)

// StreakRepository defines the persistence operations needed by the StreakTracker.
type StreakRepository interface {
	// GetStreak returns the stored streak pair for the user, or
	// models.ErrNotFound if the user does not exist.
	GetStreak(ctx context.Context, userID string) (models.StreakState, error)
	// SetStreak writes the streak pair for the user.
	SetStreak(ctx context.Context, userID string, st models.StreakState) error
}

// dayClass classifies a stored activity date relative to today.
type dayClass int

const (
	daySame dayClass = iota
	dayYesterday
	dayOlder
)

// classifyDay compares two calendar days in UTC. Both the write path and the
// read path go through this one function so displayed and persisted behavior
// cannot silently diverge.
func classifyDay(last, today time.Time) dayClass {
	if last.IsZero() {
		return dayOlder
	}
	l := midnightUTC(last)
	t := midnightUTC(today)
	switch {
	case l.Equal(t):
		return daySame
	case l.Equal(t.AddDate(0, 0, -1)):
		return dayYesterday
	default:
		return dayOlder
	}
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StreakTracker derives the user-visible streak from the stored
// (last_active_date, run_length) pair and today's date. Stale rows are only
// corrected lazily on the next RecordActivity call; there is no background
// sweep rewriting them.
type StreakTracker struct {
	repo StreakRepository
}

// NewStreakTracker constructs a StreakTracker with the provided repository.
func NewStreakTracker(repo StreakRepository) *StreakTracker {
	return &StreakTracker{repo: repo}
}

// RecordActivity applies the streak transition for an activity completed on
// today's date and returns the resulting run length.
//
// Same-day calls are idempotent no-ops. Activity on the day after the stored
// date extends the run by one; this is the only path that increments it.
// Anything older restarts the run at 1.
func (s *StreakTracker) RecordActivity(ctx context.Context, userID string, today time.Time) (int, error) {
	st, err := s.repo.GetStreak(ctx, userID)
	if err != nil {
		return 0, err
	}

	var next models.StreakState
	switch classifyDay(st.LastActive, today) {
	case daySame:
		// Already counted today.
		return st.RunLength, nil
	case dayYesterday:
		next = models.StreakState{LastActive: midnightUTC(today), RunLength: st.RunLength + 1}
	default:
		next = models.StreakState{LastActive: midnightUTC(today), RunLength: 1}
	}

	if err := s.repo.SetStreak(ctx, userID, next); err != nil {
		return 0, err
	}
	return next.RunLength, nil
}

// CurrentDisplayValue returns the streak the user should see without mutating
// storage. A run last extended yesterday still displays but is flagged at
// risk; a run older than that displays as zero regardless of the stored
// value, which stays stale until the next RecordActivity write.
func (s *StreakTracker) CurrentDisplayValue(ctx context.Context, userID string, today time.Time) (int, bool, error) {
	st, err := s.repo.GetStreak(ctx, userID)
	if err != nil {
		return 0, false, err
	}

	switch classifyDay(st.LastActive, today) {
	case daySame:
		return st.RunLength, false, nil
	case dayYesterday:
		return st.RunLength, true, nil
	default:
		return 0, false, nil
	}
}
