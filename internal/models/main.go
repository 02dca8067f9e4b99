// Package models defines the core data structures for learner progress tracking.
package models

import "time"

// User represents an application user with credentials.
type User struct {
	// Login is the unique identifier chosen by the user.
	Login string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash []byte
}

// StreakState holds the stored streak pair for a user.
// RunLength is only meaningful together with LastActive: a stored run whose
// LastActive is older than yesterday displays as zero until the next write
// corrects it (lazy reset, no background sweep).
type StreakState struct {
	// LastActive is the calendar day of the most recent recorded activity.
	// The zero time means no activity has ever been recorded.
	LastActive time.Time
	// RunLength is the number of consecutive active days ending at LastActive.
	RunLength int
}

// ProgressRow is the per-user progress record as stored.
type ProgressRow struct {
	// UserID is the opaque unique identifier of the user.
	UserID string
	// TotalScore is monotonically non-decreasing except for admin resets.
	TotalScore int64
	// FocusSecondsToday is reset to zero by the daily rollover job.
	FocusSecondsToday int64
	// Streak is the stored streak pair.
	Streak StreakState
}

// LeaderboardEntry is a derived ranking row, never stored.
type LeaderboardEntry struct {
	// UserID identifies the ranked user.
	UserID string `json:"user_id"`
	// TotalScore is the score the ranking is ordered by.
	TotalScore int64 `json:"total_score"`
	// Rank is a dense sequential rank: ties in score still receive
	// distinct consecutive ranks, tie-broken by UserID ascending.
	Rank int `json:"rank"`
}

// CatalogName identifies an ordered content catalog users progress through.
type CatalogName = string

const (
	// CatalogTechnicalQuestions is the technical interview question set.
	CatalogTechnicalQuestions CatalogName = "technical_questions"
	// CatalogAptitude is the aptitude question set.
	CatalogAptitude CatalogName = "aptitude"
	// CatalogPythonTheory is the Python syntax and theory reference.
	CatalogPythonTheory CatalogName = "python_theory"
)
