// Package service provides business-logic services for catalog sequencing,
// streak tracking, focus-time reconciliation and the leaderboard, delegating
// persistence to repository interfaces.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/omsandippatil/9Lives-sub003/internal/models"
)

// SequencerRepository defines the persistence operations needed by the Sequencer.
type SequencerRepository interface {
	// GetCounter returns the current cursor for (userID, catalog),
	// creating a zero row on first touch.
	GetCounter(ctx context.Context, userID, catalog string) (int64, error)
	// AdvanceCounter sets the cursor to next only if it still equals
	// expected, reporting whether the guarded write won.
	AdvanceCounter(ctx context.Context, userID, catalog string, next, expected int64) (bool, error)
	// ForceSetCounter writes the cursor unconditionally.
	ForceSetCounter(ctx context.Context, userID, catalog string, index int64) error
	// CatalogSize returns the item count of the catalog, or
	// models.ErrNotFound if the catalog does not exist.
	CatalogSize(ctx context.Context, catalog string) (int64, error)
	// AddScore adds delta points to the user's total score.
	AddScore(ctx context.Context, userID string, delta int64) error
}

// Invalidator clears derived read-side state after a score write.
type Invalidator interface {
	Clear()
}

// Sequencer advances per-user per-catalog cursors by exactly one item per
// successful request, using the store's conditional write as a
// compare-and-swap primitive. Counters only ever move forward: counter c
// means items 1..c are completed and item c+1 is the next to serve.
type Sequencer struct {
	repo SequencerRepository
	// pointsPerItem is awarded on each newly advanced item.
	pointsPerItem int64
	cache         Invalidator
	log           *zap.Logger
}

// NewSequencer constructs a Sequencer. cache may be nil when no derived state
// needs invalidation on score changes.
func NewSequencer(repo SequencerRepository, pointsPerItem int64, cache Invalidator, log *zap.Logger) *Sequencer {
	return &Sequencer{repo: repo, pointsPerItem: pointsPerItem, cache: cache, log: log}
}

// Advance serves the next item in the catalog for the user.
//
// It reads the current cursor c, computes next = c+1, and attempts a guarded
// write "set cursor to next only if it still equals c". If the guard fails a
// concurrent caller already advanced; the operation does not retry and
// returns advanced = false so the caller re-reads the frontier. Lost races
// are an expected state, never logged as errors.
//
// Returns models.ErrNotFound when the catalog does not exist and
// models.ErrExhausted when next exceeds the catalog size; the cursor is left
// unchanged in both cases.
func (s *Sequencer) Advance(ctx context.Context, userID, catalog string) (int64, bool, error) {
	size, err := s.repo.CatalogSize(ctx, catalog)
	if err != nil {
		return 0, false, err
	}

	c, err := s.repo.GetCounter(ctx, userID, catalog)
	if err != nil {
		return 0, false, err
	}

	next := c + 1
	if next > size {
		return 0, false, fmt.Errorf("catalog %q at item %d of %d: %w", catalog, c, size, models.ErrExhausted)
	}

	won, err := s.repo.AdvanceCounter(ctx, userID, catalog, next, c)
	if err != nil {
		return 0, false, err
	}
	if !won {
		s.log.Debug("advance lost guard race",
			zap.String("user", userID),
			zap.String("catalog", catalog),
			zap.Int64("expected", c),
		)
		return next, false, nil
	}

	if s.pointsPerItem > 0 {
		// The item is already served; a failed score award must not
		// roll the serve back. Log and move on.
		if err := s.repo.AddScore(ctx, userID, s.pointsPerItem); err != nil {
			s.log.Warn("score award failed after advance", zap.String("user", userID), zap.Error(err))
		} else if s.cache != nil {
			s.cache.Clear()
		}
	}

	return next, true, nil
}

// ForceSet writes the cursor to index unconditionally, bypassing the guard.
// Administrative repair only; it must never be reachable without the admin
// authorization boundary enforced by the transport layer.
func (s *Sequencer) ForceSet(ctx context.Context, userID, catalog string, index int64) error {
	if index < 0 {
		return fmt.Errorf("negative index %d", index)
	}
	if _, err := s.repo.CatalogSize(ctx, catalog); err != nil {
		return err
	}
	if err := s.repo.ForceSetCounter(ctx, userID, catalog, index); err != nil {
		return err
	}
	s.log.Info("cursor force-set",
		zap.String("user", userID),
		zap.String("catalog", catalog),
		zap.Int64("index", index),
	)
	return nil
}
