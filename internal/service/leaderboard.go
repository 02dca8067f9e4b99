package service

import (
	"context"
	"fmt"

	"github.com/omsandippatil/9Lives-sub003/internal/models"
)

// LeaderboardRepository defines the persistence operations needed by the
// LeaderboardAggregator.
type LeaderboardRepository interface {
	// ListByScore returns up to limit rows ordered by total score
	// descending, ties broken by user ID ascending.
	ListByScore(ctx context.Context, limit, offset int) ([]models.LeaderboardEntry, error)
}

// LeaderboardCache caches computed pages between writes.
type LeaderboardCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Clear()
}

// DefaultPageSize bounds leaderboard pages when the caller asks for none.
const DefaultPageSize = 10

// MaxPageSize bounds leaderboard pages regardless of what the caller asks for.
const MaxPageSize = 100

// LeaderboardAggregator produces a total ordering of users by score. Ranks
// are dense and sequential: tied scores still receive distinct consecutive
// ranks, with user ID ascending as the deterministic tie-break. Absent
// intervening writes, repeated queries return identical pages.
type LeaderboardAggregator struct {
	repo  LeaderboardRepository
	cache LeaderboardCache
}

// NewLeaderboardAggregator constructs a LeaderboardAggregator. cache may be
// nil to disable caching.
func NewLeaderboardAggregator(repo LeaderboardRepository, cache LeaderboardCache) *LeaderboardAggregator {
	return &LeaderboardAggregator{repo: repo, cache: cache}
}

// TopN returns n ranked entries starting at offset. Rank assignment starts at
// offset+1 so pages are contiguous slices of the full ranking.
func (s *LeaderboardAggregator) TopN(ctx context.Context, n, offset int) ([]models.LeaderboardEntry, error) {
	if n <= 0 {
		n = DefaultPageSize
	}
	if n > MaxPageSize {
		n = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	key := fmt.Sprintf("top:%d:%d", n, offset)
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			if entries, ok := v.([]models.LeaderboardEntry); ok {
				return entries, nil
			}
		}
	}

	entries, err := s.repo.ListByScore(ctx, n, offset)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Rank = offset + i + 1
	}

	if s.cache != nil {
		s.cache.Set(key, entries)
	}
	return entries, nil
}
