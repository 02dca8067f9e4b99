package service

import (
	"context"

	"go.uber.org/zap"
)

// AdminRepository defines the persistence operations needed by the Admin service.
type AdminRepository interface {
	// ResetScore zeroes the user's total score.
	ResetScore(ctx context.Context, userID string) error
	// UpsertCatalog registers a catalog or updates its item count.
	UpsertCatalog(ctx context.Context, catalog string, itemCount int64) error
}

// Admin bundles the administrative repair operations. Every caller must have
// passed the admin capability check at the transport layer; this service
// never infers authorization from user identity.
type Admin struct {
	repo  AdminRepository
	cache Invalidator
	log   *zap.Logger
}

// NewAdmin constructs an Admin service. cache may be nil.
func NewAdmin(repo AdminRepository, cache Invalidator, log *zap.Logger) *Admin {
	return &Admin{repo: repo, cache: cache, log: log}
}

// ResetScore zeroes the user's total score, the one sanctioned exception to
// score monotonicity, and invalidates cached rankings.
func (s *Admin) ResetScore(ctx context.Context, userID string) error {
	if err := s.repo.ResetScore(ctx, userID); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Clear()
	}
	s.log.Info("score reset", zap.String("user", userID))
	return nil
}

// UpsertCatalog registers a catalog or updates its item count.
func (s *Admin) UpsertCatalog(ctx context.Context, catalog string, itemCount int64) error {
	if err := s.repo.UpsertCatalog(ctx, catalog, itemCount); err != nil {
		return err
	}
	s.log.Info("catalog upserted", zap.String("catalog", catalog), zap.Int64("items", itemCount))
	return nil
}
