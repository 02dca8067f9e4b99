// Package repository provides persistence implementations for progress
// tracking services using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/omsandippatil/9Lives-sub003/internal/models"
)

// PostgresProgressRepository implements the progress store contract against a
// PostgreSQL database. All operations are single-row and atomic; the store is
// the sole synchronization point, no in-process locks are held.
type PostgresProgressRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresProgressRepository creates a new PostgresProgressRepository using
// the provided *sql.DB. db must be a valid connection to a PostgreSQL instance.
func NewPostgresProgressRepository(db *sql.DB) *PostgresProgressRepository {
	return &PostgresProgressRepository{DB: db}
}

// storeErr tags err as a transient store failure so callers can classify it
// with errors.Is(err, models.ErrStoreUnavailable).
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(models.ErrStoreUnavailable, err))
}

// GetCounter returns the current cursor for (userID, catalog), seeding a zero
// row on first touch so the conditional write below always has a row to guard.
func (r *PostgresProgressRepository) GetCounter(ctx context.Context, userID, catalog string) (int64, error) {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO catalog_progress (user_login, catalog, counter)
		VALUES ($1, $2, 0) ON CONFLICT DO NOTHING
	`, userID, catalog)
	if err != nil {
		return 0, storeErr("seed counter", err)
	}

	var counter int64
	err = r.DB.QueryRowContext(ctx, `
		SELECT counter FROM catalog_progress WHERE user_login = $1 AND catalog = $2
	`, userID, catalog).Scan(&counter)
	if err != nil {
		return 0, storeErr("get counter", err)
	}
	return counter, nil
}

// AdvanceCounter sets the cursor to next only if it still equals expected.
// The guard value is the compare-and-swap primitive: a false return means a
// concurrent caller already advanced the cursor and this write was abandoned.
func (r *PostgresProgressRepository) AdvanceCounter(ctx context.Context, userID, catalog string, next, expected int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE catalog_progress SET counter = $1
		WHERE user_login = $2 AND catalog = $3 AND counter = $4
	`, next, userID, catalog, expected)
	if err != nil {
		return false, storeErr("advance counter", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, storeErr("advance counter", err)
	}
	return rows == 1, nil
}

// ForceSetCounter writes the cursor unconditionally, bypassing the guard.
// Administrative repair only; authorization is enforced by the caller.
func (r *PostgresProgressRepository) ForceSetCounter(ctx context.Context, userID, catalog string, index int64) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO catalog_progress (user_login, catalog, counter)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_login, catalog) DO UPDATE SET counter = EXCLUDED.counter
	`, userID, catalog, index)
	if err != nil {
		return storeErr("force set counter", err)
	}
	return nil
}

// CatalogSize returns the number of items in the named catalog.
// Returns models.ErrNotFound if the catalog does not exist at all.
func (r *PostgresProgressRepository) CatalogSize(ctx context.Context, catalog string) (int64, error) {
	var count int64
	err := r.DB.QueryRowContext(ctx, `
		SELECT item_count FROM catalogs WHERE name = $1
	`, catalog).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("catalog %q: %w", catalog, models.ErrNotFound)
	}
	if err != nil {
		return 0, storeErr("catalog size", err)
	}
	return count, nil
}

// UpsertCatalog registers a catalog or updates its item count.
func (r *PostgresProgressRepository) UpsertCatalog(ctx context.Context, catalog string, itemCount int64) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO catalogs (name, item_count) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET item_count = EXCLUDED.item_count
	`, catalog, itemCount)
	if err != nil {
		return storeErr("upsert catalog", err)
	}
	return nil
}

// GetStreak returns the stored streak pair for the user.
// Returns models.ErrNotFound if the user does not exist.
func (r *PostgresProgressRepository) GetStreak(ctx context.Context, userID string) (models.StreakState, error) {
	var (
		last sql.NullTime
		run  int
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT streak_last_active, streak_run FROM users WHERE login = $1
	`, userID).Scan(&last, &run)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StreakState{}, fmt.Errorf("user %q: %w", userID, models.ErrNotFound)
	}
	if err != nil {
		return models.StreakState{}, storeErr("get streak", err)
	}

	st := models.StreakState{RunLength: run}
	if last.Valid {
		st.LastActive = last.Time
	}
	return st, nil
}

// SetStreak writes the streak pair for the user.
func (r *PostgresProgressRepository) SetStreak(ctx context.Context, userID string, st models.StreakState) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users SET streak_last_active = $1, streak_run = $2 WHERE login = $3
	`, st.LastActive, st.RunLength, userID)
	if err != nil {
		return storeErr("set streak", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return storeErr("set streak", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %q: %w", userID, models.ErrNotFound)
	}
	return nil
}

// FlushFocus merges the submitted focus tally into storage with the monotonic
// "larger value wins" rule and returns the post-reconciliation stored value.
// A single GREATEST update keeps the write atomic under overlapping writers;
// flushing zero is a pure read of the current floor.
func (r *PostgresProgressRepository) FlushFocus(ctx context.Context, userID string, seconds int64) (int64, error) {
	var stored int64
	err := r.DB.QueryRowContext(ctx, `
		UPDATE users SET focus_seconds_today = GREATEST(focus_seconds_today, $1)
		WHERE login = $2
		RETURNING focus_seconds_today
	`, seconds, userID).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("user %q: %w", userID, models.ErrNotFound)
	}
	if err != nil {
		return 0, storeErr("flush focus", err)
	}
	return stored, nil
}

// AddScore adds delta points to the user's total score.
func (r *PostgresProgressRepository) AddScore(ctx context.Context, userID string, delta int64) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE users SET total_score = total_score + $1 WHERE login = $2
	`, delta, userID)
	if err != nil {
		return storeErr("add score", err)
	}
	return nil
}

// ResetScore zeroes the user's total score. Administrative use only.
// Returns models.ErrNotFound if the user does not exist.
func (r *PostgresProgressRepository) ResetScore(ctx context.Context, userID string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users SET total_score = 0 WHERE login = $1
	`, userID)
	if err != nil {
		return storeErr("reset score", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return storeErr("reset score", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %q: %w", userID, models.ErrNotFound)
	}
	return nil
}

// ListByScore returns up to limit rows ordered by total score descending with
// login ascending as the deterministic tie-break. The ordering is pushed into
// SQL so repeated reads are byte-identical absent intervening writes.
func (r *PostgresProgressRepository) ListByScore(ctx context.Context, limit, offset int) ([]models.LeaderboardEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT login, total_score FROM users
		ORDER BY total_score DESC, login ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, storeErr("list by score", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.TotalScore); err != nil {
			return nil, storeErr("scan score row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list by score", err)
	}
	return entries, nil
}

// ResetDailyFocus zeroes every user's focus_seconds_today. Invoked by the
// daily rollover job; returns the number of rows touched.
func (r *PostgresProgressRepository) ResetDailyFocus(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users SET focus_seconds_today = 0 WHERE focus_seconds_today <> 0
	`)
	if err != nil {
		return 0, storeErr("reset daily focus", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, storeErr("reset daily focus", err)
	}
	return rows, nil
}
