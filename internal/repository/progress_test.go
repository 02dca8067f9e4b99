package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/omsandippatil/9Lives-sub003/internal/models"
)

func setupMock(t *testing.T) (*PostgresProgressRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresProgressRepository(db)
	cleanup := func() {
		db.Close()
	}
	return repo, mock, cleanup
}

func TestGetCounter_SeedsAndReads(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO catalog_progress (user_login, catalog, counter)`)).
		WithArgs("u1", "aptitude").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT counter FROM catalog_progress WHERE user_login = $1 AND catalog = $2`)).
		WithArgs("u1", "aptitude").
		WillReturnRows(sqlmock.NewRows([]string{"counter"}).AddRow(int64(49)))

	counter, err := repo.GetCounter(context.Background(), "u1", "aptitude")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter != 49 {
		t.Errorf("counter = %d; want 49", counter)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestAdvanceCounter_WinsGuard(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE catalog_progress SET counter = $1`)).
		WithArgs(int64(50), "u1", "aptitude", int64(49)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	won, err := repo.AdvanceCounter(context.Background(), "u1", "aptitude", 50, 49)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !won {
		t.Error("won = false; want true when one row matched")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestAdvanceCounter_LosesGuard(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	// No row matched: a concurrent caller already moved the counter.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE catalog_progress SET counter = $1`)).
		WithArgs(int64(50), "u1", "aptitude", int64(49)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	won, err := repo.AdvanceCounter(context.Background(), "u1", "aptitude", 50, 49)
	if err != nil {
		t.Fatalf("a lost guard is not an error, got %v", err)
	}
	if won {
		t.Error("won = true; want false when the guard failed")
	}
}

func TestAdvanceCounter_StoreFailure(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE catalog_progress SET counter = $1`)).
		WithArgs(int64(8), "u1", "aptitude", int64(7)).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.AdvanceCounter(context.Background(), "u1", "aptitude", 8, 7)
	if !errors.Is(err, models.ErrStoreUnavailable) {
		t.Fatalf("error = %v; want ErrStoreUnavailable", err)
	}
}

func TestCatalogSize_NotFound(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT item_count FROM catalogs WHERE name = $1`)).
		WithArgs("no_such").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.CatalogSize(context.Background(), "no_such")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("error = %v; want ErrNotFound", err)
	}
}

func TestFlushFocus_ReturnsReconciledValue(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	// Submitted 80, but another session already stored 120.
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET focus_seconds_today = GREATEST(focus_seconds_today, $1)`)).
		WithArgs(int64(80), "u1").
		WillReturnRows(sqlmock.NewRows([]string{"focus_seconds_today"}).AddRow(int64(120)))

	stored, err := repo.FlushFocus(context.Background(), "u1", 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored != 120 {
		t.Errorf("stored = %d; want 120", stored)
	}
}

func TestFlushFocus_UserMissing(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET focus_seconds_today = GREATEST(focus_seconds_today, $1)`)).
		WithArgs(int64(10), "ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FlushFocus(context.Background(), "ghost", 10)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("error = %v; want ErrNotFound", err)
	}
}

func TestGetStreak_NeverActive(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT streak_last_active, streak_run FROM users WHERE login = $1`)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"streak_last_active", "streak_run"}).AddRow(nil, 0))

	st, err := repo.GetStreak(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.LastActive.IsZero() || st.RunLength != 0 {
		t.Errorf("streak = %+v; want zero state", st)
	}
}

func TestGetStreak_Stored(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	last := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT streak_last_active, streak_run FROM users WHERE login = $1`)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"streak_last_active", "streak_run"}).AddRow(last, 4))

	st, err := repo.GetStreak(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.LastActive.Equal(last) || st.RunLength != 4 {
		t.Errorf("streak = %+v; want (%v, 4)", st, last)
	}
}

func TestSetStreak_UserMissing(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	last := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET streak_last_active = $1, streak_run = $2 WHERE login = $3`)).
		WithArgs(last, 5, "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetStreak(context.Background(), "ghost", models.StreakState{LastActive: last, RunLength: 5})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("error = %v; want ErrNotFound", err)
	}
}

func TestListByScore_ReturnsOrderedPage(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"login", "total_score"}).
		AddRow("alice", int64(100)).
		AddRow("bob", int64(100)).
		AddRow("carl", int64(90))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT login, total_score FROM users`)).
		WithArgs(3, 0).
		WillReturnRows(rows)

	entries, err := repo.ListByScore(context.Background(), 3, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 || entries[0].UserID != "alice" || entries[2].TotalScore != 90 {
		t.Errorf("unexpected entries: %+v", entries)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestResetDailyFocus_CountsRows(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET focus_seconds_today = 0 WHERE focus_seconds_today <> 0`)).
		WillReturnResult(sqlmock.NewResult(0, 7))

	rows, err := repo.ResetDailyFocus(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows != 7 {
		t.Errorf("rows = %d; want 7", rows)
	}
}
