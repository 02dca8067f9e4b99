package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/omsandippatil/9Lives-sub003/internal/models"
)

// PostgresAuthRepository implements credential storage using a PostgreSQL
// database. The users table doubles as the progress row, so registering a
// user also creates their progress record with zeroed counters.
type PostgresAuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuthRepository creates a new PostgresAuthRepository with the given
// database connection. db must be a valid *sql.DB connected to a PostgreSQL
// instance.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{DB: db}
}

// CreateUser registers a new user with the given login and password hash.
// Returns false without error if a user with the same login already exists.
func (r *PostgresAuthRepository) CreateUser(ctx context.Context, login string, passwordHash []byte) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (login, password_hash) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, login, passwordHash)
	if err != nil {
		return false, storeErr("create user", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, storeErr("create user", err)
	}
	return rows == 1, nil
}

// GetCredentials returns the stored password hash for the login.
// Returns models.ErrNotFound if no such user exists.
func (r *PostgresAuthRepository) GetCredentials(ctx context.Context, login string) ([]byte, error) {
	var hash []byte
	err := r.DB.QueryRowContext(ctx, `
		SELECT password_hash FROM users WHERE login = $1
	`, login).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", login, models.ErrNotFound)
	}
	if err != nil {
		return nil, storeErr("get credentials", err)
	}
	return hash, nil
}
