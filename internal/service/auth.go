package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/omsandippatil/9Lives-sub003/internal/models"
)

// AuthRepository defines the persistence operations required by the
// authentication service.
type AuthRepository interface {
	// CreateUser stores a new user, reporting false if the login is taken.
	CreateUser(ctx context.Context, login string, passwordHash []byte) (bool, error)
	// GetCredentials returns the stored password hash for the login, or
	// models.ErrNotFound if no such user exists.
	GetCredentials(ctx context.Context, login string) ([]byte, error)
}

// tokenTTL is how long issued bearer tokens stay valid.
const tokenTTL = 72 * time.Hour

// AuthService issues and backs bearer tokens. It is the identity collaborator
// the rest of the system treats as external: every other call site receives
// an already-resolved user ID or fails closed.
type AuthService struct {
	repo   AuthRepository
	secret []byte
}

// NewAuthService constructs an AuthService signing tokens with secret.
func NewAuthService(repo AuthRepository, secret string) *AuthService {
	return &AuthService{repo: repo, secret: []byte(secret)}
}

// Register creates a new user with a bcrypt-hashed password.
// Returns false without error if the login is already taken.
func (s *AuthService) Register(ctx context.Context, login, password string) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.CreateUser(ctx, login, hash)
}

// Login verifies the password and returns a signed HS256 bearer token with
// the login as subject. Unknown users and wrong passwords both resolve to
// models.ErrUnauthenticated so callers cannot probe for valid logins.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, error) {
	hash, err := s.repo.GetCredentials(ctx, login)
	if err != nil {
		return "", fmt.Errorf("login %q: %w", login, models.ErrUnauthenticated)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return "", fmt.Errorf("login %q: %w", login, models.ErrUnauthenticated)
	}

	claims := jwt.MapClaims{
		"sub": login,
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
