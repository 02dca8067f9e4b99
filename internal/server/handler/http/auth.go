package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/omsandippatil/9Lives-sub003/internal/models"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a new user, reporting false if the login is taken.
	Register(ctx context.Context, login, password string) (bool, error)
	// Login verifies credentials and returns a signed bearer token.
	Login(ctx context.Context, login, password string) (string, error)
}

// AuthHandler handles HTTP requests for user registration and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// CredentialsRequest represents the JSON payload for registration and login.
type CredentialsRequest struct {
	// Login is the username.
	Login string `json:"login"`
	// Password is the plaintext password, hashed before storage.
	Password string `json:"password"`
}

// Register handles user registration requests.
// It expects a JSON body with non-empty "login" and "password" fields and
// creates the user together with their zeroed progress row.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Login == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	created, err := h.AuthService.Register(r.Context(), req.Login, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	if !created {
		http.Error(w, "user already exists", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Login handles login requests and returns a bearer token on success.
// Unknown users and bad passwords are indistinguishable in the response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Login == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	token, err := h.AuthService.Login(r.Context(), req.Login, req.Password)
	if errors.Is(err, models.ErrUnauthenticated) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
}
