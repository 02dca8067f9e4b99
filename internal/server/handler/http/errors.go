package http

import (
	"errors"
	"net/http"

	"github.com/omsandippatil/9Lives-sub003/internal/models"
)

// writeError maps the shared error taxonomy onto HTTP statuses. Exhausted and
// ConflictAbandoned never reach here: they are expected states expressed in
// 200 response bodies, not failures.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, models.ErrUnauthenticated):
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
	case errors.Is(err, models.ErrStoreUnavailable):
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
