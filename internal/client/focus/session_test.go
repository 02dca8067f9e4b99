package focus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.uber.org/zap"
)

// fakeServer mimics the flush endpoint's max-wins reconciliation.
type fakeServer struct {
	mu      sync.Mutex
	stored  int64
	flushes []int64
}

func (f *fakeServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			AccumulatedSeconds int64 `json:"accumulated_seconds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		f.flushes = append(f.flushes, req.AccumulatedSeconds)
		if req.AccumulatedSeconds > f.stored {
			f.stored = req.AccumulatedSeconds
		}
		stored := f.stored
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]int64{"stored_value": stored})
	}
}

func newTestSession(t *testing.T, srv *fakeServer) (*Session, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(srv.handler())
	t.Cleanup(ts.Close)
	return NewSession(ts.Client(), ts.URL, "test-token", zap.NewNop()), ts
}

func TestReconcile_SubmitsWhenAhead(t *testing.T) {
	srv := &fakeServer{stored: 100}
	s, _ := newTestSession(t, srv)
	s.accumulated = 250
	s.lastStored = 100

	if err := s.Reconcile(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if srv.flushes[0] != 250 {
		t.Errorf("submitted %d; want 250", srv.flushes[0])
	}
	if s.lastStored != 250 {
		t.Errorf("lastStored = %d; want 250", s.lastStored)
	}
}

func TestReconcile_PureReadWhenBehind(t *testing.T) {
	srv := &fakeServer{stored: 500}
	s, _ := newTestSession(t, srv)
	s.accumulated = 50
	s.lastStored = 50

	if err := s.Reconcile(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if srv.flushes[0] != 0 {
		t.Errorf("submitted %d; want 0 (pure read)", srv.flushes[0])
	}
	if s.accumulated != 500 {
		t.Errorf("accumulated = %d; want 500 adopted from storage", s.accumulated)
	}
}

func TestReconcile_AdoptsLargerStoredValue(t *testing.T) {
	srv := &fakeServer{stored: 900}
	s, _ := newTestSession(t, srv)
	s.accumulated = 0

	if err := s.Reconcile(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Elapsed() != 900 {
		t.Errorf("Elapsed = %d; want 900 (cold start never begins from zero)", s.Elapsed())
	}
}

func TestReconcile_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer ts.Close()
	s := NewSession(ts.Client(), ts.URL, "test-token", zap.NewNop())
	s.accumulated = 30

	if err := s.Reconcile(context.Background()); err == nil {
		t.Fatal("expected error from failing server")
	}
	if s.accumulated != 30 {
		t.Errorf("accumulated changed on failed flush: %d", s.accumulated)
	}
}

func TestEnd_WithoutStart(t *testing.T) {
	srv := &fakeServer{}
	s, _ := newTestSession(t, srv)

	if err := s.End(); err != nil {
		t.Fatalf("End without Start: %v", err)
	}
	if len(srv.flushes) != 1 {
		t.Errorf("flushes = %d; want 1 final reconcile", len(srv.flushes))
	}
}
