package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	handler "github.com/omsandippatil/9Lives-sub003/internal/server/handler/http"
)

// fakeStreak records calls and returns preconfigured results.
type fakeStreak struct {
	receivedToday time.Time

	run    int
	atRisk bool
	err    error
}

func (f *fakeStreak) RecordActivity(ctx context.Context, userID string, today time.Time) (int, error) {
	f.receivedToday = today
	return f.run, f.err
}

func (f *fakeStreak) CurrentDisplayValue(ctx context.Context, userID string, today time.Time) (int, bool, error) {
	f.receivedToday = today
	return f.run, f.atRisk, f.err
}

func TestStreakHandler_RecordActivity(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	fake := &fakeStreak{run: 5}
	h := &handler.StreakHandler{Streak: fake, Now: func() time.Time { return now }}

	req := httptest.NewRequest(http.MethodPost, "/api/activity", nil)
	w := httptest.NewRecorder()

	h.RecordActivity(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	var resp struct {
		RunLength int  `json:"run_length"`
		Secured   bool `json:"secured"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RunLength != 5 || !resp.Secured {
		t.Errorf("response = %+v; want {5 true}", resp)
	}
	if !fake.receivedToday.Equal(now) {
		t.Errorf("today = %v; want %v", fake.receivedToday, now)
	}
}

func TestStreakHandler_CurrentAtRisk(t *testing.T) {
	fake := &fakeStreak{run: 4, atRisk: true}
	h := &handler.StreakHandler{Streak: fake}

	req := httptest.NewRequest(http.MethodGet, "/api/streak", nil)
	w := httptest.NewRecorder()

	h.Current(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	var resp struct {
		DisplayValue int  `json:"display_value"`
		AtRisk       bool `json:"at_risk"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.DisplayValue != 4 || !resp.AtRisk {
		t.Errorf("response = %+v; want {4 true}", resp)
	}
}
