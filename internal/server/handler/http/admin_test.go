package http_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	handler "github.com/omsandippatil/9Lives-sub003/internal/server/handler/http"

	"github.com/omsandippatil/9Lives-sub003/internal/models"
)

type fakeForceSetter struct {
	receivedUserID  string
	receivedCatalog string
	receivedIndex   int64
	err             error
}

func (f *fakeForceSetter) ForceSet(ctx context.Context, userID, catalog string, index int64) error {
	f.receivedUserID = userID
	f.receivedCatalog = catalog
	f.receivedIndex = index
	return f.err
}

type fakeAdmin struct {
	resetUserID   string
	upsertedName  string
	upsertedCount int64
	err           error
}

func (f *fakeAdmin) ResetScore(ctx context.Context, userID string) error {
	f.resetUserID = userID
	return f.err
}

func (f *fakeAdmin) UpsertCatalog(ctx context.Context, catalog string, itemCount int64) error {
	f.upsertedName = catalog
	f.upsertedCount = itemCount
	return f.err
}

func TestAdminHandler_ForceAdvance(t *testing.T) {
	fake := &fakeForceSetter{}
	h := &handler.AdminHandler{Sequencer: fake, Admin: &fakeAdmin{}}

	body := bytes.NewBufferString(`{"user_id":"alice","catalog":"aptitude","index":120}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/advance/force", body)
	w := httptest.NewRecorder()

	h.ForceAdvance(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	if fake.receivedUserID != "alice" || fake.receivedCatalog != "aptitude" || fake.receivedIndex != 120 {
		t.Errorf("ForceSet got (%q, %q, %d)", fake.receivedUserID, fake.receivedCatalog, fake.receivedIndex)
	}
}

func TestAdminHandler_ForceAdvance_MissingFields(t *testing.T) {
	h := &handler.AdminHandler{Sequencer: &fakeForceSetter{}, Admin: &fakeAdmin{}}

	body := bytes.NewBufferString(`{"catalog":"aptitude","index":1}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/advance/force", body)
	w := httptest.NewRecorder()

	h.ForceAdvance(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAdminHandler_ResetScore(t *testing.T) {
	fake := &fakeAdmin{}
	h := &handler.AdminHandler{Sequencer: &fakeForceSetter{}, Admin: fake}

	body := bytes.NewBufferString(`{"user_id":"bob"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/score/reset", body)
	w := httptest.NewRecorder()

	h.ResetScore(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	if fake.resetUserID != "bob" {
		t.Errorf("reset user = %q; want bob", fake.resetUserID)
	}
}

func TestAdminHandler_ResetScore_UnknownUser(t *testing.T) {
	fake := &fakeAdmin{err: fmt.Errorf("reset: %w", models.ErrNotFound)}
	h := &handler.AdminHandler{Sequencer: &fakeForceSetter{}, Admin: fake}

	body := bytes.NewBufferString(`{"user_id":"ghost"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/score/reset", body)
	w := httptest.NewRecorder()

	h.ResetScore(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d; want %d", w.Code, http.StatusNotFound)
	}
}

func TestAdminHandler_UpsertCatalog(t *testing.T) {
	fake := &fakeAdmin{}
	h := &handler.AdminHandler{Sequencer: &fakeForceSetter{}, Admin: fake}

	body := bytes.NewBufferString(`{"name":"python_theory","item_count":300}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/catalogs", body)
	w := httptest.NewRecorder()

	h.UpsertCatalog(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	if fake.upsertedName != "python_theory" || fake.upsertedCount != 300 {
		t.Errorf("upsert got (%q, %d)", fake.upsertedName, fake.upsertedCount)
	}
}

func TestAdminHandler_UpsertCatalog_NegativeCount(t *testing.T) {
	h := &handler.AdminHandler{Sequencer: &fakeForceSetter{}, Admin: &fakeAdmin{}}

	body := bytes.NewBufferString(`{"name":"aptitude","item_count":-1}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/catalogs", body)
	w := httptest.NewRecorder()

	h.UpsertCatalog(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", w.Code, http.StatusBadRequest)
	}
}
