// Package handlers tests for history REST endpoints.
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/lukebuild/luxshot/internal/history"
	"github.com/lukebuild/luxshot/internal/models"
)

func newTestStore(t *testing.T) *history.Store {
	t.Helper()
	return history.NewStore(filepath.Join(t.TempDir(), "scan_history.json"))
}

func insertRecord(t *testing.T, store *history.Store, text string) *models.ScanRecord {
	t.Helper()
	return store.Insert(history.Insertion{Text: text, ContentType: models.ContentTypeText})
}

func TestHistoryHandler_ListRecords(t *testing.T) {
	store := newTestStore(t)
	handler := NewHistoryHandler(store)

	insertRecord(t, store, "first scan")
	second := insertRecord(t, store, "second scan")

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	w := httptest.NewRecorder()
	handler.ListRecords(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Records    []*models.ScanRecord `json:"records"`
		SelectedID string               `json:"selected_id"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(response.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(response.Records))
	}
	if response.Records[0].ID != second.ID {
		t.Errorf("Expected newest record first, got %s", response.Records[0].ID)
	}
	if response.SelectedID != second.ID {
		t.Errorf("Expected selected_id %s, got %s", second.ID, response.SelectedID)
	}
}

func TestHistoryHandler_ListRecords_Empty(t *testing.T) {
	handler := NewHistoryHandler(newTestStore(t))

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	w := httptest.NewRecorder()
	handler.ListRecords(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Records []*models.ScanRecord `json:"records"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Records == nil || len(response.Records) != 0 {
		t.Errorf("Expected empty records array, got %v", response.Records)
	}
}

func TestHistoryHandler_ListRecords_MethodNotAllowed(t *testing.T) {
	handler := NewHistoryHandler(newTestStore(t))

	req := httptest.NewRequest(http.MethodPost, "/history", nil)
	w := httptest.NewRecorder()
	handler.ListRecords(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

func TestHistoryHandler_GetRecord(t *testing.T) {
	store := newTestStore(t)
	handler := NewHistoryHandler(store)
	rec := insertRecord(t, store, "lookup me")

	req := httptest.NewRequest(http.MethodGet, "/history/"+rec.ID, nil)
	req.SetPathValue("id", rec.ID)
	w := httptest.NewRecorder()
	handler.GetRecord(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var got models.ScanRecord
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got.ID != rec.ID || got.Content != "lookup me" {
		t.Errorf("Got record %+v, want id %s", got, rec.ID)
	}
}

func TestHistoryHandler_GetRecord_NotFound(t *testing.T) {
	handler := NewHistoryHandler(newTestStore(t))

	req := httptest.NewRequest(http.MethodGet, "/history/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	handler.GetRecord(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestHistoryHandler_DeleteRecord(t *testing.T) {
	store := newTestStore(t)
	handler := NewHistoryHandler(store)
	rec := insertRecord(t, store, "delete me")

	req := httptest.NewRequest(http.MethodDelete, "/history/"+rec.ID, nil)
	req.SetPathValue("id", rec.ID)
	w := httptest.NewRecorder()
	handler.DeleteRecord(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", w.Code)
	}
	if store.Len() != 0 {
		t.Errorf("Expected empty store after delete, got %d records", store.Len())
	}
}

func TestHistoryHandler_DeleteRecord_NotFound(t *testing.T) {
	handler := NewHistoryHandler(newTestStore(t))

	req := httptest.NewRequest(http.MethodDelete, "/history/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	handler.DeleteRecord(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestHistoryHandler_ClearHistory(t *testing.T) {
	store := newTestStore(t)
	handler := NewHistoryHandler(store)
	insertRecord(t, store, "one")
	insertRecord(t, store, "two")

	req := httptest.NewRequest(http.MethodPost, "/history/clear", nil)
	w := httptest.NewRecorder()
	handler.ClearHistory(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", w.Code)
	}
	if store.Len() != 0 {
		t.Errorf("Expected empty store after clear, got %d records", store.Len())
	}
	if store.SelectedID() != "" {
		t.Errorf("Expected no selection after clear, got %s", store.SelectedID())
	}
}

func TestHistoryHandler_SelectRecord(t *testing.T) {
	store := newTestStore(t)
	handler := NewHistoryHandler(store)
	older := insertRecord(t, store, "older")
	insertRecord(t, store, "newer")

	body, _ := json.Marshal(map[string]string{"id": older.ID})
	req := httptest.NewRequest(http.MethodPost, "/history/select", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.SelectRecord(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if store.SelectedID() != older.ID {
		t.Errorf("Expected selection %s, got %s", older.ID, store.SelectedID())
	}
}

func TestHistoryHandler_SelectRecord_Deselect(t *testing.T) {
	store := newTestStore(t)
	handler := NewHistoryHandler(store)
	insertRecord(t, store, "scan")

	body, _ := json.Marshal(map[string]string{"id": ""})
	req := httptest.NewRequest(http.MethodPost, "/history/select", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.SelectRecord(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if store.SelectedID() != "" {
		t.Errorf("Expected empty selection, got %s", store.SelectedID())
	}
}

func TestHistoryHandler_SelectRecord_NotFound(t *testing.T) {
	handler := NewHistoryHandler(newTestStore(t))

	body, _ := json.Marshal(map[string]string{"id": "no-such-record"})
	req := httptest.NewRequest(http.MethodPost, "/history/select", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.SelectRecord(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestHistoryHandler_SelectRecord_BadBody(t *testing.T) {
	handler := NewHistoryHandler(newTestStore(t))

	req := httptest.NewRequest(http.MethodPost, "/history/select", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	handler.SelectRecord(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}
