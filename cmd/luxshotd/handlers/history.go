// Package handlers provides the daemon's REST API over the scan history
// and the capture pipeline.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lukebuild/luxshot/internal/history"
	"github.com/lukebuild/luxshot/internal/models"
)

// HistoryHandler handles scan history operations.
type HistoryHandler struct {
	store *history.Store
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(store *history.Store) *HistoryHandler {
	return &HistoryHandler{store: store}
}

// ListRecords handles GET /history
func (h *HistoryHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	records := h.store.Records()
	if records == nil {
		records = []*models.ScanRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Records    []*models.ScanRecord `json:"records"`
		SelectedID string               `json:"selected_id"`
	}{records, h.store.SelectedID()})
}

// GetRecord handles GET /history/{id}
func (h *HistoryHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	rec, ok := h.store.Get(id)
	if !ok {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

// DeleteRecord handles DELETE /history/{id}
func (h *HistoryHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	if !h.store.Delete(id) {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearHistory handles POST /history/clear
func (h *HistoryHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.store.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// SelectRecord handles POST /history/select
func (h *HistoryHandler) SelectRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.store.Select(request.ID); err != nil {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		SelectedID string `json:"selected_id"`
	}{h.store.SelectedID()})
}
