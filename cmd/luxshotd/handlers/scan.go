package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "github.com/lukebuild/luxshot/internal/errors"
	"github.com/lukebuild/luxshot/internal/pipeline"
)

// ScanRunner runs one capture pipeline pass. Satisfied by *pipeline.Service.
type ScanRunner interface {
	Perform(ctx context.Context) pipeline.Outcome
	State() pipeline.State
}

// ScanHandler handles scan triggers and pipeline status.
type ScanHandler struct {
	runner ScanRunner
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(runner ScanRunner) *ScanHandler {
	return &ScanHandler{runner: runner}
}

// TriggerScan handles POST /scan. The request blocks until the run ends;
// the interactive capture means the user is driving the duration anyway.
func (h *ScanHandler) TriggerScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	out := h.runner.Perform(r.Context())

	response := struct {
		Status string      `json:"status"`
		Record interface{} `json:"record,omitempty"`
		Error  string      `json:"error,omitempty"`
	}{Status: string(out.Status)}

	code := http.StatusOK
	switch out.Status {
	case pipeline.StatusSuccess:
		response.Record = out.Record
	case pipeline.StatusFailed:
		response.Error = out.Err.Error()
		code = http.StatusInternalServerError
		if apperrors.Is(out.Err, apperrors.ErrScanInProgress) {
			code = http.StatusConflict
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// Status handles GET /scan/status
func (h *ScanHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		State string `json:"state"`
	}{string(h.runner.State())})
}
