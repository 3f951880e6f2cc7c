// Package handlers tests for the settings endpoint.
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lukebuild/luxshot/internal/pipeline"
)

func TestSettingsHandler_Get(t *testing.T) {
	handler := NewSettingsHandler(pipeline.NewSettings(true, false, true))

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response settingsPayload
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !response.KeepLineBreaks || response.AutoCopy || !response.AutoOpenLinks {
		t.Errorf("Unexpected settings in response: %+v", response)
	}
}

func TestSettingsHandler_Put_PartialUpdate(t *testing.T) {
	settings := pipeline.NewSettings(true, false, false)
	handler := NewSettingsHandler(settings)

	body, _ := json.Marshal(map[string]bool{"auto_copy": true})
	req := httptest.NewRequest(http.MethodPut, "/settings", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	if !settings.AutoCopy() {
		t.Error("auto_copy should be enabled after update")
	}
	if !settings.KeepLineBreaks() {
		t.Error("keep_line_breaks must keep its value when omitted")
	}
	if settings.AutoOpenLinks() {
		t.Error("auto_open_links must keep its value when omitted")
	}
}

func TestSettingsHandler_Put_AllFields(t *testing.T) {
	settings := pipeline.NewSettings(true, false, false)
	handler := NewSettingsHandler(settings)

	body, _ := json.Marshal(map[string]bool{
		"keep_line_breaks": false,
		"auto_copy":        true,
		"auto_open_links":  true,
	})
	req := httptest.NewRequest(http.MethodPut, "/settings", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if settings.KeepLineBreaks() || !settings.AutoCopy() || !settings.AutoOpenLinks() {
		t.Error("All three toggles should have flipped")
	}
}

func TestSettingsHandler_Put_BadBody(t *testing.T) {
	handler := NewSettingsHandler(pipeline.NewSettings(true, false, false))

	req := httptest.NewRequest(http.MethodPut, "/settings", bytes.NewReader([]byte("{")))
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestSettingsHandler_MethodNotAllowed(t *testing.T) {
	handler := NewSettingsHandler(pipeline.NewSettings(true, false, false))

	req := httptest.NewRequest(http.MethodDelete, "/settings", nil)
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}
