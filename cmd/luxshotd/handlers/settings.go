package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lukebuild/luxshot/internal/pipeline"
)

// SettingsHandler exposes the live pipeline toggles.
type SettingsHandler struct {
	settings *pipeline.Settings
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings *pipeline.Settings) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

type settingsPayload struct {
	KeepLineBreaks bool `json:"keep_line_breaks"`
	AutoCopy       bool `json:"auto_copy"`
	AutoOpenLinks  bool `json:"auto_open_links"`
}

// Handle serves GET and PUT on /settings. PUT accepts partial updates; an
// omitted field keeps its current value.
func (h *SettingsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:

	case http.MethodPut:
		var request struct {
			KeepLineBreaks *bool `json:"keep_line_breaks"`
			AutoCopy       *bool `json:"auto_copy"`
			AutoOpenLinks  *bool `json:"auto_open_links"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if request.KeepLineBreaks != nil {
			h.settings.SetKeepLineBreaks(*request.KeepLineBreaks)
		}
		if request.AutoCopy != nil {
			h.settings.SetAutoCopy(*request.AutoCopy)
		}
		if request.AutoOpenLinks != nil {
			h.settings.SetAutoOpenLinks(*request.AutoOpenLinks)
		}

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settingsPayload{
		KeepLineBreaks: h.settings.KeepLineBreaks(),
		AutoCopy:       h.settings.AutoCopy(),
		AutoOpenLinks:  h.settings.AutoOpenLinks(),
	})
}
