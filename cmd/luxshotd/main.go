// Package main runs the LuxShot desktop daemon. Local clients talk to it
// over REST and a WebSocket event feed on localhost.
package main

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/lukebuild/luxshot/cmd/luxshotd/handlers"
	"github.com/lukebuild/luxshot/internal/capture"
	"github.com/lukebuild/luxshot/internal/config"
	"github.com/lukebuild/luxshot/internal/history"
	"github.com/lukebuild/luxshot/internal/logging"
	"github.com/lukebuild/luxshot/internal/pipeline"
	"github.com/lukebuild/luxshot/internal/recognize"
)

// hubHooks forwards pipeline lifecycle notifications to WebSocket clients.
type hubHooks struct {
	hub *WSHub
}

func (h hubHooks) BeforeCapture() {
	h.hub.BroadcastScanStarted()
}

func (h hubHooks) AfterCapture(out pipeline.Outcome) {
	h.hub.BroadcastScanOutcome(out)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Error("failed to load configuration", err)
		os.Exit(1)
	}

	logging.Init(os.Stderr, logging.LogLevel(cfg.LogLevel))
	logger := logging.Get().WithComponent("daemon")

	captureDir := filepath.Join(cfg.DataDir, "captures")
	if err := os.MkdirAll(captureDir, 0755); err != nil {
		logger.Error("failed to create capture directory", err, map[string]interface{}{"path": captureDir})
		os.Exit(1)
	}

	store := history.NewStore(cfg.HistoryPath())
	hub := NewWSHub()
	store.Subscribe(hub.BroadcastHistoryEvent)

	engine := recognize.NewEngine(
		recognize.NewTesseractRecognizer(cfg.OCRLanguages),
		recognize.NewZxingDetector(),
	)

	service := pipeline.New(pipeline.Options{
		Capture:    capture.NewManager(cfg.CaptureTool, cfg.CaptureArgs, captureDir),
		Engine:     engine,
		Store:      store,
		Source:     capture.ExecSourceResolver{},
		Hooks:      hubHooks{hub: hub},
		Settings:   pipeline.NewSettings(cfg.KeepLineBreaks, cfg.AutoCopy, cfg.AutoOpenLinks),
		Thumbnails: true,
	})

	historyHandler := handlers.NewHistoryHandler(store)
	scanHandler := handlers.NewScanHandler(service)
	settingsHandler := handlers.NewSettingsHandler(service.Settings())

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"luxshotd"}`))
	})
	mux.HandleFunc("GET /history", historyHandler.ListRecords)
	mux.HandleFunc("POST /history/clear", historyHandler.ClearHistory)
	mux.HandleFunc("POST /history/select", historyHandler.SelectRecord)
	mux.HandleFunc("GET /history/{id}", historyHandler.GetRecord)
	mux.HandleFunc("DELETE /history/{id}", historyHandler.DeleteRecord)
	mux.HandleFunc("POST /scan", scanHandler.TriggerScan)
	mux.HandleFunc("GET /scan/status", scanHandler.Status)
	mux.HandleFunc("/settings", settingsHandler.Handle)
	mux.HandleFunc("/ws", HandleWebSocket(hub))

	logger.Info("daemon listening", map[string]interface{}{"addr": cfg.ListenAddr})
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		logger.Error("server stopped", err)
		os.Exit(1)
	}
}
