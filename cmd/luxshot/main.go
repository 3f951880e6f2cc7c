// Package main provides the LuxShot command line interface: trigger a
// region scan and manage the persisted scan history.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lukebuild/luxshot/internal/capture"
	"github.com/lukebuild/luxshot/internal/config"
	"github.com/lukebuild/luxshot/internal/history"
	"github.com/lukebuild/luxshot/internal/logging"
	"github.com/lukebuild/luxshot/internal/models"
	"github.com/lukebuild/luxshot/internal/pipeline"
	"github.com/lukebuild/luxshot/internal/recognize"
)

// Version is set at build time.
var Version = "0.1.0"

const usage = `LuxShot v%s - capture a screen region, recognize its content

Usage:
  luxshot scan [-copy] [-open-links] [-flatten]
  luxshot list
  luxshot show [id]
  luxshot delete <id>
  luxshot clear
  luxshot select <id>
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, usage, Version)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "luxshot: %v\n", err)
		os.Exit(1)
	}
	logging.Init(os.Stderr, logging.LogLevel(cfg.LogLevel))

	store := history.NewStore(cfg.HistoryPath())

	switch os.Args[1] {
	case "scan":
		err = runScan(cfg, store, os.Args[2:])
	case "list":
		err = runList(store)
	case "show":
		err = runShow(store, os.Args[2:])
	case "delete":
		err = runDelete(store, os.Args[2:])
	case "clear":
		store.Clear()
	case "select":
		err = runSelect(store, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, usage, Version)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "luxshot: %v\n", err)
		os.Exit(1)
	}
}

func runScan(cfg *config.Config, store *history.Store, args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	autoCopy := fs.Bool("copy", cfg.AutoCopy, "copy the recognized content to the clipboard")
	openLinks := fs.Bool("open-links", cfg.AutoOpenLinks, "open the first detected link in the browser")
	flatten := fs.Bool("flatten", !cfg.KeepLineBreaks, "collapse recognized text to a single line")
	fs.Parse(args)

	captureDir := filepath.Join(cfg.DataDir, "captures")
	if err := os.MkdirAll(captureDir, 0755); err != nil {
		return fmt.Errorf("cannot create capture directory: %w", err)
	}

	engine := recognize.NewEngine(
		recognize.NewTesseractRecognizer(cfg.OCRLanguages),
		recognize.NewZxingDetector(),
	)

	service := pipeline.New(pipeline.Options{
		Capture:    capture.NewManager(cfg.CaptureTool, cfg.CaptureArgs, captureDir),
		Engine:     engine,
		Store:      store,
		Source:     capture.ExecSourceResolver{},
		Settings:   pipeline.NewSettings(!*flatten, *autoCopy, *openLinks),
		Thumbnails: true,
	})

	out := service.Perform(context.Background())
	switch out.Status {
	case pipeline.StatusCancelled:
		fmt.Println("Capture cancelled.")
		return nil
	case pipeline.StatusFailed:
		return out.Err
	}

	rec := out.Record
	fmt.Printf("Scanned %s (%s)\n", rec.Title, rec.ContentType)
	fmt.Println(rec.Content)
	return nil
}

func runList(store *history.Store) error {
	records := store.Records()
	if len(records) == 0 {
		fmt.Println("History is empty.")
		return nil
	}

	selected := store.SelectedID()
	for _, rec := range records {
		marker := " "
		if rec.ID == selected {
			marker = "*"
		}
		fmt.Printf("%s %s  %s  %-7s  %s\n",
			marker, shortID(rec.ID), rec.Timestamp.Format("2006-01-02 15:04"),
			rec.ContentType, rec.Title)
	}
	return nil
}

func runShow(store *history.Store, args []string) error {
	id := ""
	if len(args) > 0 {
		id = args[0]
	} else {
		id = store.SelectedID()
		if id == "" {
			return fmt.Errorf("nothing selected; pass a record id")
		}
	}

	rec, ok := resolve(store, id)
	if !ok {
		return fmt.Errorf("no record with id %s", id)
	}

	fmt.Printf("Title:     %s\n", rec.Title)
	fmt.Printf("Captured:  %s\n", rec.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("Source:    %s\n", rec.SourceApp)
	fmt.Printf("Type:      %s\n", rec.ContentType)
	if rec.ImagePath != "" {
		fmt.Printf("Image:     %s\n", rec.ImagePath)
	}
	fmt.Println()
	fmt.Println(rec.Content)
	return nil
}

func runDelete(store *history.Store, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: luxshot delete <id>")
	}
	rec, ok := resolve(store, args[0])
	if !ok {
		return fmt.Errorf("no record with id %s", args[0])
	}
	store.Delete(rec.ID)
	fmt.Printf("Deleted %s\n", rec.Title)
	return nil
}

func runSelect(store *history.Store, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: luxshot select <id>")
	}
	rec, ok := resolve(store, args[0])
	if !ok {
		return fmt.Errorf("no record with id %s", args[0])
	}
	return store.Select(rec.ID)
}

// resolve finds a record by full id or unique short prefix.
func resolve(store *history.Store, id string) (*models.ScanRecord, bool) {
	if rec, ok := store.Get(id); ok {
		return rec, true
	}

	var match *models.ScanRecord
	for _, rec := range store.Records() {
		if strings.HasPrefix(rec.ID, id) {
			if match != nil {
				return nil, false
			}
			match = rec
		}
	}
	return match, match != nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
