// Package pipeline orchestrates one scan: trigger the region capture, run
// both recognition passes, classify, normalize, and persist the result.
package pipeline

import (
	"context"
	"image"
	"sync"

	"github.com/lukebuild/luxshot/internal/capture"
	apperrors "github.com/lukebuild/luxshot/internal/errors"
	"github.com/lukebuild/luxshot/internal/history"
	"github.com/lukebuild/luxshot/internal/logging"
	"github.com/lukebuild/luxshot/internal/models"
	"github.com/lukebuild/luxshot/internal/recognize"
)

// State names the pipeline's current phase.
type State string

const (
	StateIdle        State = "idle"
	StateCapturing   State = "capturing"
	StateRecognizing State = "recognizing"
	StateClassifying State = "classifying"
	StatePersisting  State = "persisting"
)

// Status classifies a finished pipeline run.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// Outcome reports how a pipeline run ended. Record is set only on success,
// Err only on failure.
type Outcome struct {
	Status Status
	Record *models.ScanRecord
	Err    error
}

// CaptureProvider triggers the interactive region capture.
type CaptureProvider interface {
	CaptureRegion(ctx context.Context) (*capture.Capture, error)
}

// Processor runs recognition and classification over a captured image.
type Processor interface {
	Process(ctx context.Context, img image.Image) (*recognize.Result, error)
}

// Hooks lets the presentation layer react around a pipeline run: hide its
// surface before the capture tool appears, show the outcome afterwards.
type Hooks interface {
	BeforeCapture()
	AfterCapture(outcome Outcome)
}

// NopHooks ignores both notifications.
type NopHooks struct{}

func (NopHooks) BeforeCapture()         {}
func (NopHooks) AfterCapture(_ Outcome) {}

// Options configures a pipeline service. Capture, Engine, and Store are
// required; the rest default to working implementations.
type Options struct {
	Capture  CaptureProvider
	Engine   Processor
	Store    *history.Store
	Source   capture.SourceResolver
	Clip     Clipboard
	Links    LinkOpener
	Hooks    Hooks
	Settings *Settings

	// Thumbnails disables preview generation when false.
	Thumbnails bool
}

// Service runs the capture pipeline. One run at a time: a trigger while a
// run is in flight fails immediately without side effects.
type Service struct {
	capture    CaptureProvider
	engine     Processor
	store      *history.Store
	source     capture.SourceResolver
	clip       Clipboard
	links      LinkOpener
	hooks      Hooks
	settings   *Settings
	thumbnails bool
	logger     *logging.Logger

	runMu   sync.Mutex
	stateMu sync.Mutex
	state   State
}

// New creates a pipeline service.
func New(opts Options) *Service {
	s := &Service{
		capture:    opts.Capture,
		engine:     opts.Engine,
		store:      opts.Store,
		source:     opts.Source,
		clip:       opts.Clip,
		links:      opts.Links,
		hooks:      opts.Hooks,
		settings:   opts.Settings,
		thumbnails: opts.Thumbnails,
		state:      StateIdle,
		logger:     logging.Get().WithComponent("pipeline"),
	}
	if s.source == nil {
		s.source = capture.StaticSourceResolver{}
	}
	if s.clip == nil {
		s.clip = SystemClipboard{}
	}
	if s.links == nil {
		s.links = BrowserOpener{}
	}
	if s.hooks == nil {
		s.hooks = NopHooks{}
	}
	if s.settings == nil {
		s.settings = NewSettings(true, false, false)
	}
	return s
}

// Settings returns the live toggle set shared with the presentation layer.
func (s *Service) Settings() *Settings {
	return s.settings
}

// State returns the pipeline's current phase.
func (s *Service) State() State {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state
}

func (s *Service) setState(state State) {
	s.stateMu.Lock()
	s.state = state
	s.stateMu.Unlock()
}

// Perform executes one full pipeline run and reports its outcome. The
// outcome is also delivered to the AfterCapture hook. A cancelled or
// failed run leaves the history untouched; there are no retries.
func (s *Service) Perform(ctx context.Context) Outcome {
	if !s.runMu.TryLock() {
		err := apperrors.New(apperrors.ErrScanInProgress, "a scan is already running")
		s.logger.Warn("scan trigger ignored", map[string]interface{}{"reason": err.Error()})
		return Outcome{Status: StatusFailed, Err: err}
	}
	defer s.runMu.Unlock()
	defer s.setState(StateIdle)

	s.hooks.BeforeCapture()

	// The frontmost application must be read before the capture tool
	// takes over the screen.
	src := s.source.Frontmost(ctx)

	s.setState(StateCapturing)
	cap, err := s.capture.CaptureRegion(ctx)
	if err != nil {
		return s.finish(s.captureOutcome(err))
	}

	s.setState(StateRecognizing)
	result, err := s.engine.Process(ctx, cap.Image)
	if err != nil {
		s.logger.Error("recognition failed", err)
		return s.finish(Outcome{Status: StatusFailed, Err: err})
	}

	s.setState(StateClassifying)
	rawContent := result.Content()
	text := Normalize(rawContent, s.settings.KeepLineBreaks())

	s.setState(StatePersisting)
	thumbPath := ""
	if s.thumbnails {
		if p, err := makeThumbnail(cap.Image, cap.Path); err != nil {
			s.logger.Warn("thumbnail generation failed", map[string]interface{}{"error": err.Error()})
		} else {
			thumbPath = p
		}
	}

	rec := s.store.Insert(history.Insertion{
		Text:          text,
		TitleText:     rawContent,
		SourceApp:     src.Name,
		SourceAppID:   src.BundleID,
		ImagePath:     cap.Path,
		ThumbnailPath: thumbPath,
		ContentType:   result.Type(),
	})

	s.postInsert(text)

	s.logger.Info("scan completed", map[string]interface{}{
		"id":   rec.ID,
		"type": string(rec.ContentType),
	})
	return s.finish(Outcome{Status: StatusSuccess, Record: rec})
}

// captureOutcome maps a capture error to its outcome: a user cancel is a
// neutral result, everything else is a failure.
func (s *Service) captureOutcome(err error) Outcome {
	if apperrors.Is(err, apperrors.ErrCaptureCancelled) {
		s.logger.Info("capture cancelled by user")
		return Outcome{Status: StatusCancelled}
	}
	s.logger.Error("capture failed", err)
	return Outcome{Status: StatusFailed, Err: err}
}

// postInsert runs the toggle-gated best-effort actions. Failures here never
// affect the already-committed insert.
func (s *Service) postInsert(text string) {
	if s.settings.AutoCopy() {
		if err := s.clip.WriteAll(text); err != nil {
			s.logger.Warn("clipboard copy failed", map[string]interface{}{"error": err.Error()})
		}
	}
	if s.settings.AutoOpenLinks() {
		if url, ok := FirstLink(text); ok {
			if err := s.links.OpenURL(url); err != nil {
				s.logger.Warn("auto-open link failed", map[string]interface{}{
					"url":   url,
					"error": err.Error(),
				})
			}
		}
	}
}

func (s *Service) finish(out Outcome) Outcome {
	s.hooks.AfterCapture(out)
	return out
}
