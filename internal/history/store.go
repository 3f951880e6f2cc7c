// Package history provides the ordered, persisted scan history.
//
// The store is the single writer for history state: every mutation happens
// under one lock and is followed by a rewrite of the backing file. A failed
// write never fails the mutation; the in-memory state stays authoritative
// for the session and the next successful write reconciles the file.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/lukebuild/luxshot/internal/errors"
	"github.com/lukebuild/luxshot/internal/logging"
	"github.com/lukebuild/luxshot/internal/models"
)

// maxTitleRunes caps derived titles for display.
const maxTitleRunes = 30

// EventType identifies a history change event.
type EventType string

const (
	EventInserted EventType = "history.inserted"
	EventDeleted  EventType = "history.deleted"
	EventCleared  EventType = "history.cleared"
	EventSelected EventType = "history.selected"
)

// Event describes one store mutation for subscribers.
type Event struct {
	Type     EventType
	RecordID string
	Record   *models.ScanRecord
}

// Insertion carries the inputs for a new scan record.
type Insertion struct {
	Text string
	// TitleText, when set, is used instead of Text for title derivation.
	// The pipeline passes the un-normalized content here so a flattened
	// record still gets its original first line as title.
	TitleText     string
	SourceApp     string
	SourceAppID   string
	ImagePath     string
	ThumbnailPath string
	ContentType   models.ContentType
}

// Store holds the ordered scan history with a selection pointer and a
// JSON file backing. All mutations are serialized and persisted.
type Store struct {
	mu         sync.Mutex
	records    []*models.ScanRecord
	selectedID string
	path       string
	listeners  []func(Event)
	logger     *logging.Logger
}

// NewStore creates a store backed by the JSON file at path and loads any
// existing history. A missing or corrupt file yields an empty store.
func NewStore(path string) *Store {
	s := &Store{
		path:   path,
		logger: logging.Get().WithComponent("history"),
	}
	s.load()
	return s
}

// Subscribe registers a listener for store change events. Listeners are
// invoked synchronously after the mutation and its persistence attempt.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Insert creates a record from ins, prepends it to the history, selects it,
// and persists. Insert never fails; persistence errors are only logged.
func (s *Store) Insert(ins Insertion) *models.ScanRecord {
	now := time.Now()

	ctype := ins.ContentType
	if !ctype.Valid() {
		ctype = models.ContentTypeText
	}
	sourceApp := ins.SourceApp
	if sourceApp == "" {
		sourceApp = "Screen"
	}

	titleText := ins.TitleText
	if titleText == "" {
		titleText = ins.Text
	}

	rec := &models.ScanRecord{
		ID:            uuid.New().String(),
		Title:         deriveTitle(titleText, now),
		Timestamp:     now,
		Content:       ins.Text,
		SourceApp:     sourceApp,
		SourceAppID:   ins.SourceAppID,
		ImagePath:     ins.ImagePath,
		ThumbnailPath: ins.ThumbnailPath,
		IconName:      ctype.IconName(),
		ContentType:   ctype,
	}

	s.mu.Lock()
	s.records = append([]*models.ScanRecord{rec}, s.records...)
	s.selectedID = rec.ID
	s.persistLocked()
	s.mu.Unlock()

	s.notify(Event{Type: EventInserted, RecordID: rec.ID, Record: rec})
	return rec
}

// Delete removes the record with the given id, if present, and reports
// whether anything was removed. Deleting the selected record moves the
// selection to the first remaining record, or clears it.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	idx := -1
	for i, r := range s.records {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	rec := s.records[idx]
	s.records = append(s.records[:idx], s.records[idx+1:]...)
	if s.selectedID == id {
		if len(s.records) == 0 {
			s.selectedID = ""
		} else {
			s.selectedID = s.records[0].ID
		}
	}
	s.persistLocked()
	s.mu.Unlock()

	s.notify(Event{Type: EventDeleted, RecordID: rec.ID, Record: rec})
	return true
}

// Clear removes all records and the selection, then persists.
func (s *Store) Clear() {
	s.mu.Lock()
	s.records = nil
	s.selectedID = ""
	s.persistLocked()
	s.mu.Unlock()

	s.notify(Event{Type: EventCleared})
}

// Select moves the selection pointer. An empty id deselects; a non-existent
// id is rejected so the selection can never dangle.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	if id != "" {
		found := false
		for _, r := range s.records {
			if r.ID == id {
				found = true
				break
			}
		}
		if !found {
			s.mu.Unlock()
			return apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("no record with id %s", id))
		}
	}
	s.selectedID = id
	s.mu.Unlock()

	s.notify(Event{Type: EventSelected, RecordID: id})
	return nil
}

// Records returns the history newest-first.
func (s *Store) Records() []*models.ScanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.ScanRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (*models.ScanRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// SelectedID returns the current selection, or "" if nothing is selected.
func (s *Store) SelectedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *Store) notify(ev Event) {
	s.mu.Lock()
	listeners := make([]func(Event), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

// deriveTitle takes the trimmed first line of text, falling back to a
// timestamped default, capped at maxTitleRunes.
func deriveTitle(text string, now time.Time) string {
	first := text
	if i := strings.Index(first, "\n"); i >= 0 {
		first = first[:i]
	}
	first = strings.TrimSpace(first)
	if first == "" {
		first = "Scan " + now.Format("2006-01-02 15:04")
	}

	runes := []rune(first)
	if len(runes) > maxTitleRunes {
		first = string(runes[:maxTitleRunes])
	}
	return first
}

// persistLocked rewrites the backing file atomically. Called with the lock
// held. Failures are logged, never surfaced: history availability wins over
// durability.
func (s *Store) persistLocked() {
	if err := s.writeFile(); err != nil {
		s.logger.Error("failed to persist history", err, map[string]interface{}{
			"path":  s.path,
			"count": len(s.records),
		})
	}
}

func (s *Store) writeFile() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return apperrors.Wrap(apperrors.ErrHistoryPersist, "cannot create history directory", err)
	}

	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrHistoryPersist, "cannot encode history", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return apperrors.Wrap(apperrors.ErrHistoryPersist, "cannot write history file", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return apperrors.Wrap(apperrors.ErrHistoryPersist, "cannot replace history file", err)
	}
	return nil
}

// load reads the backing file into memory. Any failure leaves the store
// empty; a fresh history is always usable.
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("cannot read history file, starting empty", map[string]interface{}{
				"path":  s.path,
				"error": err.Error(),
			})
		}
		return
	}

	var records []*models.ScanRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("history file is corrupt, starting empty", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
		return
	}

	s.records = records
	if len(records) > 0 {
		s.selectedID = records[0].ID
	}
}
