// Package models provides data model definitions for LuxShot.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ContentType classifies a scan's payload.
type ContentType string

const (
	ContentTypeText    ContentType = "text"
	ContentTypeQRCode  ContentType = "qrcode"
	ContentTypeBarcode ContentType = "barcode"
)

// Valid reports whether the content type is one of the known values.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeText, ContentTypeQRCode, ContentTypeBarcode:
		return true
	}
	return false
}

// IconName returns the display icon hint for the content type.
func (t ContentType) IconName() string {
	switch t {
	case ContentTypeQRCode:
		return "qrcode"
	case ContentTypeBarcode:
		return "barcode"
	default:
		return "viewfinder"
	}
}

// ParseContentType converts a string into a ContentType.
func ParseContentType(s string) (ContentType, error) {
	t := ContentType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown content type: %q", s)
	}
	return t, nil
}

// ScanRecord represents one captured scan in the history.
// Records are immutable once created.
type ScanRecord struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Timestamp     time.Time   `json:"timestamp"`
	Content       string      `json:"content"`
	SourceApp     string      `json:"source_app"`
	SourceAppID   string      `json:"source_app_id,omitempty"`
	ImagePath     string      `json:"image_path,omitempty"`
	ThumbnailPath string      `json:"thumbnail_path,omitempty"`
	IconName      string      `json:"icon_name"`
	ContentType   ContentType `json:"content_type"`
}

// UnmarshalJSON fills in derivable fields missing from older history files.
func (r *ScanRecord) UnmarshalJSON(data []byte) error {
	type alias ScanRecord
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.ContentType == "" {
		a.ContentType = ContentTypeText
	}
	if a.IconName == "" {
		a.IconName = a.ContentType.IconName()
	}
	*r = ScanRecord(a)
	return nil
}

// MockRecords returns demo records for UI development and tests.
func MockRecords() []*ScanRecord {
	now := time.Now()
	return []*ScanRecord{
		{
			ID:          "mock-1",
			Title:       "github.com/project/utils.ts",
			Timestamp:   now,
			Content:     "function calculateTotal(items) {\n  return items.reduce((acc, item) => {\n    return acc + (item.price * item.quantity);\n  }, 0);\n}",
			SourceApp:   "Chrome",
			IconName:    ContentTypeText.IconName(),
			ContentType: ContentTypeText,
		},
		{
			ID:          "mock-2",
			Title:       "System Preview",
			Timestamp:   now.Add(-15 * time.Minute),
			Content:     "Invoice #2024-001\nDue Date: March 15, 2024\nTotal: $450.00",
			SourceApp:   "Preview",
			IconName:    ContentTypeText.IconName(),
			ContentType: ContentTypeText,
		},
		{
			ID:          "mock-3",
			Title:       "Safari Snippet",
			Timestamp:   now.Add(-time.Hour),
			Content:     "The rapid brown fox jumped over the lazy dog.",
			SourceApp:   "Safari",
			IconName:    ContentTypeText.IconName(),
			ContentType: ContentTypeText,
		},
	}
}
