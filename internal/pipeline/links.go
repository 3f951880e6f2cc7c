package pipeline

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
	"mvdan.cc/xurls/v2"
)

var linkPattern = xurls.Relaxed()

// FirstLink returns the first hyperlink found in text. Links without a
// scheme get https prepended so they are openable.
func FirstLink(text string) (string, bool) {
	match := linkPattern.FindString(text)
	if match == "" {
		return "", false
	}
	if !strings.Contains(match, "://") && !strings.HasPrefix(match, "mailto:") {
		match = "https://" + match
	}
	return match, true
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard uses the OS clipboard.
type SystemClipboard struct{}

// WriteAll copies text to the clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// LinkOpener opens a URL in the user's default handler.
type LinkOpener interface {
	OpenURL(url string) error
}

// BrowserOpener opens links in the default browser.
type BrowserOpener struct{}

// OpenURL opens url in the default browser.
func (BrowserOpener) OpenURL(url string) error {
	return browser.OpenURL(url)
}
