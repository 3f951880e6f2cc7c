package pipeline

import "sync"

// Settings holds the user-configurable pipeline toggles. The UI writes
// them, pipeline runs read them; access is safe from any goroutine.
type Settings struct {
	mu             sync.RWMutex
	keepLineBreaks bool
	autoCopy       bool
	autoOpenLinks  bool
}

// NewSettings creates settings with the given initial toggle values.
func NewSettings(keepLineBreaks, autoCopy, autoOpenLinks bool) *Settings {
	return &Settings{
		keepLineBreaks: keepLineBreaks,
		autoCopy:       autoCopy,
		autoOpenLinks:  autoOpenLinks,
	}
}

// KeepLineBreaks reports whether recognized text keeps its line breaks.
func (s *Settings) KeepLineBreaks() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keepLineBreaks
}

// SetKeepLineBreaks updates the line-break policy.
func (s *Settings) SetKeepLineBreaks(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keepLineBreaks = v
}

// AutoCopy reports whether scans are copied to the clipboard.
func (s *Settings) AutoCopy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.autoCopy
}

// SetAutoCopy updates the auto-copy toggle.
func (s *Settings) SetAutoCopy(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoCopy = v
}

// AutoOpenLinks reports whether the first detected link is opened.
func (s *Settings) AutoOpenLinks() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.autoOpenLinks
}

// SetAutoOpenLinks updates the auto-open-links toggle.
func (s *Settings) SetAutoOpenLinks(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoOpenLinks = v
}
