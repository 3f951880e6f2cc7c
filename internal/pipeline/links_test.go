// Package pipeline tests for link detection.
package pipeline

import "testing"

func TestFirstLink(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"full url", "visit https://example.com for details", "https://example.com", true},
		{"bare domain gets scheme", "docs at example.com today", "https://example.com", true},
		{"first of several", "https://a.example.com and https://b.example.com", "https://a.example.com", true},
		{"qr payload", "https://example.com", "https://example.com", true},
		{"no link", "just plain text", "", false},
		{"empty", "", "", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := FirstLink(c.text)
			if ok != c.ok || got != c.want {
				t.Errorf("FirstLink(%q) = (%q, %v), want (%q, %v)", c.text, got, ok, c.want, c.ok)
			}
		})
	}
}
