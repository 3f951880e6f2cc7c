package pipeline

import "strings"

// Normalize applies the line-break policy to recognized text. With
// keepLineBreaks it is the identity; otherwise newlines become spaces,
// runs of two or more spaces collapse to one, and the result is trimmed.
func Normalize(text string, keepLineBreaks bool) string {
	if keepLineBreaks {
		return text
	}

	flat := strings.ReplaceAll(text, "\n", " ")

	var b strings.Builder
	b.Grow(len(flat))
	pending := false
	for _, r := range flat {
		if r == ' ' {
			pending = true
			continue
		}
		if pending {
			b.WriteByte(' ')
			pending = false
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(b.String())
}
