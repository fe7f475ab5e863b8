// Package textnorm cleans forum text before entity matching and scoring.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

// nonSpace mirrors a Unicode-aware \S: Go's \s only covers ASCII whitespace.
const nonSpace = `[^\s\v\p{Z}\x{85}\x{1c}-\x{1f}]`

var (
	urlPattern     = regexp.MustCompile(`(?:https?|www)` + nonSpace + `+`)
	mentionPattern = regexp.MustCompile(`@[\p{L}\p{M}\p{N}_]+|#`)
)

// Normalize lower-cases text, removes URLs, @mentions and '#' markers, keeps
// only ASCII letters, whitespace and '$', and collapses whitespace.
//
// URL and mention stripping run before the character filter. The URL rule is
// applied once more after filtering, since dropping punctuation can assemble
// a new prefix ("w.ww.x" becomes "wwwx"); this keeps Normalize idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	text = keepAllowed(text)
	text = urlPattern.ReplaceAllString(text, "")
	return collapseSpace(text)
}

// NormalizeValue normalizes v when it is a string (or non-nil *string) and
// returns "" for anything else.
func NormalizeValue(v any) string {
	switch s := v.(type) {
	case string:
		return Normalize(s)
	case *string:
		if s == nil {
			return ""
		}
		return Normalize(*s)
	default:
		return ""
	}
}

func keepAllowed(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '$':
			b.WriteRune(r)
		case isSpace(r):
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// isSpace matches the whitespace set of nonSpace's complement
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func collapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
