package trigger

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	parenAside = regexp.MustCompile(`\([^)]*\)`)
	spaceRun   = regexp.MustCompile(`\s+`)
	aliasSep   = regexp.MustCompile(`[/,|]`)
)

// Minimum trigger lengths in runes. Shorter triggers match too much noise.
const (
	minASCIILen    = 3
	minNonASCIILen = 2
)

// Normalize strips parenthetical asides, collapses whitespace, trims and
// lower-cases s. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return lower(clean(s))
}

// clean is Normalize without case folding; the length guard runs on it.
func clean(s string) string {
	s = parenAside.ReplaceAllString(s, " ")
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// isASCII reports whether every byte of s is 7-bit.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// tooShort applies the short-string guard to a cleaned trigger.
func tooShort(cleaned string) bool {
	n := utf8.RuneCountInString(cleaned)
	if isASCII(cleaned) {
		return n < minASCIILen
	}
	return n < minNonASCIILen
}

// isASCIIWordLike reports whether s consists only of ASCII letters, digits
// and the characters _ . / + -.
func isASCIIWordLike(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isWordByte(c), c == '.', c == '/', c == '+', c == '-':
		default:
			return false
		}
	}
	return true
}

// isWordByte reports whether c is [A-Za-z0-9_].
func isWordByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

// isWordRune is isWordByte for a decoded rune.
func isWordRune(r rune) bool {
	return r < utf8.RuneSelf && isWordByte(byte(r))
}
