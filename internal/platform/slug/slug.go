package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Make turns a title into a file-safe ASCII slug, dropping accents first so
// "Café Reading" becomes "cafe-reading".
func Make(input string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, transform.RemoveFunc(isMark)), input)
	if err != nil {
		stripped = input
	}
	s := strings.ToLower(strings.TrimSpace(stripped))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}

func isMark(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
