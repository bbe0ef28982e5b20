package domain

import (
	"strings"
	"unicode/utf8"
)

// NormalizeLineEndings converts CRLF and lone CR to LF and replaces the
// ideographic space (U+3000) with an ASCII space, so line-based parsers see
// one shape of input regardless of where the text was copied from.
func NormalizeLineEndings(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.ReplaceAll(text, "　", " ")
}

// TruncateRunes cuts s to at most max runes. The second result reports
// whether anything was cut.
func TruncateRunes(s string, max int) (string, bool) {
	if max < 0 || utf8.RuneCountInString(s) <= max {
		return s, false
	}
	i := 0
	for pos := range s {
		if i == max {
			return s[:pos], true
		}
		i++
	}
	return s, false
}
