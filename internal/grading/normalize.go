package grading

import "strings"

// NormalizeText prepares option display text for comparison: trim, uppercase,
// and strip any leading option-letter prefix like "A)", "b.", "C ". Stripping
// repeats until no prefix remains, so the function is idempotent.
func NormalizeText(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	for {
		stripped, ok := stripLetterPrefix(s)
		if !ok {
			return s
		}
		s = stripped
	}
}

// stripLetterPrefix removes one leading prefix of the form [A-D] followed by
// ")" or "." or whitespace. A bare letter with nothing after it is real
// content, not a prefix.
func stripLetterPrefix(s string) (string, bool) {
	if len(s) < 2 || s[0] < 'A' || s[0] > 'D' {
		return s, false
	}
	switch s[1] {
	case ')', '.', ' ', '\t':
		return strings.TrimSpace(s[2:]), true
	}
	return s, false
}

// stripQuotes removes one layer of surrounding single or double quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// isOptionLetter reports whether s is a single option letter A-D
// (case already folded by the caller).
func isOptionLetter(s string) bool {
	return len(s) == 1 && s[0] >= 'A' && s[0] <= 'D'
}

func isUpperAlpha(c byte) bool { return c >= 'A' && c <= 'Z' }
