package edit

import (
	"regexp"
	"strings"
)

var (
	angleBrackets = strings.NewReplacer("<", "", ">", "")
	jsProtocol    = regexp.MustCompile(`(?i)javascript:`)
	nieWord       = regexp.MustCompile(`(?i)\bnie\b`)
)

// Sanitize strips angle brackets and every javascript: marker, then trims.
// Removal repeats until stable so inputs like "javajavascript:script:" cannot
// reassemble the marker, which also makes Sanitize idempotent.
func Sanitize(input string) string {
	out := angleBrackets.Replace(input)
	for {
		next := jsProtocol.ReplaceAllString(out, "")
		if next == out {
			break
		}
		out = next
	}
	return strings.TrimSpace(out)
}

// HasDoubleNegation reports whether the Afrikaans negator "nie" occurs at
// least twice as a whole word.
func HasDoubleNegation(text string) bool {
	return len(nieWord.FindAllStringIndex(text, 2)) >= 2
}
