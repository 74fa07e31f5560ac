package directory

import (
	"regexp"
	"strings"
)

var (
	reLetters = regexp.MustCompile(`[A-Za-z]`)
	// Only allow digits, spaces, +, -, (, )
	reAllowed = regexp.MustCompile(`^[0-9+\-\s\(\)]+$`)
)

// NormPhone normalizes phone numbers to the +E.164-like form stored on
// parents and printed on credentials.
// Rules: strip spaces/dashes/parens; 00.. -> +..; 62.. -> +62..; 0.. -> +62..; ensure leading +
func NormPhone(p string) string {
	s := strings.TrimSpace(p)

	if s == "" {
		return ""
	}
	if reLetters.MatchString(s) {
		return ""
	}
	if !reAllowed.MatchString(s) {
		return ""
	}

	// strip separators
	repl := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "\n", "", "\r", "")
	s = repl.Replace(s)

	// 00.. -> +..
	if strings.HasPrefix(s, "00") {
		s = "+" + s[2:]
	}
	// 62.. (no plus) -> +62..
	if strings.HasPrefix(s, "62") && !strings.HasPrefix(s, "+") {
		s = "+" + s
	}
	// 0.. (local) -> +62..
	if strings.HasPrefix(s, "0") {
		s = "+62" + s[1:]
	}
	// ensure leading +
	if !strings.HasPrefix(s, "+") {
		s = "+" + s
	}
	return s
}
