package core

import (
	"regexp"
	"strings"
)

const (
	usernameMinLen = 2
	usernameMaxLen = 24
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9._]+$`)

// NormalizeUsername lowercases a raw username and strips the leading @ and
// any character outside the username grammar. Targets are keyed by the
// normalized form so repeats across scrolls are recognized.
func NormalizeUsername(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "@")
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidUsername reports whether a normalized username satisfies the grammar:
// 2-24 chars of [a-z0-9._], no leading/trailing dot, no consecutive dots.
// Invalid identifiers are never looked up in the ledger.
func ValidUsername(username string) bool {
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return false
	}
	if !usernamePattern.MatchString(username) {
		return false
	}
	if strings.HasPrefix(username, ".") || strings.HasSuffix(username, ".") {
		return false
	}
	if strings.Contains(username, "..") {
		return false
	}
	return true
}
