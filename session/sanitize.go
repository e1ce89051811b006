package session

import (
	"regexp"
	"strings"
)

var unsafeRuns = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Sanitize maps an arbitrary string onto a safe path segment: every run of
// characters outside [A-Za-z0-9._-] collapses to a single underscore, and a
// blank input yields "_" so the result is always a usable directory name.
// Sanitize never fails.
func Sanitize(s string) string {
	s = unsafeRuns.ReplaceAllString(strings.TrimSpace(s), "_")
	if s == "" {
		return "_"
	}
	return s
}
