package sqlgen

import (
	"regexp"
	"strings"
)

var (
	fencePattern      = regexp.MustCompile("(?i)```(?:sql)?")
	selectThroughSemi = regexp.MustCompile(`(?is)select.*?;`)
	selectThroughEnd  = regexp.MustCompile(`(?is)select.*`)
	trailingSemi      = regexp.MustCompile(`;\s*$`)
)

// Clean isolates the first SQL statement from free model output: markdown
// fences and any prose before the first SELECT are discarded, capture prefers
// a terminating semicolon when one exists, and the canonical form carries no
// trailing semicolon (the repair engine restores the terminator).
// Returns "" when no SELECT token is present.
func Clean(raw string) string {
	text := strings.TrimSpace(fencePattern.ReplaceAllString(raw, ""))
	if text == "" {
		return ""
	}
	if m := selectThroughSemi.FindString(text); m != "" {
		text = m
	} else if m := selectThroughEnd.FindString(text); m != "" {
		text = m
	} else {
		return ""
	}
	text = strings.TrimSpace(text)
	text = trailingSemi.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
