package sqlgen

import "strings"

// forbiddenTokens blocks every mutating and DDL keyword plus the comment-start
// sequence used for statement smuggling. Matching is plain substring search on
// the upper-cased statement: deliberately conservative, so a legitimate SELECT
// containing a denylisted word inside a string literal is also rejected. That
// false positive is an accepted tradeoff; safety wins over recall here.
var forbiddenTokens = []string{"UPDATE", "DELETE", "INSERT", "DROP", "ALTER", "TRUNCATE", "--"}

// IsSafe reports whether the candidate is a single read-only SELECT.
func IsSafe(stmt string) bool {
	s := strings.ToUpper(strings.TrimSpace(stmt))
	if !strings.HasPrefix(s, "SELECT") {
		return false
	}
	for _, token := range forbiddenTokens {
		if strings.Contains(s, token) {
			return false
		}
	}
	return true
}
